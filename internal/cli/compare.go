package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <owner/repo> <base> <head>",
		Short: "Compare two refs of a repository",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := gh.ParseRepoTarget(args[0])
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			var opts gh.CompareOptions
			opts.IncludePatches, _ = cmd.Flags().GetBool("patch")

			res, err := client.CompareCommits(cmd.Context(), target, args[1], args[2], opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s...%s: %s, %d ahead, %d behind, %d commits\n\n",
				args[1], args[2], res.Status, res.AheadBy, res.BehindBy, res.TotalCommits)
			for _, f := range res.Files {
				fmt.Fprintf(out, "%-9s %s (+%d -%d)\n", f.Status, f.Filename, f.Additions, f.Deletions)
				if f.Patch != "" {
					fmt.Fprintln(out, f.Patch)
				}
			}
			if len(res.Commits) > 0 {
				fmt.Fprintln(out)
				renderCommitTable(out, res.Commits)
			}
			return nil
		},
	}

	cmd.Flags().Bool("patch", false, "include per-file patch text")
	return cmd
}
