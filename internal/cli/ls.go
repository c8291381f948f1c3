package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <owner/repo> [path]",
		Short: "List a repository directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := gh.ParseRepoTarget(args[0])
			if err != nil {
				return err
			}
			path := "."
			if len(args) == 2 {
				path = args[1]
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			var opts gh.ListPathOptions
			opts.Ref, _ = cmd.Flags().GetString("ref")
			opts.Limit, _ = cmd.Flags().GetInt("limit")
			opts.Offset, _ = cmd.Flags().GetInt("offset")

			entries, err := client.ListPath(cmd.Context(), target, path, opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				switch e.Type {
				case gh.EntryDir:
					fmt.Fprintf(out, "%s/\n", e.Name)
				case gh.EntrySymlink:
					fmt.Fprintf(out, "%s -> %s\n", e.Name, e.Target)
				case gh.EntryFile:
					fmt.Fprintf(out, "%-40s %8d\n", e.Name, e.Size)
				default:
					fmt.Fprintf(out, "%s\n", e.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("ref", "r", "", "branch, tag, or commit (default branch if omitted)")
	cmd.Flags().Int("limit", 0, "maximum entries to return (0 = all)")
	cmd.Flags().Int("offset", 0, "entries to skip")
	return cmd
}
