package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newGlobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glob <owner/repo> <pattern>",
		Short: "List files at a ref matching a glob pattern",
		Long: `List the files at a ref whose path matches a glob pattern, e.g.
'**/*.go' or 'docs/*.md'. The full recursive tree is fetched once per
repository and ref, then filtered locally.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := gh.ParseRepoTarget(args[0])
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			var opts gh.GlobOptions
			opts.Ref, _ = cmd.Flags().GetString("ref")

			res, err := client.GlobFiles(cmd.Context(), target, args[1], opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), res)
			}
			for _, m := range res.Matches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			if res.Truncated {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: the remote tree listing was truncated; matches may be incomplete")
			}
			return nil
		},
	}

	cmd.Flags().StringP("ref", "r", "", "branch, tag, or commit (default branch if omitted)")
	return cmd
}
