package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newCommitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commits <owner/repo>",
		Short: "Search a repository's commit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := gh.ParseRepoTarget(args[0])
			if err != nil {
				return err
			}

			var opts gh.SearchCommitsOptions
			opts.Query, _ = cmd.Flags().GetString("query")
			opts.Author, _ = cmd.Flags().GetString("author")
			opts.Path, _ = cmd.Flags().GetString("path")
			opts.Limit, _ = cmd.Flags().GetInt("limit")
			opts.Offset, _ = cmd.Flags().GetInt("offset")

			if opts.Since, err = parseDateFlag(cmd, "since"); err != nil {
				return err
			}
			if opts.Until, err = parseDateFlag(cmd, "until"); err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			commits, err := client.SearchCommits(cmd.Context(), target, opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), commits)
			}
			renderCommitTable(cmd.OutOrStdout(), commits)
			return nil
		},
	}

	cmd.Flags().StringP("query", "q", "", "free-text terms to match in commit messages")
	cmd.Flags().String("author", "", "filter by commit author")
	cmd.Flags().StringP("path", "p", "", "filter by touched path")
	cmd.Flags().String("since", "", "committer date lower bound (YYYY-MM-DD)")
	cmd.Flags().String("until", "", "committer date upper bound (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 30, "maximum commits to return")
	cmd.Flags().Int("offset", 0, "commits to skip")
	return cmd
}

func parseDateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, s)
	}
	return &t, nil
}
