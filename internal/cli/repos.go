package cli

import (
	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newReposCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos [pattern]",
		Short: "Discover repositories by name, organization, or language",
		Long: `Discover repositories. With an --org the organization's repositories are
listed; otherwise your accessible repositories are consulted first, topped up
from GitHub's repository search when the window is not filled.

With --owner the discovery pipeline is bypassed and the owner's repositories
are listed plainly, in the order GitHub returns them. An empty --owner value
lists your own repositories.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("owner") {
				owner, _ := cmd.Flags().GetString("owner")
				opts := gh.ListRepositoriesOptions{}
				opts.Limit, _ = cmd.Flags().GetInt("limit")
				opts.Offset, _ = cmd.Flags().GetInt("offset")

				repos, err := client.ListRepositories(cmd.Context(), owner, opts)
				if err != nil {
					return err
				}
				if jsonRequested(cmd) {
					return printJSON(cmd.OutOrStdout(), repos)
				}
				renderRepoTable(cmd.OutOrStdout(), repos)
				return nil
			}

			opts := gh.SearchRepositoriesOptions{}
			if len(args) == 1 {
				opts.Pattern = args[0]
			}
			opts.Organization, _ = cmd.Flags().GetString("org")
			opts.Language, _ = cmd.Flags().GetString("language")
			opts.Limit, _ = cmd.Flags().GetInt("limit")
			opts.Offset, _ = cmd.Flags().GetInt("offset")

			repos, err := client.SearchRepositories(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), repos)
			}
			renderRepoTable(cmd.OutOrStdout(), repos)
			return nil
		},
	}

	cmd.Flags().StringP("org", "o", "", "restrict to one organization")
	cmd.Flags().String("owner", "", "list one user's repositories instead of discovering")
	cmd.Flags().StringP("language", "l", "", "filter by primary language")
	cmd.Flags().Int("limit", 30, "maximum repositories to return")
	cmd.Flags().Int("offset", 0, "repositories to skip")
	return cmd
}
