package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newGrepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grep <owner/repo> <pattern>",
		Short: "Search code in a repository",
		Long: `Search a repository's code and print line-accurate snippets around each
match, reconstructed from the file's actual content.`,
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

			opts := gh.SearchCodeOptions{Pattern: args[1]}
			opts.Path, _ = cmd.Flags().GetString("path")
			opts.Limit, _ = cmd.Flags().GetInt("limit")
			opts.Offset, _ = cmd.Flags().GetInt("offset")
			if cmd.Flags().Changed("context") {
				n, _ := cmd.Flags().GetInt("context")
				opts.Context = &n
			}

			items, err := client.SearchCode(cmd.Context(), target, opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), items)
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				fmt.Fprintf(out, "%s:\n", item.Path)
				for _, sn := range item.Snippets {
					for i, line := range sn.Lines {
						fmt.Fprintf(out, "%6d  %s\n", sn.StartLine+i, line)
					}
					fmt.Fprintln(out, "    --")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("path", "p", "", "restrict matches to a path prefix")
	cmd.Flags().IntP("context", "C", 2, "lines of context around each match line")
	cmd.Flags().Int("limit", 30, "maximum file hits to return")
	cmd.Flags().Int("offset", 0, "file hits to skip")
	return cmd
}
