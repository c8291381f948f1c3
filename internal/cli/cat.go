package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <owner/repo> <path>",
		Short: "Print a file from a repository",
		Long: `Print a file. Files over 200 KiB must be read with an explicit --lines
range, e.g. --lines 100:160 or --lines 42 for a single line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := gh.ParseRepoTarget(args[0])
			if err != nil {
				return err
			}

			var opts gh.ReadFileOptions
			opts.Ref, _ = cmd.Flags().GetString("ref")
			opts.LineNumbers, _ = cmd.Flags().GetBool("line-numbers")

			if spec, _ := cmd.Flags().GetString("lines"); spec != "" {
				r, err := parseLineRange(spec)
				if err != nil {
					return err
				}
				opts.Range = r
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			slice, err := client.ReadFile(cmd.Context(), target, args[1], opts)
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return printJSON(cmd.OutOrStdout(), slice)
			}
			for _, line := range slice.Lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringP("ref", "r", "", "branch, tag, or commit (default branch if omitted)")
	cmd.Flags().String("lines", "", "1-based inclusive line range, start:end or a single line")
	cmd.Flags().BoolP("line-numbers", "n", false, "prefix each line with its line number")
	return cmd
}

// parseLineRange parses "start:end" or a bare "line" into a ReadRange.
func parseLineRange(spec string) (*gh.ReadRange, error) {
	startStr, endStr, found := strings.Cut(spec, ":")
	if !found {
		endStr = startStr
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid line range %q", spec)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid line range %q", spec)
	}
	return &gh.ReadRange{Start: start, End: end}, nil
}
