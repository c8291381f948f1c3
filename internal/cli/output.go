package cli

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/gh"
)

func jsonRequested(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding(" ")
	table.SetNoWhiteSpace(true)
	return table
}

func renderRepoTable(w io.Writer, repos []gh.RepositorySummary) {
	table := newTable(w, []string{"Repository", "Language", "Stars", "Description"})
	for _, r := range repos {
		table.Append([]string{r.FullName, r.Language, strconv.Itoa(r.Stars), truncate(r.Description, 80)})
	}
	table.Render()
}

func renderCommitTable(w io.Writer, commits []gh.CommitInfo) {
	table := newTable(w, []string{"SHA", "Date", "Author", "Message"})
	for _, c := range commits {
		date := ""
		if !c.Date.IsZero() {
			date = c.Date.Format("2006-01-02")
		}
		table.Append([]string{shortSHA(c.SHA), date, c.AuthorName, truncate(firstLine(c.Message), 80)})
	}
	table.Render()
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
