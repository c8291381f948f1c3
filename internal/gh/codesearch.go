package gh

import (
	"context"
	"maps"
	"slices"
	"strings"

	gogithub "github.com/google/go-github/v75/github"
)

// defaultSnippetContext is the number of lines kept on each side of a match
// line when the caller does not ask for a specific context.
const defaultSnippetContext = 2

// SearchCodeOptions select and window a code search within one repository.
type SearchCodeOptions struct {
	// Pattern is the search text; must be non-empty after trimming. A
	// pattern already carrying a repo: qualifier is passed through as-is.
	Pattern string
	// Path narrows the search with a path: qualifier.
	Path   string
	Limit  int
	Offset int
	// Context is the snippet padding in lines on each side of a match; nil
	// means defaultSnippetContext.
	Context *int
}

// SearchCode runs a code search scoped to target and reconstructs line-
// accurate snippets for each hit. The remote only reports fragmentary match
// data, so the file's raw blob is re-fetched (through the blob cache) and the
// match lines are located by first case-insensitive containment, top to
// bottom. One snippet is produced per match line, independently windowed;
// overlapping snippets are not merged. Slicing to [offset, offset+limit)
// happens before reconstruction so unretained hits cost no blob fetches.
func (c *Client) SearchCode(ctx context.Context, target RepoTarget, opts SearchCodeOptions) ([]CodeSearchItem, error) {
	pattern := strings.TrimSpace(opts.Pattern)
	if pattern == "" {
		return nil, &ValidationError{Msg: "code search pattern must not be empty"}
	}
	limit, offset := normalizeWindow(opts.Limit, opts.Offset)
	want := offset + limit

	query := pattern
	if !strings.Contains(pattern, "repo:") {
		query += " repo:" + target.String()
	}
	if opts.Path != "" {
		query += " path:" + opts.Path
	}

	hits, err := collectPages(want, func(page int) ([]*gogithub.CodeResult, int, error) {
		res, resp, err := c.gh.Search.Code(ctx, query, &gogithub.SearchOptions{
			TextMatch:   true,
			ListOptions: gogithub.ListOptions{Page: page, PerPage: pageSize},
		})
		if err != nil {
			return nil, 0, wrapRemote("search code in "+target.String(), err)
		}
		return res.CodeResults, nextPage(resp), nil
	})
	if err != nil {
		return nil, err
	}

	contextLines := defaultSnippetContext
	if opts.Context != nil && *opts.Context >= 0 {
		contextLines = *opts.Context
	}

	retained := slicePage(hits, offset, limit)
	items := make([]CodeSearchItem, 0, len(retained))
	for _, hit := range retained {
		lines := c.blobLines(ctx, target, hit.GetSHA())
		items = append(items, CodeSearchItem{
			Repository: hit.GetRepository().GetFullName(),
			Path:       hit.GetPath(),
			SHA:        hit.GetSHA(),
			URL:        hit.GetHTMLURL(),
			Snippets:   buildSnippets(lines, hit.TextMatches, contextLines),
		})
	}
	return items, nil
}

// blobLines resolves a blob's decoded lines through the blob cache. Blob
// identities are content-addressed, so entries are valid for the process
// lifetime. A failed fetch caches an empty line list instead of propagating;
// one unreadable file must not abort the whole batch.
func (c *Client) blobLines(ctx context.Context, target RepoTarget, sha string) []string {
	key := target.String() + ":" + sha
	lines, _ := c.blobs.getOrFill(key, func() ([]string, error) {
		raw, _, err := c.gh.Git.GetBlobRaw(ctx, target.Owner, target.Repo, sha)
		if err != nil {
			c.log.Warn("blob fetch failed, snippets for this file will be empty",
				"target", target.String(), "sha", sha, "error", err)
			return []string{}, nil
		}
		return splitLines(string(raw)), nil
	})
	return lines
}

// buildSnippets locates match lines from the remote's fragmentary match data
// and windows each one. Candidate lines come from two sources: the
// highlighted sub-match strings, and the non-empty lines of the de-markup'd
// context fragment. Each is attributed to the first line containing it
// case-insensitively; when a short token repeats earlier in the file the
// earlier occurrence wins, matching the remote preview behavior.
func buildSnippets(lines []string, textMatches []*gogithub.TextMatch, contextLines int) []Snippet {
	if len(lines) == 0 {
		return []Snippet{}
	}

	indexSet := make(map[int]struct{})
	for _, tm := range textMatches {
		for _, m := range tm.Matches {
			if i, ok := findLine(lines, m.GetText()); ok {
				indexSet[i] = struct{}{}
			}
		}
		for fragLine := range strings.SplitSeq(stripHighlight(tm.GetFragment()), "\n") {
			fragLine = strings.TrimSpace(fragLine)
			if fragLine == "" {
				continue
			}
			if i, ok := findLine(lines, fragLine); ok {
				indexSet[i] = struct{}{}
			}
		}
	}

	indices := slices.Sorted(maps.Keys(indexSet))

	snippets := make([]Snippet, 0, len(indices))
	for _, idx := range indices {
		start := max(idx-contextLines, 0)
		end := min(idx+contextLines, len(lines)-1)
		window := make([]string, end-start+1)
		copy(window, lines[start:end+1])
		snippets = append(snippets, Snippet{
			StartLine: start + 1,
			EndLine:   end + 1,
			Lines:     window,
		})
	}
	return snippets
}

// findLine returns the 0-based index of the first line containing needle
// case-insensitively.
func findLine(lines []string, needle string) (int, bool) {
	needle = strings.ToLower(needle)
	if needle == "" {
		return 0, false
	}
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			return i, true
		}
	}
	return 0, false
}

var highlightStripper = strings.NewReplacer("<em>", "", "</em>", "")

func stripHighlight(fragment string) string {
	return highlightStripper.Replace(fragment)
}
