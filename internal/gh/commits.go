package gh

import (
	"context"
	"fmt"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v75/github"
)

// SearchCommitsOptions select and window a commit search within one
// repository.
type SearchCommitsOptions struct {
	Query  string // free-text terms
	Author string
	Path   string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// SearchCommits runs a commit search scoped to target and normalizes each hit
// into a CommitInfo. The full commit message is preserved; the author name
// falls back to the account handle when the git author name is absent. The
// search payload carries no change stats, so Stats is always nil here.
func (c *Client) SearchCommits(ctx context.Context, target RepoTarget, opts SearchCommitsOptions) ([]CommitInfo, error) {
	limit, offset := normalizeWindow(opts.Limit, opts.Offset)
	want := offset + limit

	parts := []string{"repo:" + target.String()}
	if q := strings.TrimSpace(opts.Query); q != "" {
		parts = append(parts, q)
	}
	if opts.Author != "" {
		parts = append(parts, "author:"+opts.Author)
	}
	if opts.Path != "" {
		parts = append(parts, "path:"+opts.Path)
	}
	if opts.Since != nil {
		parts = append(parts, "committer-date:>="+opts.Since.Format("2006-01-02"))
	}
	if opts.Until != nil {
		parts = append(parts, "committer-date:<="+opts.Until.Format("2006-01-02"))
	}
	query := strings.Join(parts, " ")

	hits, err := collectPages(want, func(page int) ([]*gogithub.CommitResult, int, error) {
		res, resp, err := c.gh.Search.Commits(ctx, query, &gogithub.SearchOptions{
			ListOptions: gogithub.ListOptions{Page: page, PerPage: pageSize},
		})
		if err != nil {
			return nil, 0, wrapRemote("search commits in "+target.String(), err)
		}
		return res.Commits, nextPage(resp), nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]CommitInfo, 0, len(hits))
	for _, hit := range slicePage(hits, offset, limit) {
		out = append(out, summarizeCommitResult(hit))
	}
	return out, nil
}

// CompareOptions control the shape of a ref comparison.
type CompareOptions struct {
	// IncludePatches keeps per-file patch text; otherwise it is stripped
	// even when the remote supplied it.
	IncludePatches bool
}

// CompareCommits compares two refs and normalizes the result. Both base and
// head are required. The total commit count falls back to the length of the
// returned commit list when the remote omits it.
func (c *Client) CompareCommits(ctx context.Context, target RepoTarget, base, head string, opts CompareOptions) (*CompareResult, error) {
	if strings.TrimSpace(base) == "" || strings.TrimSpace(head) == "" {
		return nil, &ValidationError{Msg: "compare requires both a base and a head ref"}
	}

	cmp, _, err := c.gh.Repositories.CompareCommits(ctx, target.Owner, target.Repo, base, head, nil)
	if err != nil {
		return nil, wrapRemote(fmt.Sprintf("compare %s...%s in %s", base, head, target), err)
	}

	commits := make([]CommitInfo, 0, len(cmp.Commits))
	for _, rc := range cmp.Commits {
		commits = append(commits, summarizeRepositoryCommit(rc))
	}

	total := cmp.GetTotalCommits()
	if cmp.TotalCommits == nil {
		total = len(commits)
	}

	files := make([]FileChange, 0, len(cmp.Files))
	for _, f := range cmp.Files {
		fc := FileChange{
			Filename:         f.GetFilename(),
			PreviousFilename: f.GetPreviousFilename(),
			Status:           f.GetStatus(),
			Additions:        f.GetAdditions(),
			Deletions:        f.GetDeletions(),
			Changes:          f.GetChanges(),
		}
		if opts.IncludePatches {
			fc.Patch = f.GetPatch()
		}
		files = append(files, fc)
	}

	return &CompareResult{
		Status:       cmp.GetStatus(),
		AheadBy:      cmp.GetAheadBy(),
		BehindBy:     cmp.GetBehindBy(),
		TotalCommits: total,
		Commits:      commits,
		Files:        files,
	}, nil
}

func summarizeCommitResult(hit *gogithub.CommitResult) CommitInfo {
	info := CommitInfo{
		SHA: hit.GetSHA(),
		URL: hit.GetHTMLURL(),
	}
	if commit := hit.GetCommit(); commit != nil {
		info.Message = commit.GetMessage()
		if author := commit.GetAuthor(); author != nil {
			info.AuthorName = author.GetName()
			info.AuthorEmail = author.GetEmail()
			info.Date = author.GetDate().Time
		}
	}
	if info.AuthorName == "" {
		info.AuthorName = hit.GetAuthor().GetLogin()
	}
	return info
}

func summarizeRepositoryCommit(rc *gogithub.RepositoryCommit) CommitInfo {
	info := CommitInfo{
		SHA: rc.GetSHA(),
		URL: rc.GetHTMLURL(),
	}
	if commit := rc.GetCommit(); commit != nil {
		info.Message = commit.GetMessage()
		if author := commit.GetAuthor(); author != nil {
			info.AuthorName = author.GetName()
			info.AuthorEmail = author.GetEmail()
			info.Date = author.GetDate().Time
		}
	}
	if stats := rc.GetStats(); stats != nil {
		info.Stats = &CommitStats{
			Additions: stats.GetAdditions(),
			Deletions: stats.GetDeletions(),
			Total:     stats.GetTotal(),
		}
	}
	if info.AuthorName == "" {
		info.AuthorName = rc.GetAuthor().GetLogin()
	}
	return info
}
