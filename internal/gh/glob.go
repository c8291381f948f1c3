package gh

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar"
)

// GlobOptions pin a glob run to a ref; empty means the default branch.
type GlobOptions struct {
	Ref string
}

// GlobFiles fetches the full recursive tree at a ref (once per repo/ref/
// pattern, then cached for the process lifetime) and returns the blob paths
// matching pattern. Shell-style glob semantics including dotfiles, plus `**`.
// A truncated remote tree is reported via the Truncated flag, not an error.
func (c *Client) GlobFiles(ctx context.Context, target RepoTarget, pattern string, opts GlobOptions) (*GlobResult, error) {
	if _, err := doublestar.Match(pattern, ""); err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid glob pattern %q: %v", pattern, err)}
	}

	ref := opts.Ref
	if ref == "" {
		b, err := c.defaultBranch(ctx, target)
		if err != nil {
			return nil, err
		}
		ref = b
	}

	key := fmt.Sprintf("%s@%s:%s", target, ref, pattern)
	cached, err := c.trees.getOrFill(key, func() (treeMatches, error) {
		return c.fetchTreeMatches(ctx, target, ref, pattern)
	})
	if err != nil {
		return nil, err
	}

	// Defensive copy so callers cannot mutate cache state.
	matches := make([]string, len(cached.matches))
	copy(matches, cached.matches)

	return &GlobResult{
		Ref:       ref,
		Pattern:   pattern,
		Matches:   matches,
		Truncated: cached.truncated,
	}, nil
}

func (c *Client) fetchTreeMatches(ctx context.Context, target RepoTarget, ref, pattern string) (treeMatches, error) {
	tree, _, err := c.gh.Git.GetTree(ctx, target.Owner, target.Repo, ref, true)
	if err != nil {
		return treeMatches{}, wrapRemote(fmt.Sprintf("fetch tree %s@%s", target, ref), err)
	}
	if tree.Entries == nil {
		return treeMatches{}, fmt.Errorf("fetch tree %s@%s: response has no tree entries", target, ref)
	}

	tm := treeMatches{truncated: tree.GetTruncated()}
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.GetPath())
		if err != nil {
			return treeMatches{}, fmt.Errorf("match %q against %q: %w", pattern, entry.GetPath(), err)
		}
		if ok {
			tm.matches = append(tm.matches, entry.GetPath())
		}
	}
	c.log.Debug("tree glob resolved", "target", target.String(), "ref", ref, "pattern", pattern,
		"matches", len(tm.matches), "truncated", tm.truncated)
	return tm, nil
}

// defaultBranch resolves and memoizes a repository's default branch. The
// entry lives for the process lifetime; a branch change mid-run going unseen
// is an accepted staleness trade-off.
func (c *Client) defaultBranch(ctx context.Context, target RepoTarget) (string, error) {
	return c.branches.getOrFill(target.String(), func() (string, error) {
		repo, _, err := c.gh.Repositories.Get(ctx, target.Owner, target.Repo)
		if err != nil {
			return "", wrapRemote("resolve default branch for "+target.String(), err)
		}
		if repo.GetDefaultBranch() == "" {
			return "", fmt.Errorf("resolve default branch for %s: repository metadata has no default branch", target)
		}
		return repo.GetDefaultBranch(), nil
	})
}
