package gh

import (
	"context"
	"maps"
	"slices"
	"strings"

	gogithub "github.com/google/go-github/v75/github"
)

// Discovery channel priorities. Listings (organization or authenticated user)
// are assumed complete and beat full-text search results on merge.
const (
	prioListing = 0
	prioSearch  = 1
)

// channelSlack bounds how far past offset+limit a channel enumeration may
// paginate before giving up on a very large channel.
const channelSlack = 100

// SearchRepositoriesOptions select and window repository discovery.
type SearchRepositoriesOptions struct {
	// Pattern is a set of whitespace-separated terms; every term must be a
	// case-insensitive substring of the repository's short or full name.
	Pattern string
	// Organization restricts discovery to one organization's repositories.
	Organization string
	// Language filters by primary language, case-insensitively.
	Language string
	Limit    int
	Offset   int
}

type repoCandidate struct {
	summary  RepositorySummary
	priority int
	score    float64
}

// SearchRepositories aggregates repositories from the organization listing or
// the authenticated user's accessible repositories (priority 0), topping up
// from full-text repository search (priority 1) when those channels do not
// fill the requested window. Candidates are deduplicated by full name with
// first-best-priority-wins, then totally ordered by priority, stars, search
// relevance, and full name before the [offset, offset+limit) slice is taken.
func (c *Client) SearchRepositories(ctx context.Context, opts SearchRepositoriesOptions) ([]RepositorySummary, error) {
	limit, offset := normalizeWindow(opts.Limit, opts.Offset)
	want := offset + limit

	merged := make(map[string]repoCandidate)

	if opts.Organization != "" {
		repos, err := c.listOrgRepos(ctx, opts.Organization, want+channelSlack)
		if err != nil {
			return nil, err
		}
		mergeRepos(merged, repos, prioListing, opts)
	} else if c.authenticated {
		repos, err := c.listAccessibleRepos(ctx, want+channelSlack)
		if err != nil {
			// Channel unavailable (bad credential, SAML enforcement, ...);
			// discovery proceeds via the search fallback.
			c.log.Warn("accessible-repository listing failed, falling back to search", "error", err)
		} else {
			mergeRepos(merged, repos, prioListing, opts)
		}
	}

	if len(merged) < want {
		if err := c.searchRepoFallback(ctx, opts, want, merged); err != nil {
			return nil, err
		}
	}

	cands := slices.Collect(maps.Values(merged))
	slices.SortFunc(cands, compareCandidates)

	out := make([]RepositorySummary, 0, len(cands))
	for _, cand := range cands {
		out = append(out, cand.summary)
	}
	return slicePage(out, offset, limit), nil
}

// ListRepositoriesOptions window a plain per-owner repository listing.
type ListRepositoriesOptions struct {
	Limit  int
	Offset int
}

// ListRepositories enumerates the repositories of one user or organization,
// in the order the remote returns them. With an empty owner it lists the
// authenticated user's own repositories instead.
func (c *Client) ListRepositories(ctx context.Context, owner string, opts ListRepositoriesOptions) ([]RepositorySummary, error) {
	limit, offset := normalizeWindow(opts.Limit, opts.Offset)

	var (
		repos []*gogithub.Repository
		err   error
	)
	if owner == "" {
		repos, err = c.listAccessibleRepos(ctx, offset+limit+channelSlack)
	} else {
		repos, err = collectPages(offset+limit+channelSlack, func(page int) ([]*gogithub.Repository, int, error) {
			rs, resp, err := c.gh.Repositories.ListByUser(ctx, owner, &gogithub.RepositoryListByUserOptions{
				ListOptions: gogithub.ListOptions{Page: page, PerPage: pageSize},
			})
			if err != nil {
				return nil, 0, wrapRemote("list repositories for "+owner, err)
			}
			return rs, nextPage(resp), nil
		})
	}
	if err != nil {
		return nil, err
	}

	out := make([]RepositorySummary, 0, len(repos))
	for _, r := range repos {
		out = append(out, summarizeRepo(r))
	}
	return slicePage(out, offset, limit), nil
}

// ─── Channels ─────────────────────────────────────────────────────────────────

func (c *Client) listOrgRepos(ctx context.Context, org string, max int) ([]*gogithub.Repository, error) {
	return collectPages(max, func(page int) ([]*gogithub.Repository, int, error) {
		repos, resp, err := c.gh.Repositories.ListByOrg(ctx, org, &gogithub.RepositoryListByOrgOptions{
			ListOptions: gogithub.ListOptions{Page: page, PerPage: pageSize},
		})
		if err != nil {
			return nil, 0, wrapRemote("list repositories for organization "+org, err)
		}
		return repos, nextPage(resp), nil
	})
}

func (c *Client) listAccessibleRepos(ctx context.Context, max int) ([]*gogithub.Repository, error) {
	return collectPages(max, func(page int) ([]*gogithub.Repository, int, error) {
		repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, &gogithub.RepositoryListByAuthenticatedUserOptions{
			Affiliation: "owner,collaborator,organization_member",
			ListOptions: gogithub.ListOptions{Page: page, PerPage: pageSize},
		})
		if err != nil {
			return nil, 0, wrapRemote("list accessible repositories", err)
		}
		return repos, nextPage(resp), nil
	})
}

// searchRepoFallback tops merged up from the full-text repository search. The
// remote returns hits in relevance order; that rank is preserved as a
// descending score so the final sort can use it as a tie-break below stars.
func (c *Client) searchRepoFallback(ctx context.Context, opts SearchRepositoriesOptions, want int, merged map[string]repoCandidate) error {
	var quals []string
	if p := strings.TrimSpace(opts.Pattern); p != "" {
		quals = append(quals, p)
	}
	if opts.Organization != "" {
		quals = append(quals, "org:"+opts.Organization)
	}
	if opts.Language != "" {
		quals = append(quals, "language:"+opts.Language)
	}
	if len(quals) == 0 {
		quals = append(quals, "stars:>0")
	}
	query := strings.Join(quals, " ")

	repos, err := collectPages(want, func(page int) ([]*gogithub.Repository, int, error) {
		res, resp, err := c.gh.Search.Repositories(ctx, query, &gogithub.SearchOptions{
			ListOptions: gogithub.ListOptions{Page: page, PerPage: pageSize},
		})
		if err != nil {
			return nil, 0, wrapRemote("search repositories", err)
		}
		return res.Repositories, nextPage(resp), nil
	})
	if err != nil {
		return err
	}

	mergeRepos(merged, repos, prioSearch, opts)
	return nil
}

// ─── Merge & ordering ─────────────────────────────────────────────────────────

// mergeRepos filters the channel's repositories and folds the survivors into
// the dedup map. A key already held at an equal-or-better priority is never
// overwritten. Search hits keep their arrival order as a descending score,
// the remote's relevance order; listing candidates carry no score.
func mergeRepos(merged map[string]repoCandidate, repos []*gogithub.Repository, priority int, opts SearchRepositoriesOptions) {
	for i, r := range repos {
		s := summarizeRepo(r)
		if !matchesFilters(s, priority, opts) {
			continue
		}
		var score float64
		if priority == prioSearch {
			score = float64(len(repos) - i)
		}
		cand := repoCandidate{summary: s, priority: priority, score: score}
		if old, ok := merged[s.FullName]; !ok || cand.priority < old.priority {
			merged[s.FullName] = cand
		}
	}
}

// matchesFilters applies the discovery filters to one candidate. A listing
// (priority 0) candidate without a language field is rejected outright when a
// language filter is active: listings are assumed complete, so missing data
// means non-match. Search-sourced candidates are spared, since the language
// qualifier already filtered them server-side and search payloads routinely
// omit the field.
func matchesFilters(s RepositorySummary, priority int, opts SearchRepositoriesOptions) bool {
	if opts.Organization != "" {
		owner, _, _ := strings.Cut(s.FullName, "/")
		if !strings.EqualFold(owner, opts.Organization) {
			return false
		}
	}
	if opts.Pattern != "" {
		name := strings.ToLower(s.Name)
		full := strings.ToLower(s.FullName)
		for _, term := range strings.Fields(strings.ToLower(opts.Pattern)) {
			if !strings.Contains(name, term) && !strings.Contains(full, term) {
				return false
			}
		}
	}
	if opts.Language != "" {
		if s.Language == "" {
			return priority == prioSearch
		}
		if !strings.EqualFold(s.Language, opts.Language) {
			return false
		}
	}
	return true
}

func compareCandidates(a, b repoCandidate) int {
	if a.priority != b.priority {
		return a.priority - b.priority
	}
	if a.summary.Stars != b.summary.Stars {
		return b.summary.Stars - a.summary.Stars
	}
	switch {
	case a.score > b.score:
		return -1
	case a.score < b.score:
		return 1
	}
	return strings.Compare(a.summary.FullName, b.summary.FullName)
}

func summarizeRepo(r *gogithub.Repository) RepositorySummary {
	return RepositorySummary{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Private:       r.GetPrivate(),
		URL:           r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
		Topics:        r.Topics,
	}
}

func nextPage(resp *gogithub.Response) int {
	if resp == nil {
		return 0
	}
	return resp.NextPage
}

// normalizeWindow clamps the caller's window: limit defaults to 30 when
// unset, offset to 0.
func normalizeWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
