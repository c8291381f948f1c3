package gh_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubscope/hubscope/internal/gh"
)

// ─── Merge priority ───────────────────────────────────────────────────────────

func TestSearchRepositories_ListingWinsOverSearchDuplicate(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /user/repos", http.StatusOK, []map[string]any{
		repoJSON("acme/tool", 1, "Go"),
	})
	// The search fallback reports the same repository with a wildly different
	// star count; the listing-sourced candidate must survive the merge.
	api.respond("GET /search/repositories", http.StatusOK, searchItems(
		repoJSON("acme/tool", 999, "Go"),
		repoJSON("acme/extra", 5, "Go"),
	))
	client := newTestClient(t, api, gh.Options{Authenticated: true})

	repos, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{})
	require.NoError(t, err)

	require.Len(t, repos, 2)
	assert.Equal(t, "acme/tool", repos[0].FullName)
	assert.Equal(t, 1, repos[0].Stars)
	assert.Equal(t, "acme/extra", repos[1].FullName)
}

func TestSearchRepositories_AccessibleChannelFailureFallsBackToSearch(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /user/repos", http.StatusInternalServerError, map[string]any{"message": "boom"})
	api.respond("GET /search/repositories", http.StatusOK, searchItems(
		repoJSON("acme/found", 3, "Go"),
	))
	client := newTestClient(t, api, gh.Options{Authenticated: true})

	repos, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{})
	require.NoError(t, err)

	require.Len(t, repos, 1)
	assert.Equal(t, "acme/found", repos[0].FullName)
}

// ─── Ordering & slicing ───────────────────────────────────────────────────────

func TestSearchRepositories_OrderedByStarsDescending(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /orgs/acme/repos", http.StatusOK, []map[string]any{
		repoJSON("acme/small", 3, "Go"),
		repoJSON("acme/big", 400, "Go"),
		repoJSON("acme/mid", 41, "Go"),
	})
	api.respond("GET /search/repositories", http.StatusOK, searchItems())
	client := newTestClient(t, api, gh.Options{})

	repos, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{Organization: "acme"})
	require.NoError(t, err)

	require.Len(t, repos, 3)
	assert.Equal(t, "acme/big", repos[0].FullName)
	assert.Equal(t, "acme/mid", repos[1].FullName)
	assert.Equal(t, "acme/small", repos[2].FullName)
}

func TestSearchRepositories_EqualStarsTieBreakByFullName(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /orgs/acme/repos", http.StatusOK, []map[string]any{
		repoJSON("acme/zeta", 7, "Go"),
		repoJSON("acme/alpha", 7, "Go"),
	})
	api.respond("GET /search/repositories", http.StatusOK, searchItems())
	client := newTestClient(t, api, gh.Options{})

	repos, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{Organization: "acme"})
	require.NoError(t, err)

	require.Len(t, repos, 2)
	assert.Equal(t, "acme/alpha", repos[0].FullName)
	assert.Equal(t, "acme/zeta", repos[1].FullName)
}

func TestSearchRepositories_OffsetLimitSliceIsStable(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /orgs/acme/repos", http.StatusOK, []map[string]any{
		repoJSON("acme/first", 50, "Go"),
		repoJSON("acme/second", 20, "Go"),
	})
	client := newTestClient(t, api, gh.Options{})

	opts := gh.SearchRepositoriesOptions{Organization: "acme", Limit: 1, Offset: 1}

	repos, err := client.SearchRepositories(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "acme/second", repos[0].FullName)

	again, err := client.SearchRepositories(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, repos, again)

	// The window was already filled by the listing channel.
	assert.Zero(t, api.calls("GET /search/repositories"))
}

// ─── Filters ──────────────────────────────────────────────────────────────────

func TestSearchRepositories_PatternTermsMatchShortOrFullName(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /user/repos", http.StatusOK, []map[string]any{
		repoJSON("acme/payments-api", 10, "Go"),
		repoJSON("acme/web", 9, "Go"),
	})
	api.respond("GET /search/repositories", http.StatusOK, searchItems())
	client := newTestClient(t, api, gh.Options{Authenticated: true})

	repos, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{Pattern: "PAY api"})
	require.NoError(t, err)

	require.Len(t, repos, 1)
	assert.Equal(t, "acme/payments-api", repos[0].FullName)
}

func TestSearchRepositories_LanguageFilterSparesSearchCandidates(t *testing.T) {
	api := newFakeAPI()
	// A listing result without a language field is assumed complete and is
	// rejected by an active language filter; a search hit without one is not,
	// since the language qualifier already filtered server-side.
	api.respond("GET /user/repos", http.StatusOK, []map[string]any{
		repoJSON("acme/nolang", 80, ""),
		repoJSON("acme/golib", 10, "Go"),
	})
	api.respond("GET /search/repositories", http.StatusOK, searchItems(
		repoJSON("acme/searchhit", 1, ""),
	))
	client := newTestClient(t, api, gh.Options{Authenticated: true})

	repos, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{Language: "go"})
	require.NoError(t, err)

	require.Len(t, repos, 2)
	assert.Equal(t, "acme/golib", repos[0].FullName)
	assert.Equal(t, "acme/searchhit", repos[1].FullName)
}

// ─── Search fallback query ────────────────────────────────────────────────────

func TestSearchRepositories_DefaultQualifierWhenUnfiltered(t *testing.T) {
	api := newFakeAPI()
	var gotQuery string
	api.respondFunc("GET /search/repositories", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":[]}`))
	})
	client := newTestClient(t, api, gh.Options{})

	_, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{})
	require.NoError(t, err)
	assert.Equal(t, "stars:>0", gotQuery)
}

func TestSearchRepositories_QualifiersFromFilters(t *testing.T) {
	api := newFakeAPI()
	var gotQuery string
	api.respond("GET /orgs/acme/repos", http.StatusOK, []map[string]any{})
	api.respondFunc("GET /search/repositories", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":[]}`))
	})
	client := newTestClient(t, api, gh.Options{})

	_, err := client.SearchRepositories(context.Background(), gh.SearchRepositoriesOptions{
		Pattern:      "billing",
		Organization: "acme",
		Language:     "go",
	})
	require.NoError(t, err)
	assert.Equal(t, "billing org:acme language:go", gotQuery)
}

// ─── Pagination ───────────────────────────────────────────────────────────────

func TestListRepositories_FollowsNextPageLinks(t *testing.T) {
	api := newFakeAPI()
	api.respondFunc("GET /users/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(`[{"name":"second","full_name":"acme/second","stargazers_count":1}]`))
			return
		}
		w.Header().Set("Link", `<?page=2>; rel="next"`)
		_, _ = w.Write([]byte(`[{"name":"first","full_name":"acme/first","stargazers_count":2}]`))
	})
	client := newTestClient(t, api, gh.Options{})

	repos, err := client.ListRepositories(context.Background(), "acme", gh.ListRepositoriesOptions{})
	require.NoError(t, err)

	require.Len(t, repos, 2)
	assert.Equal(t, "acme/first", repos[0].FullName)
	assert.Equal(t, "acme/second", repos[1].FullName)
	assert.Equal(t, 2, api.calls("GET /users/acme/repos"))
}
