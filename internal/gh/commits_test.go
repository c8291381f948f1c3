package gh_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubscope/hubscope/internal/gh"
)

// ─── SearchCommits ────────────────────────────────────────────────────────────

func TestSearchCommits_NormalizesHits(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /search/commits", http.StatusOK, searchItems(
		map[string]any{
			"sha":      "abc123",
			"html_url": "https://example.test/commit/abc123",
			"commit": map[string]any{
				"message": "Fix rounding\n\nCents, not floats.",
				"author": map[string]any{
					"name":  "Dana Brooks",
					"email": "dana@acme.test",
					"date":  "2026-05-12T09:30:00Z",
				},
			},
			"author": map[string]any{"login": "dbrooks"},
		},
		map[string]any{
			"sha":    "def456",
			"commit": map[string]any{"message": "No git author"},
			"author": map[string]any{"login": "ghost-handle"},
		},
	))
	client := newTestClient(t, api, gh.Options{})

	commits, err := client.SearchCommits(context.Background(), mustTarget(t, "acme/web"), gh.SearchCommitsOptions{Query: "fix"})
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "abc123", commits[0].SHA)
	assert.Equal(t, "Fix rounding\n\nCents, not floats.", commits[0].Message)
	assert.Equal(t, "Dana Brooks", commits[0].AuthorName)
	assert.Equal(t, "dana@acme.test", commits[0].AuthorEmail)
	assert.Equal(t, 2026, commits[0].Date.Year())
	// The commit-search payload has no change stats.
	assert.Nil(t, commits[0].Stats)

	// Author name falls back to the account handle.
	assert.Equal(t, "ghost-handle", commits[1].AuthorName)
}

func TestSearchCommits_QueryQualifiers(t *testing.T) {
	api := newFakeAPI()
	var gotQuery string
	api.respondFunc("GET /search/commits", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":[]}`))
	})
	client := newTestClient(t, api, gh.Options{})

	since := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.SearchCommits(context.Background(), mustTarget(t, "acme/web"), gh.SearchCommitsOptions{
		Query:  "rounding",
		Author: "dbrooks",
		Path:   "internal/",
		Since:  &since,
		Until:  &until,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"repo:acme/web rounding author:dbrooks path:internal/ committer-date:>=2026-01-15 committer-date:<=2026-03-01",
		gotQuery)
}

// ─── CompareCommits ───────────────────────────────────────────────────────────

func compareJSON(withTotal bool) map[string]any {
	body := map[string]any{
		"status":    "ahead",
		"ahead_by":  2,
		"behind_by": 0,
		"commits": []map[string]any{
			{
				"sha":    "c1",
				"commit": map[string]any{"message": "first"},
				"stats":  map[string]any{"additions": 3, "deletions": 1, "total": 4},
			},
			{"sha": "c2", "commit": map[string]any{"message": "second"}},
		},
		"files": []map[string]any{
			{
				"filename":  "main.go",
				"status":    "modified",
				"additions": 3,
				"deletions": 1,
				"changes":   4,
				"patch":     "@@ -1 +1,3 @@\n-old\n+new\n",
			},
		},
	}
	if withTotal {
		body["total_commits"] = 9
	}
	return body
}

func TestCompareCommits_PatchIncludedOnlyOnRequest(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /repos/acme/web/compare/main...feature", http.StatusOK, compareJSON(true))
	client := newTestClient(t, api, gh.Options{})
	target := mustTarget(t, "acme/web")

	res, err := client.CompareCommits(context.Background(), target, "main", "feature", gh.CompareOptions{})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Empty(t, res.Files[0].Patch)

	res, err = client.CompareCommits(context.Background(), target, "main", "feature", gh.CompareOptions{IncludePatches: true})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "@@ -1 +1,3 @@\n-old\n+new\n", res.Files[0].Patch)
}

func TestCompareCommits_TotalFallsBackToCommitCount(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /repos/acme/web/compare/main...feature", http.StatusOK, compareJSON(false))
	client := newTestClient(t, api, gh.Options{})

	res, err := client.CompareCommits(context.Background(), mustTarget(t, "acme/web"), "main", "feature", gh.CompareOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalCommits)
	assert.Equal(t, 2, res.AheadBy)
	assert.Equal(t, "ahead", res.Status)
}

func TestCompareCommits_StatsCarriedWhenPresent(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /repos/acme/web/compare/main...feature", http.StatusOK, compareJSON(true))
	client := newTestClient(t, api, gh.Options{})

	res, err := client.CompareCommits(context.Background(), mustTarget(t, "acme/web"), "main", "feature", gh.CompareOptions{})
	require.NoError(t, err)

	require.Len(t, res.Commits, 2)
	require.NotNil(t, res.Commits[0].Stats)
	assert.Equal(t, 3, res.Commits[0].Stats.Additions)
	assert.Equal(t, 1, res.Commits[0].Stats.Deletions)
	assert.Equal(t, 4, res.Commits[0].Stats.Total)
	assert.Nil(t, res.Commits[1].Stats)
}

func TestCompareCommits_RemoteTotalWins(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /repos/acme/web/compare/main...feature", http.StatusOK, compareJSON(true))
	client := newTestClient(t, api, gh.Options{})

	res, err := client.CompareCommits(context.Background(), mustTarget(t, "acme/web"), "main", "feature", gh.CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 9, res.TotalCommits)
}

func TestCompareCommits_RequiresBaseAndHead(t *testing.T) {
	api := newFakeAPI()
	client := newTestClient(t, api, gh.Options{})
	target := mustTarget(t, "acme/web")

	var verr *gh.ValidationError

	_, err := client.CompareCommits(context.Background(), target, "main", "", gh.CompareOptions{})
	require.ErrorAs(t, err, &verr)

	_, err = client.CompareCommits(context.Background(), target, "  ", "feature", gh.CompareOptions{})
	require.ErrorAs(t, err, &verr)

	assert.Zero(t, api.totalCalls())
}
