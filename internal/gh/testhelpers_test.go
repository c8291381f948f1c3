package gh_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hubscope/hubscope/internal/gh"
)

// fakeAPI scripts GitHub API routes and counts how often each is hit.
type fakeAPI struct {
	mux *http.ServeMux

	mu     sync.Mutex
	counts map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{mux: http.NewServeMux(), counts: make(map[string]int)}
}

// respond registers a route answering with a fixed status and JSON body.
func (f *fakeAPI) respond(pattern string, status int, body any) {
	f.respondFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// respondRaw registers a route answering with a raw (non-JSON) body.
func (f *fakeAPI) respondRaw(pattern string, status int, body string) {
	f.respondFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// respondFunc registers a route with a custom handler; hits are still counted.
func (f *fakeAPI) respondFunc(pattern string, fn http.HandlerFunc) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.counts[pattern]++
		f.mu.Unlock()
		fn(w, r)
	})
}

func (f *fakeAPI) calls(pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[pattern]
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.counts {
		n += c
	}
	return n
}

// newTestClient points a real client at the fake API.
func newTestClient(t *testing.T, api *fakeAPI, opts gh.Options) *gh.Client {
	t.Helper()
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)
	return gh.New(gh.NewTokenClient("", srv.URL, 0), opts)
}

// repoJSON builds a repository payload in the API's wire shape.
func repoJSON(fullName string, stars int, language string) map[string]any {
	name := fullName
	for i := range fullName {
		if fullName[i] == '/' {
			name = fullName[i+1:]
			break
		}
	}
	m := map[string]any{
		"name":             name,
		"full_name":        fullName,
		"stargazers_count": stars,
		"html_url":         "https://example.test/" + fullName,
	}
	if language != "" {
		m["language"] = language
	}
	return m
}

func searchItems(items ...map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{
		"total_count":        len(items),
		"incomplete_results": false,
		"items":              items,
	}
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// fileJSON builds a contents-endpoint file payload.
func fileJSON(path, content string) map[string]any {
	return map[string]any{
		"type":     "file",
		"name":     path,
		"path":     path,
		"size":     len(content),
		"sha":      "sha-" + path,
		"content":  b64(content),
		"encoding": "base64",
	}
}

func mustTarget(t *testing.T, s string) gh.RepoTarget {
	t.Helper()
	target, err := gh.ParseRepoTarget(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return target
}
