// github-mock is a seeded, in-memory fake of the slice of the GitHub REST API
// that hubscope consumes: repository listings, contents, recursive trees, raw
// blobs, search (repositories/code/commits), and ref comparison. Point the
// CLI at it for local development:
//
//	HUBSCOPE_API_URL=http://localhost:9090 hubscope ls acme/billing-api
package main

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// repoMeta is the repository JSON shape the real API returns, reduced to the
// fields hubscope reads.
type repoMeta struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description,omitempty"`
	Language        string   `json:"language,omitempty"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Private         bool     `json:"private"`
	HTMLURL         string   `json:"html_url"`
	DefaultBranch   string   `json:"default_branch"`
	Topics          []string `json:"topics,omitempty"`
}

type contentEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	SHA      string `json:"sha"`
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int    `json:"size"`
	SHA  string `json:"sha"`
}

type commitJSON struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Date  string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
}

// store holds repository metadata and file content keyed by "owner/repo".
type store struct {
	mu      sync.RWMutex
	repos   []repoMeta
	files   map[string]map[string]string // repo key → path → content
	commits map[string][]commitJSON      // repo key → seeded history
}

func newStore() *store {
	return &store{
		files:   make(map[string]map[string]string),
		commits: make(map[string][]commitJSON),
	}
}

func (s *store) repo(owner, repo string) *repoMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	full := owner + "/" + repo
	for i := range s.repos {
		if strings.EqualFold(s.repos[i].FullName, full) {
			return &s.repos[i]
		}
	}
	return nil
}

func (s *store) reposByOwner(owner string) []repoMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []repoMeta
	for _, r := range s.repos {
		if owner == "" || strings.EqualFold(strings.Split(r.FullName, "/")[0], owner) {
			out = append(out, r)
		}
	}
	return out
}

func (s *store) getFile(key, path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[key][path]
	return content, ok
}

// listDir mirrors GET /contents/:path for a directory: the immediate children
// of path, one entry per name.
func (s *store) listDir(key, dirPath string) []contentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var entries []contentEntry
	for filePath, content := range s.files[key] {
		if !strings.HasPrefix(filePath, prefix) {
			continue
		}
		rest := filePath[len(prefix):]
		idx := strings.Index(rest, "/")
		if idx == -1 {
			entries = append(entries, contentEntry{
				Type: "file",
				Name: rest,
				Path: filePath,
				Size: len(content),
				SHA:  blobSHA(content),
			})
			continue
		}
		name := rest[:idx]
		if seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, contentEntry{Type: "dir", Name: name, Path: prefix + name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (s *store) blobBySHA(key, sha string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, content := range s.files[key] {
		if blobSHA(content) == sha {
			return content, true
		}
	}
	return "", false
}

func blobSHA(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := newStore()
	seed(s)
	log.Info("seeded", "repos", len(s.repos))

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	registerRoutes(r, s)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}
	log.Info("github-mock listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func registerRoutes(r *gin.Engine, s *store) {
	r.GET("/orgs/:org/repos", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.reposByOwner(c.Param("org")))
	})
	r.GET("/users/:user/repos", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.reposByOwner(c.Param("user")))
	})
	r.GET("/user/repos", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.reposByOwner(""))
	})

	r.GET("/repos/:owner/:repo", func(c *gin.Context) {
		meta := s.repo(c.Param("owner"), c.Param("repo"))
		if meta == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusOK, meta)
	})

	r.GET("/repos/:owner/:repo/contents/*path", handleContents(s))
	r.GET("/repos/:owner/:repo/git/trees/:ref", handleTree(s))
	r.GET("/repos/:owner/:repo/git/blobs/:sha", handleBlob(s))
	r.GET("/repos/:owner/:repo/compare/:basehead", handleCompare(s))

	r.GET("/search/repositories", handleRepoSearch(s))
	r.GET("/search/code", handleCodeSearch(s))
	r.GET("/search/commits", handleCommitSearch(s))
}

func handleContents(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("owner") + "/" + c.Param("repo")
		path := strings.Trim(c.Param("path"), "/")

		if content, ok := s.getFile(key, path); ok {
			c.JSON(http.StatusOK, contentEntry{
				Type:     "file",
				Name:     path[strings.LastIndex(path, "/")+1:],
				Path:     path,
				Size:     len(content),
				SHA:      blobSHA(content),
				Content:  base64.StdEncoding.EncodeToString([]byte(content)),
				Encoding: "base64",
			})
			return
		}

		entries := s.listDir(key, path)
		if len(entries) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func handleTree(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("owner") + "/" + c.Param("repo")
		s.mu.RLock()
		files := s.files[key]
		var entries []treeEntry
		dirs := map[string]bool{}
		for path, content := range files {
			entries = append(entries, treeEntry{Path: path, Type: "blob", Size: len(content), SHA: blobSHA(content)})
			for d := parentDir(path); d != ""; d = parentDir(d) {
				dirs[d] = true
			}
		}
		s.mu.RUnlock()
		for d := range dirs {
			entries = append(entries, treeEntry{Path: d, Type: "tree"})
		}
		if entries == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
		c.JSON(http.StatusOK, gin.H{
			"sha":       c.Param("ref"),
			"truncated": false,
			"tree":      entries,
		})
	}
}

func handleBlob(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("owner") + "/" + c.Param("repo")
		content, ok := s.blobBySHA(key, c.Param("sha"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		// go-github asks for the raw media type; honor JSON fallback too.
		if strings.Contains(c.GetHeader("Accept"), "raw") {
			c.String(http.StatusOK, content)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sha":      c.Param("sha"),
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
			"encoding": "base64",
		})
	}
}

func handleCompare(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("owner") + "/" + c.Param("repo")
		s.mu.RLock()
		commits := s.commits[key]
		s.mu.RUnlock()
		if commits == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "ahead",
			"ahead_by":      len(commits),
			"behind_by":     0,
			"total_commits": len(commits),
			"commits":       commits,
			"files": []gin.H{
				{
					"filename":  "README.md",
					"status":    "modified",
					"additions": 3,
					"deletions": 1,
					"changes":   4,
					"patch":     "@@ -1 +1,3 @@\n-old\n+new\n+lines\n",
				},
			},
		})
	}
}

func handleRepoSearch(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		terms := freeTerms(c.Query("q"))
		var items []repoMeta
		for _, r := range s.reposByOwner("") {
			if len(terms) == 0 || matchesAll(r.FullName+" "+r.Description, terms) {
				items = append(items, r)
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"total_count":        len(items),
			"incomplete_results": false,
			"items":              items,
		})
	}
}

func handleCodeSearch(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		terms := freeTerms(c.Query("q"))
		var items []gin.H
		s.mu.RLock()
		defer s.mu.RUnlock()
		for key, files := range s.files {
			meta := s.repoLocked(key)
			for path, content := range files {
				if len(terms) == 0 || !matchesAll(content, terms) {
					continue
				}
				items = append(items, gin.H{
					"name":       path[strings.LastIndex(path, "/")+1:],
					"path":       path,
					"sha":        blobSHA(content),
					"html_url":   fmt.Sprintf("http://localhost/%s/blob/main/%s", key, path),
					"repository": meta,
					"text_matches": []gin.H{
						{
							"fragment": fragmentAround(content, terms[0]),
							"matches":  []gin.H{{"text": terms[0]}},
						},
					},
				})
			}
		}
		sort.Slice(items, func(i, j int) bool { return items[i]["path"].(string) < items[j]["path"].(string) })
		c.JSON(http.StatusOK, gin.H{"total_count": len(items), "incomplete_results": false, "items": items})
	}
}

func handleCommitSearch(s *store) gin.HandlerFunc {
	return func(c *gin.Context) {
		terms := freeTerms(c.Query("q"))
		var items []commitJSON
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, commits := range s.commits {
			for _, cm := range commits {
				if matchesAll(cm.Commit.Message, terms) {
					items = append(items, cm)
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"total_count": len(items), "incomplete_results": false, "items": items})
	}
}

// repoLocked is repo() for callers already holding the read lock.
func (s *store) repoLocked(key string) *repoMeta {
	for i := range s.repos {
		if strings.EqualFold(s.repos[i].FullName, key) {
			return &s.repos[i]
		}
	}
	return nil
}

// freeTerms drops search qualifiers (repo:, org:, language:, ...) and keeps
// the free-text terms of a query.
func freeTerms(q string) []string {
	var terms []string
	for _, f := range strings.Fields(q) {
		if strings.Contains(f, ":") {
			continue
		}
		terms = append(terms, strings.ToLower(f))
	}
	return terms
}

func matchesAll(haystack string, terms []string) bool {
	h := strings.ToLower(haystack)
	for _, t := range terms {
		if !strings.Contains(h, t) {
			return false
		}
	}
	return len(terms) > 0
}

// fragmentAround returns the matched line plus one line on each side, the way
// the real API's text-match fragments read.
func fragmentAround(content, term string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), term) {
			start := max(i-1, 0)
			end := min(i+1, len(lines)-1)
			return strings.Join(lines[start:end+1], "\n")
		}
	}
	return ""
}

func parentDir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx == -1 {
		return ""
	}
	return path[:idx]
}
