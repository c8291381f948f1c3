package gh

import (
	"fmt"
	"strings"
	"time"
)

// RepoTarget identifies a remote repository. It is immutable once parsed.
type RepoTarget struct {
	Owner string
	Repo  string
}

// ParseRepoTarget parses an "owner/repo" string. Anything that is not exactly
// one non-empty owner and one non-empty repo separated by a single slash is a
// validation error.
func ParseRepoTarget(s string) (RepoTarget, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoTarget{}, &ValidationError{Msg: fmt.Sprintf("invalid repository %q, expected owner/repo", s)}
	}
	return RepoTarget{Owner: parts[0], Repo: parts[1]}, nil
}

// String returns the canonical "owner/repo" form.
func (t RepoTarget) String() string {
	return t.Owner + "/" + t.Repo
}

// RepositorySummary is the normalized view of a remote repository.
type RepositorySummary struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description,omitempty"`
	Language      string   `json:"language,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Private       bool     `json:"private"`
	URL           string   `json:"url"`
	DefaultBranch string   `json:"default_branch,omitempty"`
	Topics        []string `json:"topics,omitempty"`
}

// EntryType tags a DirectoryEntry variant.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDir       EntryType = "dir"
	EntrySymlink   EntryType = "symlink"
	EntrySubmodule EntryType = "submodule"
	EntryOther     EntryType = "other"
)

// DirectoryEntry is one child of a repository path.
type DirectoryEntry struct {
	Type   EntryType `json:"type"`
	Name   string    `json:"name"`
	Path   string    `json:"path"`
	Size   int       `json:"size,omitempty"`   // files only
	Target string    `json:"target,omitempty"` // symlinks only
	SHA    string    `json:"sha,omitempty"`    // blob identity, files only
}

// ReadRange is a 1-based inclusive window of lines.
type ReadRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r ReadRange) validate() error {
	if r.Start < 1 || r.End < r.Start {
		return &ValidationError{Msg: fmt.Sprintf("invalid line range %d:%d", r.Start, r.End)}
	}
	return nil
}

// FileSlice is the result of reading (part of) a file.
type FileSlice struct {
	Path      string   `json:"path"`
	Ref       string   `json:"ref,omitempty"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Lines     []string `json:"lines"`
}

// GlobResult holds the blob paths at a ref matching a glob pattern.
type GlobResult struct {
	Ref       string   `json:"ref"`
	Pattern   string   `json:"pattern"`
	Matches   []string `json:"matches"`
	Truncated bool     `json:"truncated"`
}

// Snippet is a contiguous 1-based window of file lines around one match line.
// Overlapping snippets from nearby matches are intentionally not merged.
type Snippet struct {
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Lines     []string `json:"lines"`
}

// CodeSearchItem is one file hit from code search, with reconstructed snippets.
type CodeSearchItem struct {
	Repository string    `json:"repository"`
	Path       string    `json:"path"`
	SHA        string    `json:"sha"`
	URL        string    `json:"url,omitempty"`
	Snippets   []Snippet `json:"snippets"`
}

// CommitStats are the change counters attached to a commit, when the remote
// supplies them.
type CommitStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

// CommitInfo is the normalized view of a commit.
type CommitInfo struct {
	SHA         string       `json:"sha"`
	Message     string       `json:"message"`
	AuthorName  string       `json:"author_name,omitempty"`
	AuthorEmail string       `json:"author_email,omitempty"`
	Date        time.Time    `json:"date,omitzero"`
	URL         string       `json:"url,omitempty"`
	Stats       *CommitStats `json:"stats,omitempty"`
}

// FileChange is one file's delta in a commit comparison.
type FileChange struct {
	Filename         string `json:"filename"`
	PreviousFilename string `json:"previous_filename,omitempty"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Changes          int    `json:"changes"`
	Patch            string `json:"patch,omitempty"`
}

// CompareResult is the normalized output of comparing two refs.
type CompareResult struct {
	Status       string       `json:"status,omitempty"`
	AheadBy      int          `json:"ahead_by"`
	BehindBy     int          `json:"behind_by"`
	TotalCommits int          `json:"total_commits"`
	Commits      []CommitInfo `json:"commits"`
	Files        []FileChange `json:"files"`
}
