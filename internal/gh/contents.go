package gh

import (
	"context"
	"fmt"
	"strings"

	gogithub "github.com/google/go-github/v75/github"
)

// maxUnrangedFileSize guards whole-file reads: a file decoding to more than
// this many bytes must be read with an explicit line range.
const maxUnrangedFileSize = 200 * 1024

// ListPathOptions pin and window a directory listing.
type ListPathOptions struct {
	Ref    string
	Limit  int // 0 means unbounded after Offset
	Offset int
}

// ListPath lists the entries at a repository path. "." and "" mean the
// repository root. A path resolving to a single file yields a one-entry
// listing; offset-then-limit slicing happens client-side.
func (c *Client) ListPath(ctx context.Context, target RepoTarget, path string, opts ListPathOptions) ([]DirectoryEntry, error) {
	if path == "." {
		path = ""
	}

	var getOpts *gogithub.RepositoryContentGetOptions
	if opts.Ref != "" {
		getOpts = &gogithub.RepositoryContentGetOptions{Ref: opts.Ref}
	}

	file, dir, _, err := c.gh.Repositories.GetContents(ctx, target.Owner, target.Repo, path, getOpts)
	if err != nil {
		return nil, wrapRemote(fmt.Sprintf("list %s in %s", path, target), err)
	}

	// The contents endpoint returns an array for a directory and a single
	// object for a file; both are resolved here into one uniform sequence.
	var raw []*gogithub.RepositoryContent
	switch {
	case dir != nil:
		raw = dir
	case file != nil:
		raw = []*gogithub.RepositoryContent{file}
	default:
		return nil, fmt.Errorf("list %s in %s: empty contents response", path, target)
	}

	entries := make([]DirectoryEntry, 0, len(raw))
	for _, rc := range raw {
		entries = append(entries, summarizeEntry(rc))
	}
	return slicePage(entries, opts.Offset, opts.Limit), nil
}

// ReadFileOptions pin and window a file read.
type ReadFileOptions struct {
	Ref string
	// Range restricts the read to a 1-based inclusive line window. Without
	// it the whole file is returned, subject to the size guard.
	Range *ReadRange
	// LineNumbers prefixes each line with its file line number.
	LineNumbers bool
}

// ReadFile fetches and decodes a file, normalizes CRLF to LF, and returns the
// requested line window. A range end past end-of-file is truncated silently;
// a whole-file read larger than the size guard fails so callers are forced to
// ask for an explicit range.
func (c *Client) ReadFile(ctx context.Context, target RepoTarget, path string, opts ReadFileOptions) (*FileSlice, error) {
	if opts.Range != nil {
		if err := opts.Range.validate(); err != nil {
			return nil, err
		}
	}

	var getOpts *gogithub.RepositoryContentGetOptions
	if opts.Ref != "" {
		getOpts = &gogithub.RepositoryContentGetOptions{Ref: opts.Ref}
	}

	file, _, _, err := c.gh.Repositories.GetContents(ctx, target.Owner, target.Repo, path, getOpts)
	if err != nil {
		return nil, wrapRemote(fmt.Sprintf("read %s in %s", path, target), err)
	}
	if file == nil {
		return nil, fmt.Errorf("read %s in %s: path is not a file", path, target)
	}
	if file.Content == nil {
		return nil, fmt.Errorf("read %s in %s: file has no content payload", path, target)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("read %s in %s: decode content: %w", path, target, err)
	}
	if opts.Range == nil && len(content) > maxUnrangedFileSize {
		return nil, fmt.Errorf("read %s in %s: file is %d bytes (limit %d); pass an explicit line range",
			path, target, len(content), maxUnrangedFileSize)
	}

	lines := splitLines(content)

	start, end := 1, len(lines)
	if opts.Range != nil {
		start = opts.Range.Start
		if opts.Range.End < end {
			end = opts.Range.End
		}
		if start > len(lines) {
			return &FileSlice{Path: path, Ref: opts.Ref, StartLine: start, EndLine: start - 1, Lines: []string{}}, nil
		}
	}

	window := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		line := lines[i-1]
		if opts.LineNumbers {
			line = fmt.Sprintf("%6d %s", i, line)
		}
		window = append(window, line)
	}

	return &FileSlice{
		Path:      path,
		Ref:       opts.Ref,
		StartLine: start,
		EndLine:   end,
		Lines:     window,
	}, nil
}

func summarizeEntry(rc *gogithub.RepositoryContent) DirectoryEntry {
	e := DirectoryEntry{
		Name: rc.GetName(),
		Path: rc.GetPath(),
	}
	switch rc.GetType() {
	case "file":
		e.Type = EntryFile
		e.Size = rc.GetSize()
		e.SHA = rc.GetSHA()
	case "dir":
		e.Type = EntryDir
	case "symlink":
		e.Type = EntrySymlink
		e.Target = rc.GetTarget()
	case "submodule":
		e.Type = EntrySubmodule
	default:
		e.Type = EntryOther
	}
	return e
}

// splitLines normalizes CRLF to LF and splits. A trailing newline does not
// produce a phantom empty last line.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
