package gh

import (
	"log/slog"

	gogithub "github.com/google/go-github/v75/github"
)

// Client wraps an authenticated go-github client with the caches and merge
// logic of the browsing core. Caches are owned by the instance, so independent
// Clients are fully isolated; a single Client is safe for concurrent use.
type Client struct {
	gh  *gogithub.Client
	log *slog.Logger

	// true when the underlying client carries a credential; gates the
	// authenticated-user discovery channel.
	authenticated bool

	branches *memoTable[string]      // owner/repo → default branch
	trees    *memoTable[treeMatches] // owner/repo@ref:pattern → glob matches
	blobs    *memoTable[[]string]    // owner/repo:sha → decoded lines
}

// Options configure a Client. The zero value is usable.
type Options struct {
	// Logger receives debug/warn events; nil discards them.
	Logger *slog.Logger
	// Authenticated marks the underlying client as carrying a credential,
	// enabling the authenticated-user repository discovery channel.
	Authenticated bool
}

// New creates a Client on top of an authenticated (or anonymous) go-github
// client, typically from NewTokenClient or NewAppClient.
func New(gc *gogithub.Client, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		gh:            gc,
		log:           log,
		authenticated: opts.Authenticated,
		branches:      newMemoTable[string](),
		trees:         newMemoTable[treeMatches](),
		blobs:         newMemoTable[[]string](),
	}
}
