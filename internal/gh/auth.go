// Package gh is the GitHub browsing core: authenticated transport, repository
// discovery with priority merging, content access, tree globbing, code-search
// snippet reconstruction, and commit search/compare. All results are
// normalized records; nothing here renders output or parses flags.
package gh

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"net/url"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v75/github"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// newBaseClient builds the underlying *http.Client with transparent retries
// for transient transport failures. retryMax 0 disables retrying.
func newBaseClient(retryMax int) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = stdlog.New(io.Discard, "", stdlog.LstdFlags)
	return rc.StandardClient()
}

// NewTokenClient creates a *github.Client authenticated with a personal
// access token. An empty token yields an unauthenticated client, usable for
// public data at a much lower rate limit. Pass baseURL="" for the real GitHub
// API, or a custom URL (e.g. a local mock server).
func NewTokenClient(token, baseURL string, retryMax int) *gogithub.Client {
	httpClient := newBaseClient(retryMax)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	c := gogithub.NewClient(httpClient)
	applyBaseURL(c, baseURL)
	return c
}

// NewAppClient creates a *github.Client authenticated as a GitHub App
// installation. privateKeyPath is the path to the app's PEM private key.
func NewAppClient(appID, installationID int64, privateKeyPath, baseURL string, retryMax int) (*gogithub.Client, error) {
	base := baseURL
	if base == "" {
		base = defaultAPIURL
	}

	tr, err := ghinstallation.NewKeyFromFile(newBaseClient(retryMax).Transport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("github app auth: %w", err)
	}
	tr.BaseURL = base

	c := gogithub.NewClient(&http.Client{Transport: tr})
	applyBaseURL(c, baseURL)
	return c, nil
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
