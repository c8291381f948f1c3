package gh_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubscope/hubscope/internal/gh"
)

func TestRemoteError_CarriesStatusAndMessage(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /repos/acme/gone/contents/x.txt", http.StatusNotFound, map[string]any{"message": "Not Found"})
	client := newTestClient(t, api, gh.Options{})

	_, err := client.ReadFile(context.Background(), mustTarget(t, "acme/gone"), "x.txt", gh.ReadFileOptions{})
	require.Error(t, err)

	var re *gh.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, "Not Found", re.Message)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Not Found")
}

func TestRemoteError_RateLimitHintOn403(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET /repos/acme/web/contents/x.txt", http.StatusForbidden, map[string]any{"message": "API rate limit exceeded"})
	client := newTestClient(t, api, gh.Options{})

	_, err := client.ReadFile(context.Background(), mustTarget(t, "acme/web"), "x.txt", gh.ReadFileOptions{})
	require.Error(t, err)

	var re *gh.RemoteError
	require.ErrorAs(t, err, &re)
	assert.True(t, re.RateLimit)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestParseRepoTarget(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"acme/web", false},
		{"  acme/web  ", false},
		{"acme", true},
		{"acme/", true},
		{"/web", true},
		{"acme/web/extra", true},
		{"", true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			target, err := gh.ParseRepoTarget(tc.in)
			if tc.wantErr {
				var verr *gh.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "acme/web", target.String())
		})
	}
}
