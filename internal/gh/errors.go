package gh

import (
	"errors"
	"fmt"
	"net/http"

	gogithub "github.com/google/go-github/v75/github"
)

// ValidationError reports malformed caller input. It is always returned
// before any network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// RemoteError is a non-success response from the GitHub API, flattened into
// one descriptive message.
type RemoteError struct {
	StatusCode int
	Reason     string
	Message    string
	RateLimit  bool
}

func (e *RemoteError) Error() string {
	s := fmt.Sprintf("GitHub API error: %d %s", e.StatusCode, e.Reason)
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.RateLimit {
		s += " (you may be rate limited; wait before retrying, or authenticate to raise the limit)"
	}
	return s
}

// wrapRemote converts go-github's typed errors into a *RemoteError. Errors
// that did not come from an HTTP response (network failures, context
// cancellation) pass through wrapped with the operation name.
func wrapRemote(op string, err error) error {
	if err == nil {
		return nil
	}

	var rle *gogithub.RateLimitError
	if errors.As(err, &rle) {
		re := &RemoteError{Message: rle.Message, RateLimit: true}
		if rle.Response != nil {
			re.StatusCode = rle.Response.StatusCode
			re.Reason = http.StatusText(rle.Response.StatusCode)
		}
		return fmt.Errorf("%s: %w", op, re)
	}

	var arle *gogithub.AbuseRateLimitError
	if errors.As(err, &arle) {
		re := &RemoteError{Message: arle.Message, RateLimit: true}
		if arle.Response != nil {
			re.StatusCode = arle.Response.StatusCode
			re.Reason = http.StatusText(arle.Response.StatusCode)
		}
		return fmt.Errorf("%s: %w", op, re)
	}

	var ghe *gogithub.ErrorResponse
	if errors.As(err, &ghe) {
		re := &RemoteError{Message: ghe.Message}
		if ghe.Response != nil {
			re.StatusCode = ghe.Response.StatusCode
			re.Reason = http.StatusText(ghe.Response.StatusCode)
			re.RateLimit = re.StatusCode == http.StatusForbidden || re.StatusCode == http.StatusTooManyRequests
		}
		return fmt.Errorf("%s: %w", op, re)
	}

	return fmt.Errorf("%s: %w", op, err)
}
