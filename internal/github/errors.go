package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v57/github"
)

// AuthError is returned when GitHub rejects the configured credential.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "invalid GitHub token, check the GITHUB_TOKEN environment variable"
}

func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError is returned when the API quota is exhausted.
type RateLimitError struct {
	Reset time.Time
	Err   error
}

func (e *RateLimitError) Error() string {
	reset := "unknown"
	if !e.Reset.IsZero() {
		reset = e.Reset.Local().Format("15:04:05")
	}
	return fmt.Sprintf("rate limit exceeded, resets at %s; consider using a GitHub token for higher limits", reset)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// TransportError covers every other failed request. StatusCode is zero when
// no response was received.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("GitHub API request failed: %v", e.Err)
	}
	return fmt.Sprintf("GitHub API error: %s", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// classify turns a go-github error into one of the typed errors above.
func classify(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{Reset: rateErr.Rate.Reset.Time, Err: err}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now()
		if abuseErr.RetryAfter != nil {
			reset = reset.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{Reset: reset, Err: err}
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		resp := respErr.Response
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return &AuthError{Err: err}
		case resp.StatusCode == http.StatusForbidden && hasRateLimitHeaders(resp.Header):
			return &RateLimitError{Reset: resetTime(resp.Header), Err: err}
		}
		return &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}

	return &TransportError{Err: err}
}

func hasRateLimitHeaders(h http.Header) bool {
	return h.Get("X-RateLimit-Remaining") == "0" || h.Get("Retry-After") != ""
}

func resetTime(h http.Header) time.Time {
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(secs, 0)
		}
	}
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
	return time.Time{}
}
