package vision

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"equitylens/internal/domain"
)

// Kind classifies why a vision extraction failed.
type Kind string

const (
	KindCallFailed         Kind = "call_failed"
	KindReplyNotJSON       Kind = "reply_not_json"
	KindReplyMissingArrays Kind = "reply_missing_arrays"
	KindNoItems            Kind = "no_items"
	KindUnsupportedMedia   Kind = "unsupported_media"
)

// Error is a typed vision failure. It matches domain.ErrVisionFailure so
// callers can treat every kind as advisory.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("vision %s", e.Kind)
	}
	return fmt.Sprintf("vision %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == domain.ErrVisionFailure
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the failure kind carried by err, or "" when err is not a
// vision Error.
func KindOf(err error) Kind {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Kind
	}
	return ""
}

// RateLimitError indicates a vision provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// Truncate shortens s to at most maxLen bytes for inclusion in error
// messages. The cut backs off to a rune boundary so the result stays valid
// UTF-8.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
