package reddit

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Kind categorizes a failed fetch.
type Kind string

const (
	KindAuth        Kind = "auth"
	KindForbidden   Kind = "forbidden"
	KindNotFound    Kind = "not_found"
	KindRateLimited Kind = "rate_limited"
	KindNetwork     Kind = "network"
	KindUpstream    Kind = "upstream"
	KindDecode      Kind = "decode"
)

// Sentinels matched by errors.Is against a *FetchError of the same kind.
var (
	ErrAuth        = &FetchError{Kind: KindAuth}
	ErrForbidden   = &FetchError{Kind: KindForbidden}
	ErrNotFound    = &FetchError{Kind: KindNotFound}
	ErrRateLimited = &FetchError{Kind: KindRateLimited}
	ErrNetwork     = &FetchError{Kind: KindNetwork}
	ErrUpstream    = &FetchError{Kind: KindUpstream}
	ErrDecode      = &FetchError{Kind: KindDecode}
)

// FetchError is returned by every Client method that talks to the API.
type FetchError struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is a FetchError of the same kind.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first FetchError in err's chain, or "".
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func statusError(op string, status int) *FetchError {
	kind := KindUpstream
	switch status {
	case http.StatusUnauthorized:
		kind = KindAuth
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}
	return &FetchError{Kind: kind, Op: op, Status: status}
}

// transportError classifies an error returned by http.Client.Do. Token
// endpoint failures surface here wrapped in *url.Error; everything else,
// context cancellation included, counts as a network failure.
func transportError(op string, err error) *FetchError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		fe := &FetchError{Kind: KindAuth, Op: op, Err: err}
		if retrieveErr.Response != nil {
			fe.Status = retrieveErr.Response.StatusCode
		}
		return fe
	}
	return &FetchError{Kind: KindNetwork, Op: op, Err: err}
}
