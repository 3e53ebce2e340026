package steamlogin

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is an exported constant or variable used by the login session engine.
	ErrMalformedToken = errors.New("malformed token")
	// ErrTokenAccountMismatch is an exported constant or variable used by the login session engine.
	ErrTokenAccountMismatch = errors.New("token issued for a different account")
	// ErrUnknownGuardType is an exported constant or variable used by the login session engine.
	ErrUnknownGuardType = errors.New("unknown guard type")
	// ErrAmbiguousGuardState is an exported constant or variable used by the login session engine.
	ErrAmbiguousGuardState = errors.New("no actionable guard challenge")
	// ErrSessionNotStarted is an exported constant or variable used by the login session engine.
	ErrSessionNotStarted = errors.New("login session not started")
	// ErrSessionAlreadyStarted is an exported constant or variable used by the login session engine.
	ErrSessionAlreadyStarted = errors.New("login session already started")
	// ErrSessionClosed is an exported constant or variable used by the login session engine.
	ErrSessionClosed = errors.New("login session closed")
	// ErrNoGuardNeeded is an exported constant or variable used by the login session engine.
	ErrNoGuardNeeded = errors.New("no guard code is currently expected")
	// ErrAccountNameRequired is an exported constant or variable used by the login session engine.
	ErrAccountNameRequired = errors.New("account name required")
	// ErrPasswordRequired is an exported constant or variable used by the login session engine.
	ErrPasswordRequired = errors.New("password required")
	// ErrRefreshTokenRequired is an exported constant or variable used by the login session engine.
	ErrRefreshTokenRequired = errors.New("refresh token required")
	// ErrMalformedResponse is an exported constant or variable used by the login session engine.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrNoCookies is an exported constant or variable used by the login session engine.
	ErrNoCookies = errors.New("finalize response carried no cookies")
	// ErrMissingSessionCookie is an exported constant or variable used by the login session engine.
	ErrMissingSessionCookie = errors.New("finalize response missing session cookie")
	// ErrLoginTimedOut is an exported constant or variable used by the login session engine.
	ErrLoginTimedOut = errors.New("login attempt timed out")
)

// ResultError defines a public type used by steamlogin APIs.
//
// ResultError instances are intended to be configured during initialization
// and then treated as immutable unless documented otherwise.
type ResultError struct {
	Code EResult
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *ResultError) Error() string {
	return fmt.Sprintf("request failed: %s (eresult %d)", e.Code, uint32(e.Code))
}
