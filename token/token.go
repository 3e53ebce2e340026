package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed is an exported constant or variable used by the login session engine.
	ErrMalformed = errors.New("malformed token")
	// ErrNoSubject is an exported constant or variable used by the login session engine.
	ErrNoSubject = errors.New("token has no subject claim")
)

// Claims defines a public type used by steamlogin APIs.
//
// Claims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Claims struct {
	ID       string
	Subject  string
	Issuer   string
	Audience []string
	IssuedAt time.Time
	Expiry   time.Time
}

// Decode describes the decode operation and its observable behavior.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMalformed
	}

	var rc jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &rc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rc.Subject == "" {
		return nil, ErrNoSubject
	}

	c := &Claims{
		ID:       rc.ID,
		Subject:  rc.Subject,
		Issuer:   rc.Issuer,
		Audience: []string(rc.Audience),
	}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.Expiry = rc.ExpiresAt.Time
	}
	return c, nil
}

// Expired describes the expired operation and its observable behavior.
//
// Expired may return an error when input validation, dependency calls, or security checks fail.
// Expired does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.Expiry.IsZero() {
		return false
	}
	return !now.Before(c.Expiry)
}

// HasAudience describes the hasaudience operation and its observable behavior.
//
// HasAudience may return an error when input validation, dependency calls, or security checks fail.
// HasAudience does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Claims) HasAudience(aud string) bool {
	if c == nil {
		return false
	}
	for _, a := range c.Audience {
		if a == aud {
			return true
		}
	}
	return false
}
