package steamlogin

import (
	"fmt"

	"github.com/MrEthical07/steamlogin/steamid"
	"github.com/MrEthical07/steamlogin/token"
)

// boundToken pairs a raw token with the subject decoded from it. The subject
// is extracted exactly once, when the token is set, so consistency checks and
// identifier reads never re-parse.
type boundToken struct {
	raw     string
	steamID steamid.SteamID
}

func bindToken(raw string) (boundToken, error) {
	if raw == "" {
		return boundToken{}, nil
	}

	claims, err := token.Decode(raw)
	if err != nil {
		return boundToken{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	sid, err := steamid.Parse(claims.Subject)
	if err != nil {
		return boundToken{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return boundToken{raw: raw, steamID: sid}, nil
}

// SetAccessToken describes the setaccesstoken operation and its observable behavior.
//
// SetAccessToken may return an error when input validation, dependency calls, or security checks fail.
// SetAccessToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) SetAccessToken(raw string) error {
	bound, err := bindToken(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTokenConsistencyLocked(bound, s.refreshToken); err != nil {
		s.metricInc(MetricTokenMismatchRejected)
		return err
	}
	s.accessToken = bound
	return nil
}

// SetRefreshToken describes the setrefreshtoken operation and its observable behavior.
//
// SetRefreshToken may return an error when input validation, dependency calls, or security checks fail.
// SetRefreshToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) SetRefreshToken(raw string) error {
	bound, err := bindToken(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTokenConsistencyLocked(bound, s.accessToken); err != nil {
		s.metricInc(MetricTokenMismatchRejected)
		return err
	}
	s.refreshToken = bound
	return nil
}

// Clearing a slot always passes. A non-empty token must match the start
// response's identifier when one exists and the other slot's cached subject
// when that slot is set.
func (s *LoginSession) checkTokenConsistencyLocked(bound, other boundToken) error {
	if bound.raw == "" {
		return nil
	}
	if s.startResp != nil && s.startResp.SteamID != 0 && bound.steamID != s.startResp.SteamID {
		return ErrTokenAccountMismatch
	}
	if other.raw != "" && bound.steamID != other.steamID {
		return ErrTokenAccountMismatch
	}
	return nil
}

// commitPollTokens applies one poll tick's account name and token pair as a
// single state change. Both tokens are decoded and cross-checked before
// either slot is touched; a failure leaves the session exactly as it was.
func (s *LoginSession) commitPollTokens(result *PollResult) error {
	access, err := bindToken(result.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := bindToken(result.RefreshToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newAccess := s.accessToken
	newRefresh := s.refreshToken
	if access.raw != "" {
		newAccess = access
	}
	if refresh.raw != "" {
		newRefresh = refresh
	}

	if err := s.checkTokenConsistencyLocked(newAccess, newRefresh); err != nil {
		s.metricInc(MetricTokenMismatchRejected)
		return err
	}
	if err := s.checkTokenConsistencyLocked(newRefresh, newAccess); err != nil {
		s.metricInc(MetricTokenMismatchRejected)
		return err
	}

	if result.AccountName != "" {
		s.accountName = result.AccountName
	}
	s.accessToken = newAccess
	s.refreshToken = newRefresh
	return nil
}
