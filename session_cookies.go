package steamlogin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrEthical07/steamlogin/internal"
	"github.com/MrEthical07/steamlogin/steamid"
)

type transferInfo struct {
	URL    string            `json:"url"`
	Params map[string]string `json:"params"`
}

type finalizeResponse struct {
	SteamID      string         `json:"steamID"`
	TransferInfo []transferInfo `json:"transfer_info"`
	Error        int            `json:"error"`
}

type transferOutcome struct {
	index   int
	cookies []string
	err     error
}

// GetWebCookies describes the getwebcookies operation and its observable behavior.
//
// GetWebCookies may return an error when input validation, dependency calls, or security checks fail.
// GetWebCookies does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) GetWebCookies(ctx context.Context) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	refresh := s.refreshToken.raw
	sid := s.steamIDLocked()
	s.mu.Unlock()

	if refresh == "" {
		return nil, ErrRefreshTokenRequired
	}

	finalize, err := s.finalizeLogin(ctx, refresh)
	if err != nil {
		s.metricInc(MetricCookieFinalizeFailure)
		return nil, err
	}

	cookies, err := s.raceTransfers(ctx, sid, finalize.TransferInfo)
	if err != nil {
		s.metricInc(MetricCookieFinalizeFailure)
		return nil, err
	}

	s.metricInc(MetricCookiesFinalized)
	s.emitEvent(ctx, EventDebug, detailCookiesFinalized, nil, nil)
	return cookies, nil
}

// finalizeLogin exchanges the refresh token for a set of transfer endpoints.
// The token rides the request as the "nonce" form field.
func (s *LoginSession) finalizeLogin(ctx context.Context, refreshToken string) (*finalizeResponse, error) {
	sessionID, err := internal.NewWebSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate web session id: %w", err)
	}

	form := url.Values{}
	form.Set("nonce", refreshToken)
	form.Set("sessionid", sessionID)
	form.Set("redir", s.config.HTTP.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.HTTP.FinalizeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("finalize login: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finalize login: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("finalize login: read body: %w", err)
	}

	var decoded finalizeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.Error != 0 {
		return nil, &ResultError{Code: EResult(decoded.Error)}
	}
	if len(decoded.TransferInfo) == 0 {
		return nil, ErrMalformedResponse
	}

	return &decoded, nil
}

// raceTransfers fires every transfer concurrently and resolves with the
// first success. Late results are discarded; the buffered channel lets the
// remaining goroutines finish on their own. When every transfer fails, the
// error of the first-submitted endpoint is returned.
func (s *LoginSession) raceTransfers(ctx context.Context, sid steamid.SteamID, transfers []transferInfo) ([]string, error) {
	results := make(chan transferOutcome, len(transfers))
	for i, transfer := range transfers {
		go func(i int, transfer transferInfo) {
			cookies, err := s.performTransfer(ctx, sid, transfer)
			results <- transferOutcome{index: i, cookies: cookies, err: err}
		}(i, transfer)
	}

	errs := make([]error, len(transfers))
	for range transfers {
		outcome := <-results
		if outcome.err == nil {
			return outcome.cookies, nil
		}
		errs[outcome.index] = outcome.err
		s.metricInc(MetricTransferFailure)
	}

	return nil, errs[0]
}

func (s *LoginSession) performTransfer(ctx context.Context, sid steamid.SteamID, transfer transferInfo) ([]string, error) {
	form := url.Values{}
	form.Set("steamID", sid.String())
	for key, value := range transfer.Params {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, transfer.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("transfer %s: %w", transfer.URL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transfer %s: %w", transfer.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil, ErrNoCookies
	}

	marker := false
	out := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		if cookie.Name == s.config.HTTP.SessionCookieName {
			marker = true
		}
		out = append(out, cookie.Name+"="+cookie.Value)
	}
	if !marker {
		return nil, ErrMissingSessionCookie
	}

	return out, nil
}
