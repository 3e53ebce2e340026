package steamlogin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type finalizeCapture struct {
	mu        sync.Mutex
	nonce     string
	sessionID string
	redir     string
	calls     int
}

func newFinalizeServer(t *testing.T, capture *finalizeCapture, body func() any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse finalize form: %v", err)
		}
		if capture != nil {
			capture.mu.Lock()
			capture.nonce = r.PostFormValue("nonce")
			capture.sessionID = r.PostFormValue("sessionid")
			capture.redir = r.PostFormValue("redir")
			capture.calls++
			capture.mu.Unlock()
		}
		_ = json.NewEncoder(w).Encode(body())
	}))
}

func newTransferServer(t *testing.T, cookies []*http.Cookie, record func(form map[string]string)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse transfer form: %v", err)
		}
		if record != nil {
			form := make(map[string]string, len(r.PostForm))
			for key := range r.PostForm {
				form[key] = r.PostFormValue(key)
			}
			record(form)
		}
		for _, cookie := range cookies {
			http.SetCookie(w, cookie)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func newCookieSession(t *testing.T, finalizeURL string) *LoginSession {
	t.Helper()

	cfg := loginTestConfig()
	cfg.HTTP.FinalizeURL = finalizeURL
	session := newTestSession(t, cfg, &fakeAuthClient{}, newFakeClock())
	if err := session.SetRefreshToken(mintToken(t, testSteamID)); err != nil {
		t.Fatalf("SetRefreshToken failed: %v", err)
	}
	return session
}

func TestGetWebCookiesHappyPath(t *testing.T) {
	var transferForm map[string]string
	var transferMu sync.Mutex
	transfer := newTransferServer(t, []*http.Cookie{
		{Name: "sessionid", Value: "abcdef"},
		{Name: "steamLoginSecure", Value: "secure-value"},
	}, func(form map[string]string) {
		transferMu.Lock()
		transferForm = form
		transferMu.Unlock()
	})
	defer transfer.Close()

	capture := &finalizeCapture{}
	finalize := newFinalizeServer(t, capture, func() any {
		return map[string]any{
			"steamID": testSteamID.String(),
			"transfer_info": []map[string]any{
				{"url": transfer.URL, "params": map[string]string{"auth": "token-x"}},
			},
		}
	})
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()
	refresh := session.RefreshToken()

	cookies, err := session.GetWebCookies(context.Background())
	if err != nil {
		t.Fatalf("GetWebCookies failed: %v", err)
	}

	capture.mu.Lock()
	if capture.calls != 1 {
		t.Fatalf("expected one finalize request, got %d", capture.calls)
	}
	if capture.nonce != refresh {
		t.Fatal("expected refresh token as finalize nonce")
	}
	if len(capture.sessionID) != 24 {
		t.Fatalf("expected 24-character web session id, got %q", capture.sessionID)
	}
	for _, r := range capture.sessionID {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("expected lowercase hex session id, got %q", capture.sessionID)
		}
	}
	if want := loginTestConfig().HTTP.RedirectURL; capture.redir != want {
		t.Fatalf("expected redirect target %q, got %q", want, capture.redir)
	}
	capture.mu.Unlock()

	transferMu.Lock()
	if transferForm["steamID"] != testSteamID.String() {
		t.Fatalf("expected steam id on transfer request, got %q", transferForm["steamID"])
	}
	if transferForm["auth"] != "token-x" {
		t.Fatalf("expected transfer params forwarded, got %v", transferForm)
	}
	transferMu.Unlock()

	want := map[string]bool{"sessionid=abcdef": false, "steamLoginSecure=secure-value": false}
	for _, cookie := range cookies {
		if _, ok := want[cookie]; ok {
			want[cookie] = true
		}
	}
	for cookie, seen := range want {
		if !seen {
			t.Fatalf("expected cookie %q in result, got %v", cookie, cookies)
		}
	}

	snap := session.MetricsSnapshot()
	if snap.Counters[MetricCookiesFinalized] != 1 {
		t.Fatalf("expected cookies finalized counter, got %d", snap.Counters[MetricCookiesFinalized])
	}
}

func TestGetWebCookiesRequiresRefreshToken(t *testing.T) {
	session := newTestSession(t, loginTestConfig(), &fakeAuthClient{}, newFakeClock())
	defer session.Close()

	_, err := session.GetWebCookies(context.Background())
	if !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}

func TestGetWebCookiesAfterClose(t *testing.T) {
	session := newTestSession(t, loginTestConfig(), &fakeAuthClient{}, newFakeClock())
	session.Close()

	_, err := session.GetWebCookies(context.Background())
	if !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestGetWebCookiesFinalizeErrorCode(t *testing.T) {
	finalize := newFinalizeServer(t, nil, func() any {
		return map[string]any{"error": int(EResultAccessDenied)}
	})
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()

	_, err := session.GetWebCookies(context.Background())
	var resultErr *ResultError
	if !errors.As(err, &resultErr) || resultErr.Code != EResultAccessDenied {
		t.Fatalf("expected AccessDenied result error, got %v", err)
	}

	snap := session.MetricsSnapshot()
	if snap.Counters[MetricCookieFinalizeFailure] != 1 {
		t.Fatalf("expected finalize failure counter, got %d", snap.Counters[MetricCookieFinalizeFailure])
	}
}

func TestGetWebCookiesMalformedFinalizeBody(t *testing.T) {
	finalize := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>maintenance</html>")
	}))
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()

	_, err := session.GetWebCookies(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGetWebCookiesNoTransferEndpoints(t *testing.T) {
	finalize := newFinalizeServer(t, nil, func() any {
		return map[string]any{"steamID": testSteamID.String(), "transfer_info": []map[string]any{}}
	})
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()

	_, err := session.GetWebCookies(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse for empty transfer set, got %v", err)
	}
}

func TestGetWebCookiesAnySuccessWins(t *testing.T) {
	failing := newTransferServer(t, nil, nil)
	defer failing.Close()
	succeeding := newTransferServer(t, []*http.Cookie{
		{Name: "steamLoginSecure", Value: "winner"},
	}, nil)
	defer succeeding.Close()

	finalize := newFinalizeServer(t, nil, func() any {
		return map[string]any{
			"steamID": testSteamID.String(),
			"transfer_info": []map[string]any{
				{"url": failing.URL, "params": map[string]string{}},
				{"url": succeeding.URL, "params": map[string]string{}},
			},
		}
	})
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()

	cookies, err := session.GetWebCookies(context.Background())
	if err != nil {
		t.Fatalf("GetWebCookies failed: %v", err)
	}
	if len(cookies) != 1 || cookies[0] != "steamLoginSecure=winner" {
		t.Fatalf("expected winning transfer cookies, got %v", cookies)
	}
}

func TestGetWebCookiesAllFailReturnsFirstSubmittedError(t *testing.T) {
	noCookies := newTransferServer(t, nil, nil)
	defer noCookies.Close()
	noMarker := newTransferServer(t, []*http.Cookie{
		{Name: "sessionid", Value: "abcdef"},
	}, nil)
	defer noMarker.Close()

	finalize := newFinalizeServer(t, nil, func() any {
		return map[string]any{
			"steamID": testSteamID.String(),
			"transfer_info": []map[string]any{
				{"url": noCookies.URL, "params": map[string]string{}},
				{"url": noMarker.URL, "params": map[string]string{}},
			},
		}
	})
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()

	_, err := session.GetWebCookies(context.Background())
	if !errors.Is(err, ErrNoCookies) {
		t.Fatalf("expected the first-submitted endpoint's error, got %v", err)
	}

	snap := session.MetricsSnapshot()
	if snap.Counters[MetricTransferFailure] != 2 {
		t.Fatalf("expected both transfer failures counted, got %d", snap.Counters[MetricTransferFailure])
	}
	if snap.Counters[MetricCookieFinalizeFailure] != 1 {
		t.Fatalf("expected one finalize failure, got %d", snap.Counters[MetricCookieFinalizeFailure])
	}
}

func TestGetWebCookiesMissingMarkerCookie(t *testing.T) {
	transfer := newTransferServer(t, []*http.Cookie{
		{Name: "sessionid", Value: "abcdef"},
		{Name: "browserid", Value: "123"},
	}, nil)
	defer transfer.Close()

	finalize := newFinalizeServer(t, nil, func() any {
		return map[string]any{
			"steamID": testSteamID.String(),
			"transfer_info": []map[string]any{
				{"url": transfer.URL, "params": map[string]string{}},
			},
		}
	})
	defer finalize.Close()

	session := newCookieSession(t, finalize.URL)
	defer session.Close()

	_, err := session.GetWebCookies(context.Background())
	if !errors.Is(err, ErrMissingSessionCookie) {
		t.Fatalf("expected ErrMissingSessionCookie, got %v", err)
	}
}
