package steamlogin

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/MrEthical07/steamlogin/steamid"
)

type pollPhase uint8

const (
	pollNotStarted pollPhase = iota
	pollRunning
	pollCanceled
	pollTimedOut
	pollCompleted
	pollErrored
)

// LoginSession defines a public type used by steamlogin APIs.
//
// LoginSession instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginSession struct {
	config     Config
	authClient AuthClient
	httpClient *http.Client
	clock      Clock
	metrics    *Metrics
	events     *eventDispatcher

	mu sync.Mutex

	attemptID   string
	accountName string
	startResp   *SessionStartResponse

	accessToken  boundToken
	refreshToken boundToken

	guardCode    string
	machineToken string
	sharedSecret string

	phase                pollPhase
	pollTimer            Timer
	pollStartedAt        time.Time
	loginStartedAt       time.Time
	hadRemoteInteraction bool
	authenticated        bool
	closed               bool
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) Close() {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.pollTimer != nil {
		s.pollTimer.Stop()
		s.pollTimer = nil
	}
	if s.phase == pollRunning || s.phase == pollNotStarted {
		s.phase = pollCanceled
	}
	s.mu.Unlock()

	s.emitEvent(context.Background(), EventDebug, detailSessionClosed, nil, nil)
	s.events.Close()
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) EventsDropped() uint64 {
	if s == nil || s.events == nil {
		return 0
	}
	return s.events.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

func (s *LoginSession) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}

func (s *LoginSession) metricObserve(id MetricID, d time.Duration) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Observe(id, d)
}

// AccountName describes the accountname operation and its observable behavior.
//
// AccountName may return an error when input validation, dependency calls, or security checks fail.
// AccountName does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) AccountName() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountName
}

// SteamID describes the steamid operation and its observable behavior.
//
// SteamID may return an error when input validation, dependency calls, or security checks fail.
// SteamID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) SteamID() steamid.SteamID {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steamIDLocked()
}

// The identifier is derived on every call: the start response wins, then the
// cached subject of the access token, then the refresh token.
func (s *LoginSession) steamIDLocked() steamid.SteamID {
	if s.startResp != nil && s.startResp.SteamID != 0 {
		return s.startResp.SteamID
	}
	if s.accessToken.raw != "" {
		return s.accessToken.steamID
	}
	if s.refreshToken.raw != "" {
		return s.refreshToken.steamID
	}
	return 0
}

// AccessToken describes the accesstoken operation and its observable behavior.
//
// AccessToken may return an error when input validation, dependency calls, or security checks fail.
// AccessToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) AccessToken() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken.raw
}

// RefreshToken describes the refreshtoken operation and its observable behavior.
//
// RefreshToken may return an error when input validation, dependency calls, or security checks fail.
// RefreshToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) RefreshToken() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken.raw
}

// HadRemoteInteraction describes the hadremoteinteraction operation and its observable behavior.
//
// HadRemoteInteraction may return an error when input validation, dependency calls, or security checks fail.
// HadRemoteInteraction does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) HadRemoteInteraction() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hadRemoteInteraction
}

func (s *LoginSession) currentAttemptID() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptID
}

func (s *LoginSession) startSnapshotLocked() (clientID uint64, requestID []byte, sid steamid.SteamID) {
	if s.startResp == nil {
		return 0, nil, 0
	}
	return s.startResp.ClientID, s.startResp.RequestID, s.startResp.SteamID
}
