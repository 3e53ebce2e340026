package steamlogin

import (
	"context"
	"fmt"
	"time"
)

// schedulePoll arms the poll timer to fire after d. Any outstanding timer is
// stopped first, so at most one timer is ever live.
func (s *LoginSession) schedulePoll(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedulePollLocked(d)
}

func (s *LoginSession) schedulePollLocked(d time.Duration) {
	if s.closed {
		return
	}
	switch s.phase {
	case pollNotStarted:
		s.phase = pollRunning
	case pollRunning:
	default:
		return
	}

	if s.pollTimer != nil {
		s.pollTimer.Stop()
		s.pollTimer = nil
	}
	if d < 0 {
		d = 0
	}
	s.pollTimer = s.clock.AfterFunc(d, s.pollTick)
}

// pollTick runs detached from any caller, so it uses a background context
// and reports failures through the event stream instead of a return value.
func (s *LoginSession) pollTick() {
	ctx := context.Background()

	s.mu.Lock()
	s.pollTimer = nil
	if s.closed || s.phase != pollRunning {
		s.mu.Unlock()
		return
	}

	first := s.pollStartedAt.IsZero()
	now := s.clock.Now()
	if first {
		s.pollStartedAt = now
	} else if now.Sub(s.pollStartedAt) >= s.config.Login.Timeout {
		s.phase = pollTimedOut
		s.mu.Unlock()
		s.metricInc(MetricLoginTimeout)
		s.emitEvent(ctx, EventTimeout, "", ErrLoginTimedOut, nil)
		return
	}

	clientID, requestID, _ := s.startSnapshotLocked()
	interval := 0.0
	if s.startResp != nil {
		interval = s.startResp.Interval
	}
	s.mu.Unlock()

	if first {
		s.emitEvent(ctx, EventPolling, "", nil, nil)
	}
	s.metricInc(MetricPollTicks)

	result, err := s.authClient.PollLoginStatus(ctx, PollParams{ClientID: clientID, RequestID: requestID})
	if err == nil && result == nil {
		err = ErrMalformedResponse
	}
	if err != nil {
		s.mu.Lock()
		if s.phase == pollRunning {
			s.phase = pollErrored
		}
		s.mu.Unlock()
		s.metricInc(MetricLoginFailure)
		s.emitEvent(ctx, EventError, "", fmt.Errorf("poll login status: %w", err), nil)
		return
	}

	rotated := false
	remoteFirst := false
	s.mu.Lock()
	if s.closed || s.phase != pollRunning {
		s.mu.Unlock()
		return
	}
	if result.NewClientID != 0 && s.startResp != nil && result.NewClientID != s.startResp.ClientID {
		s.startResp.ClientID = result.NewClientID
		rotated = true
	}
	if result.HadRemoteInteraction && !s.hadRemoteInteraction {
		s.hadRemoteInteraction = true
		remoteFirst = true
	}
	s.mu.Unlock()

	if rotated {
		s.metricInc(MetricClientIDRotations)
		s.emitEvent(ctx, EventDebug, detailClientIDRotated, nil, nil)
	}
	if remoteFirst {
		s.emitEvent(ctx, EventRemoteInteraction, "", nil, nil)
	}

	if result.AccessToken != "" {
		s.finishLogin(ctx, result)
		return
	}

	d := time.Duration(interval * float64(time.Second))
	if d < s.config.Login.MinPollInterval {
		d = s.config.Login.MinPollInterval
	}
	s.schedulePoll(d)
}

func (s *LoginSession) finishLogin(ctx context.Context, result *PollResult) {
	if err := s.commitPollTokens(result); err != nil {
		s.mu.Lock()
		if s.phase == pollRunning {
			s.phase = pollErrored
		}
		s.mu.Unlock()
		s.metricInc(MetricLoginFailure)
		s.emitEvent(ctx, EventError, "", err, nil)
		return
	}

	s.mu.Lock()
	s.phase = pollCompleted
	firstAuth := !s.authenticated
	s.authenticated = true
	startedAt := s.loginStartedAt
	s.mu.Unlock()

	s.metricInc(MetricLoginSuccess)
	if !startedAt.IsZero() {
		s.metricObserve(MetricLoginDuration, s.clock.Now().Sub(startedAt))
	}
	if firstAuth {
		s.emitEvent(ctx, EventAuthenticated, "", nil, nil)
	}
}

// CancelLoginAttempt describes the cancelloginattempt operation and its observable behavior.
//
// CancelLoginAttempt may return an error when input validation, dependency calls, or security checks fail.
// CancelLoginAttempt does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) CancelLoginAttempt() bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	stopped := false
	if s.pollTimer != nil {
		stopped = s.pollTimer.Stop()
		s.pollTimer = nil
	}
	wasRunning := s.phase == pollRunning
	if s.phase == pollNotStarted || s.phase == pollRunning {
		s.phase = pollCanceled
	}
	s.mu.Unlock()

	if wasRunning {
		s.metricInc(MetricLoginCanceled)
		s.emitEvent(context.Background(), EventDebug, detailLoginCanceled, nil, nil)
	}
	return stopped
}
