package steamlogin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// StartWithCredentials describes the startwithcredentials operation and its observable behavior.
//
// StartWithCredentials may return an error when input validation, dependency calls, or security checks fail.
// StartWithCredentials does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) StartWithCredentials(ctx context.Context, details StartLoginDetails) (*StartResult, error) {
	if details.AccountName == "" {
		return nil, ErrAccountNameRequired
	}
	if details.Password == "" {
		return nil, ErrPasswordRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.startResp != nil {
		s.mu.Unlock()
		return nil, ErrSessionAlreadyStarted
	}
	s.accountName = details.AccountName
	s.guardCode = details.GuardCode
	s.machineToken = details.GuardMachineToken
	s.sharedSecret = details.SharedSecret
	s.hadRemoteInteraction = false
	s.attemptID = uuid.NewString()
	s.loginStartedAt = s.clock.Now()
	platform := s.config.Login.Platform
	s.mu.Unlock()

	s.metricInc(MetricLoginStarted)

	encrypted, err := s.authClient.EncryptPassword(ctx, details.AccountName, details.Password)
	if err != nil {
		s.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	resp, err := s.authClient.StartSessionWithCredentials(ctx, StartSessionParams{
		AccountName:         details.AccountName,
		EncryptedPassword:   encrypted.Encrypted,
		EncryptionTimestamp: encrypted.Timestamp,
		Persistent:          details.Persistent,
		Platform:            platform,
		MachineToken:        details.GuardMachineToken,
	})
	if err != nil {
		s.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("start session: %w", err)
	}
	if resp == nil {
		s.metricInc(MetricLoginFailure)
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	if s.startResp != nil {
		s.mu.Unlock()
		return nil, ErrSessionAlreadyStarted
	}
	s.startResp = resp
	s.mu.Unlock()

	s.emitEvent(ctx, EventDebug, detailSessionStarted, nil, func() map[string]string {
		return map[string]string{
			"client_id": strconv.FormatUint(resp.ClientID, 10),
			"interval":  strconv.FormatFloat(resp.Interval, 'f', -1, 64),
		}
	})

	result, err := s.resolveGuards(ctx, resp)
	if err != nil {
		s.metricInc(MetricLoginFailure)
		return nil, err
	}
	return result, nil
}
