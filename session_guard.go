package steamlogin

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/steamlogin/authcode"
)

// resolveGuards walks the allowed confirmation set in order and clears what
// it can without caller involvement. Resolving any single challenge is
// enough: the walk short-circuits and polling takes over.
func (s *LoginSession) resolveGuards(ctx context.Context, resp *SessionStartResponse) (*StartResult, error) {
	if len(resp.AllowedConfirmations) == 0 {
		s.schedulePoll(0)
		return &StartResult{ActionRequired: false}, nil
	}

	s.mu.Lock()
	guardCode := s.guardCode
	machineToken := s.machineToken
	sharedSecret := s.sharedSecret
	s.mu.Unlock()

	machineTokenOffered := false
	for _, challenge := range resp.AllowedConfirmations {
		if challenge.Type == GuardMachineToken {
			machineTokenOffered = true
		}
	}

	pending := make([]PendingAction, 0, len(resp.AllowedConfirmations))

	for _, challenge := range resp.AllowedConfirmations {
		switch challenge.Type {
		case GuardNone:
			s.schedulePoll(0)
			return &StartResult{ActionRequired: false}, nil

		case GuardEmailCode, GuardDeviceCode:
			code := guardCode
			if code == "" && challenge.Type == GuardDeviceCode && sharedSecret != "" {
				generated, err := authcode.Generate(sharedSecret, s.clock.Now())
				if err != nil {
					return nil, fmt.Errorf("generate guard code: %w", err)
				}
				code = generated
			}

			if code != "" {
				err := s.submitGuardCode(ctx, code, challenge.Type)
				if err == nil {
					s.metricInc(MetricGuardCodeAccepted)
					s.emitEvent(ctx, EventDebug, detailGuardSatisfied, nil, nil)
					s.schedulePoll(0)
					return &StartResult{ActionRequired: false}, nil
				}
				if isWrongCodeRejection(err, challenge.Type) {
					s.metricInc(MetricGuardCodeRejected)
					pending = append(pending, PendingAction{Type: challenge.Type, Detail: challenge.Message})
					continue
				}
				return nil, err
			}

			if challenge.Type == GuardEmailCode && machineToken != "" && machineTokenOffered {
				satisfied, err := s.tryMachineToken(ctx, machineToken)
				if err != nil {
					return nil, err
				}
				if satisfied {
					s.schedulePoll(0)
					return &StartResult{ActionRequired: false}, nil
				}
			}

			pending = append(pending, PendingAction{Type: challenge.Type, Detail: challenge.Message})

		case GuardDeviceConfirmation, GuardEmailConfirmation:
			// Resolved out-of-band; polling reports completion.
			pending = append(pending, PendingAction{Type: challenge.Type, Detail: challenge.Message})
			s.schedulePoll(0)

		case GuardMachineToken:
			// Consulted by the email-code branch, never surfaced on its own.

		default:
			return nil, fmt.Errorf("%w: type %d", ErrUnknownGuardType, uint8(challenge.Type))
		}
	}

	if len(pending) == 0 {
		return nil, ErrAmbiguousGuardState
	}

	s.metricInc(MetricGuardRequired)
	s.emitEvent(ctx, EventDebug, detailGuardRequired, nil, nil)
	return &StartResult{ActionRequired: true, ValidActions: pending}, nil
}

// tryMachineToken reports whether the stored token satisfied the email
// guard. A non-OK result means the provider mailed a code instead; that is
// not an error, the challenge just stays pending.
func (s *LoginSession) tryMachineToken(ctx context.Context, machineToken string) (bool, error) {
	s.mu.Lock()
	clientID, _, sid := s.startSnapshotLocked()
	s.mu.Unlock()

	result, err := s.authClient.CheckMachineAuthOrSendCodeEmail(ctx, MachineAuthParams{
		ClientID:     clientID,
		SteamID:      sid,
		MachineToken: machineToken,
	})
	if err != nil {
		return false, fmt.Errorf("check machine auth: %w", err)
	}
	if result != nil && result.Result == EResultOK {
		s.metricInc(MetricMachineTokenAccepted)
		s.emitEvent(ctx, EventDebug, detailMachineTokenAccepted, nil, nil)
		return true, nil
	}

	s.metricInc(MetricMachineTokenRejected)
	s.emitEvent(ctx, EventDebug, detailMachineTokenRejected, nil, nil)
	return false, nil
}

func (s *LoginSession) submitGuardCode(ctx context.Context, code string, codeType GuardType) error {
	s.mu.Lock()
	clientID, _, sid := s.startSnapshotLocked()
	s.mu.Unlock()

	err := s.authClient.SubmitSteamGuardCode(ctx, GuardCodeParams{
		ClientID: clientID,
		SteamID:  sid,
		Code:     code,
		CodeType: codeType,
	})
	s.emitEvent(ctx, EventDebug, detailGuardCodeSubmitted, err, func() map[string]string {
		return map[string]string{"code_type": codeType.String()}
	})
	return err
}

func wrongCodeResult(t GuardType) EResult {
	if t == GuardEmailCode {
		return EResultInvalidLoginAuthCode
	}
	return EResultTwoFactorCodeMismatch
}

func isWrongCodeRejection(err error, t GuardType) bool {
	var resultErr *ResultError
	if !errors.As(err, &resultErr) {
		return false
	}
	return resultErr.Code == wrongCodeResult(t)
}

// SubmitSteamGuardCode describes the submitsteamguardcode operation and its observable behavior.
//
// SubmitSteamGuardCode may return an error when input validation, dependency calls, or security checks fail.
// SubmitSteamGuardCode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *LoginSession) SubmitSteamGuardCode(ctx context.Context, code string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	resp := s.startResp
	s.mu.Unlock()

	if resp == nil {
		return ErrSessionNotStarted
	}

	codeType := GuardUnknown
	for _, challenge := range resp.AllowedConfirmations {
		if challenge.Type == GuardEmailCode {
			codeType = GuardEmailCode
			break
		}
		if challenge.Type == GuardDeviceCode && codeType == GuardUnknown {
			codeType = GuardDeviceCode
		}
	}
	if codeType == GuardUnknown {
		return ErrNoGuardNeeded
	}

	if err := s.submitGuardCode(ctx, code, codeType); err != nil {
		s.metricInc(MetricGuardCodeRejected)
		return err
	}

	s.metricInc(MetricGuardCodeAccepted)
	s.emitEvent(ctx, EventDebug, detailGuardSatisfied, nil, nil)
	s.schedulePoll(0)
	return nil
}
