package steamlogin

import (
	"context"
	"errors"
)

const (
	detailSessionStarted       = "session_started"
	detailGuardRequired        = "guard_required"
	detailGuardCodeSubmitted   = "guard_code_submitted"
	detailGuardSatisfied       = "guard_satisfied"
	detailMachineTokenAccepted = "machine_token_accepted"
	detailMachineTokenRejected = "machine_token_rejected"
	detailClientIDRotated      = "client_id_rotated"
	detailLoginCanceled        = "login_canceled"
	detailCookiesFinalized     = "cookies_finalized"
	detailSessionClosed        = "session_closed"
)

// EventErrorCode defines a public type used by steamlogin APIs.
//
// EventErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventErrorCode string

const (
	eventErrInvalidPassword   EventErrorCode = "invalid_password"
	eventErrInvalidAuthCode   EventErrorCode = "invalid_auth_code"
	eventErrTwoFactorMismatch EventErrorCode = "twofactor_mismatch"
	eventErrRateLimited       EventErrorCode = "rate_limited"
	eventErrProviderDenied    EventErrorCode = "provider_denied"
	eventErrTimeout           EventErrorCode = "timeout"
	eventErrMalformedToken    EventErrorCode = "malformed_token"
	eventErrAccountMismatch   EventErrorCode = "account_mismatch"
	eventErrUnknownGuard      EventErrorCode = "unknown_guard"
	eventErrAmbiguousGuard    EventErrorCode = "ambiguous_guard"
	eventErrSessionState      EventErrorCode = "session_state"
	eventErrMalformedResponse EventErrorCode = "malformed_response"
	eventErrMissingCookie     EventErrorCode = "missing_cookie"
	eventErrTransport         EventErrorCode = "transport_error"
)

func (s *LoginSession) emitEvent(
	ctx context.Context,
	eventType EventType,
	detail string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if s == nil || s.events == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}
	if traceID := traceIDFromContext(ctx); traceID != "" {
		if metadata == nil {
			metadata = make(map[string]string, 1)
		}
		metadata["trace_id"] = traceID
	}

	event := Event{
		Type:        eventType,
		At:          s.clock.Now().UTC(),
		AttemptID:   s.currentAttemptID(),
		AccountName: s.AccountName(),
		SteamID:     uint64(s.SteamID()),
		Detail:      detail,
		Metadata:    metadata,
	}
	if err != nil {
		event.Err = err.Error()
	}
	if code := eventErrorCode(err); code != "" {
		event.Code = string(code)
	}

	s.events.Emit(ctx, event)
}

func eventErrorCode(err error) EventErrorCode {
	if err == nil {
		return ""
	}

	var resultErr *ResultError
	if errors.As(err, &resultErr) {
		switch resultErr.Code {
		case EResultInvalidPassword:
			return eventErrInvalidPassword
		case EResultInvalidLoginAuthCode:
			return eventErrInvalidAuthCode
		case EResultTwoFactorCodeMismatch:
			return eventErrTwoFactorMismatch
		case EResultRateLimitExceeded,
			EResultAccountLoginDeniedThrottle:
			return eventErrRateLimited
		default:
			return eventErrProviderDenied
		}
	}

	switch {
	case errors.Is(err, ErrLoginTimedOut):
		return eventErrTimeout
	case errors.Is(err, ErrMalformedToken):
		return eventErrMalformedToken
	case errors.Is(err, ErrTokenAccountMismatch):
		return eventErrAccountMismatch
	case errors.Is(err, ErrUnknownGuardType):
		return eventErrUnknownGuard
	case errors.Is(err, ErrAmbiguousGuardState):
		return eventErrAmbiguousGuard
	case errors.Is(err, ErrSessionNotStarted),
		errors.Is(err, ErrSessionAlreadyStarted),
		errors.Is(err, ErrSessionClosed),
		errors.Is(err, ErrNoGuardNeeded),
		errors.Is(err, ErrAccountNameRequired),
		errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrRefreshTokenRequired):
		return eventErrSessionState
	case errors.Is(err, ErrMalformedResponse):
		return eventErrMalformedResponse
	case errors.Is(err, ErrNoCookies),
		errors.Is(err, ErrMissingSessionCookie):
		return eventErrMissingCookie
	default:
		return eventErrTransport
	}
}
