package steamlogin

import "fmt"

// EResult is the numeric status code attached to every provider response.
// A value of [EResultOK] means success; every other value describes a
// specific failure mode. Codes the library does not recognize are still
// carried through unchanged inside [ResultError].
type EResult uint32

const (
	// EResultOK is an exported constant or variable used by the login session engine.
	EResultOK EResult = 1
	// EResultFail is an exported constant or variable used by the login session engine.
	EResultFail EResult = 2
	// EResultNoConnection is an exported constant or variable used by the login session engine.
	EResultNoConnection EResult = 3
	// EResultInvalidPassword is an exported constant or variable used by the login session engine.
	EResultInvalidPassword EResult = 5
	// EResultInvalidParam is an exported constant or variable used by the login session engine.
	EResultInvalidParam EResult = 8
	// EResultBusy is an exported constant or variable used by the login session engine.
	EResultBusy EResult = 10
	// EResultAccessDenied is an exported constant or variable used by the login session engine.
	EResultAccessDenied EResult = 15
	// EResultTimeout is an exported constant or variable used by the login session engine.
	EResultTimeout EResult = 16
	// EResultServiceUnavailable is an exported constant or variable used by the login session engine.
	EResultServiceUnavailable EResult = 20
	// EResultLimitExceeded is an exported constant or variable used by the login session engine.
	EResultLimitExceeded EResult = 25
	// EResultExpired is an exported constant or variable used by the login session engine.
	EResultExpired EResult = 27
	// EResultInvalidLoginAuthCode is an exported constant or variable used by the login session engine.
	EResultInvalidLoginAuthCode EResult = 65
	// EResultRateLimitExceeded is an exported constant or variable used by the login session engine.
	EResultRateLimitExceeded EResult = 84
	// EResultAccountLoginDeniedNeedTwoFactor is an exported constant or variable used by the login session engine.
	EResultAccountLoginDeniedNeedTwoFactor EResult = 85
	// EResultAccountLoginDeniedThrottle is an exported constant or variable used by the login session engine.
	EResultAccountLoginDeniedThrottle EResult = 87
	// EResultTwoFactorCodeMismatch is an exported constant or variable used by the login session engine.
	EResultTwoFactorCodeMismatch EResult = 88
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r EResult) String() string {
	switch r {
	case EResultOK:
		return "OK"
	case EResultFail:
		return "Fail"
	case EResultNoConnection:
		return "NoConnection"
	case EResultInvalidPassword:
		return "InvalidPassword"
	case EResultInvalidParam:
		return "InvalidParam"
	case EResultBusy:
		return "Busy"
	case EResultAccessDenied:
		return "AccessDenied"
	case EResultTimeout:
		return "Timeout"
	case EResultServiceUnavailable:
		return "ServiceUnavailable"
	case EResultLimitExceeded:
		return "LimitExceeded"
	case EResultExpired:
		return "Expired"
	case EResultInvalidLoginAuthCode:
		return "InvalidLoginAuthCode"
	case EResultRateLimitExceeded:
		return "RateLimitExceeded"
	case EResultAccountLoginDeniedNeedTwoFactor:
		return "AccountLoginDeniedNeedTwoFactor"
	case EResultAccountLoginDeniedThrottle:
		return "AccountLoginDeniedThrottle"
	case EResultTwoFactorCodeMismatch:
		return "TwoFactorCodeMismatch"
	default:
		return fmt.Sprintf("EResult(%d)", uint32(r))
	}
}
