package steamlogin

import (
	"context"

	"github.com/MrEthical07/steamlogin/steamid"
)

// GuardType identifies one kind of second-factor confirmation the provider
// may require before a login attempt can complete.
//
//	Docs: docs/guards.md
type GuardType uint8

const (
	// GuardUnknown is an exported constant or variable used by the login session engine.
	GuardUnknown GuardType = iota
	// GuardNone is an exported constant or variable used by the login session engine.
	GuardNone
	// GuardEmailCode is an exported constant or variable used by the login session engine.
	GuardEmailCode
	// GuardDeviceCode is an exported constant or variable used by the login session engine.
	GuardDeviceCode
	// GuardDeviceConfirmation is an exported constant or variable used by the login session engine.
	GuardDeviceConfirmation
	// GuardEmailConfirmation is an exported constant or variable used by the login session engine.
	GuardEmailConfirmation
	// GuardMachineToken is an exported constant or variable used by the login session engine.
	GuardMachineToken
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g GuardType) String() string {
	switch g {
	case GuardNone:
		return "none"
	case GuardEmailCode:
		return "email_code"
	case GuardDeviceCode:
		return "device_code"
	case GuardDeviceConfirmation:
		return "device_confirmation"
	case GuardEmailConfirmation:
		return "email_confirmation"
	case GuardMachineToken:
		return "machine_token"
	default:
		return "unknown"
	}
}

// PlatformType selects which client surface a [LoginSession] presents itself
// as. The provider varies guard requirements and token audiences by platform.
type PlatformType uint8

const (
	// PlatformUnknown is an exported constant or variable used by the login session engine.
	PlatformUnknown PlatformType = iota
	// PlatformSteamClient is an exported constant or variable used by the login session engine.
	PlatformSteamClient
	// PlatformWebBrowser is an exported constant or variable used by the login session engine.
	PlatformWebBrowser
	// PlatformMobileApp is an exported constant or variable used by the login session engine.
	PlatformMobileApp
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p PlatformType) String() string {
	switch p {
	case PlatformSteamClient:
		return "steam_client"
	case PlatformWebBrowser:
		return "web_browser"
	case PlatformMobileApp:
		return "mobile_app"
	default:
		return "unknown"
	}
}

// GuardChallenge is a single confirmation option offered by the provider in
// response to a credential submission. Message carries provider-supplied
// detail, typically a masked email domain.
type GuardChallenge struct {
	Type    GuardType
	Message string
}

// PendingAction is a guard challenge the library could not resolve on its
// own. The caller must act on it (enter a code, approve on a device) before
// polling can complete.
type PendingAction struct {
	Type   GuardType
	Detail string
}

// StartResult is returned by [LoginSession.StartWithCredentials]. When
// ActionRequired is true, ValidActions lists what the caller can do next;
// when false, polling is already under way and the caller only waits.
type StartResult struct {
	ActionRequired bool
	ValidActions   []PendingAction
}

// StartLoginDetails is the input for [LoginSession.StartWithCredentials].
// AccountName and Password are required. GuardCode, GuardMachineToken, and
// SharedSecret are optional pre-supplied second factors consulted during
// guard resolution.
type StartLoginDetails struct {
	AccountName       string
	Password          string
	GuardCode         string
	GuardMachineToken string
	SharedSecret      string
	Persistent        bool
}

// EncryptedPassword is returned by [AuthClient.EncryptPassword]. Timestamp
// identifies the provider key generation used for the encryption and must be
// echoed back on session start.
type EncryptedPassword struct {
	Encrypted string
	Timestamp uint64
}

// StartSessionParams is the input for [AuthClient.StartSessionWithCredentials].
type StartSessionParams struct {
	AccountName         string
	EncryptedPassword   string
	EncryptionTimestamp uint64
	Persistent          bool
	Platform            PlatformType
	MachineToken        string
}

// SessionStartResponse is the provider's answer to a credential submission.
// ClientID may be rotated by the server mid-poll; every other field is fixed
// for the lifetime of the attempt. Interval is the requested poll spacing in
// seconds.
type SessionStartResponse struct {
	ClientID             uint64
	RequestID            []byte
	SteamID              steamid.SteamID
	Interval             float64
	AllowedConfirmations []GuardChallenge
}

// PollParams is the input for [AuthClient.PollLoginStatus].
type PollParams struct {
	ClientID  uint64
	RequestID []byte
}

// PollResult is one poll tick's worth of progress. Zero-value fields mean
// "no news": tokens arrive only on the final successful tick, NewClientID is
// nonzero only when the server rotates the attempt identifier.
type PollResult struct {
	NewClientID          uint64
	AccessToken          string
	RefreshToken         string
	AccountName          string
	HadRemoteInteraction bool
}

// GuardCodeParams is the input for [AuthClient.SubmitSteamGuardCode].
type GuardCodeParams struct {
	ClientID uint64
	SteamID  steamid.SteamID
	Code     string
	CodeType GuardType
}

// MachineAuthParams is the input for
// [AuthClient.CheckMachineAuthOrSendCodeEmail].
type MachineAuthParams struct {
	ClientID     uint64
	SteamID      steamid.SteamID
	MachineToken string
}

// MachineAuthResult reports whether a stored machine token satisfied the
// email guard. Any Result other than [EResultOK] means the provider fell
// back to sending a verification email.
type MachineAuthResult struct {
	Result EResult
}

// AuthClient is the primary interface that callers must implement to connect
// a [LoginSession] to the identity provider's wire protocol. It covers
// password encryption, session start, status polling, guard-code submission,
// and the stored machine-token check.
//
// Implementations report provider-side rejections as [*ResultError] and
// transport problems as ordinary errors; the session treats the two
// differently during guard resolution.
//
//	Docs: docs/authclient.md
type AuthClient interface {
	EncryptPassword(ctx context.Context, accountName, password string) (EncryptedPassword, error)
	StartSessionWithCredentials(ctx context.Context, params StartSessionParams) (*SessionStartResponse, error)
	PollLoginStatus(ctx context.Context, params PollParams) (*PollResult, error)
	SubmitSteamGuardCode(ctx context.Context, params GuardCodeParams) error
	CheckMachineAuthOrSendCodeEmail(ctx context.Context, params MachineAuthParams) (*MachineAuthResult, error)
}
