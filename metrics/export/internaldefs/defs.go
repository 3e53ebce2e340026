package internaldefs

import (
	"github.com/MrEthical07/steamlogin"
)

// CounterDef defines a public type used by steamlogin APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   steamlogin.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by steamlogin APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   steamlogin.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the login session engine.
var CounterDefs = []CounterDef{
	{ID: steamlogin.MetricLoginStarted, Name: "steamlogin_login_started_total", Help: "Login attempts started."},
	{ID: steamlogin.MetricLoginSuccess, Name: "steamlogin_login_success_total", Help: "Login attempts that committed a token pair."},
	{ID: steamlogin.MetricLoginFailure, Name: "steamlogin_login_failure_total", Help: "Login attempts that failed."},
	{ID: steamlogin.MetricLoginTimeout, Name: "steamlogin_login_timeout_total", Help: "Login attempts abandoned on poll timeout."},
	{ID: steamlogin.MetricLoginCanceled, Name: "steamlogin_login_canceled_total", Help: "Login attempts canceled by the caller."},
	{ID: steamlogin.MetricGuardRequired, Name: "steamlogin_guard_required_total", Help: "Login attempts that surfaced pending guard actions."},
	{ID: steamlogin.MetricGuardCodeAccepted, Name: "steamlogin_guard_code_accepted_total", Help: "Guard codes accepted by the provider."},
	{ID: steamlogin.MetricGuardCodeRejected, Name: "steamlogin_guard_code_rejected_total", Help: "Guard codes rejected by the provider."},
	{ID: steamlogin.MetricMachineTokenAccepted, Name: "steamlogin_machine_token_accepted_total", Help: "Stored machine tokens that satisfied the email guard."},
	{ID: steamlogin.MetricMachineTokenRejected, Name: "steamlogin_machine_token_rejected_total", Help: "Stored machine tokens the provider declined."},
	{ID: steamlogin.MetricPollTicks, Name: "steamlogin_poll_ticks_total", Help: "Status poll requests issued."},
	{ID: steamlogin.MetricClientIDRotations, Name: "steamlogin_client_id_rotations_total", Help: "Server-initiated client identifier rotations."},
	{ID: steamlogin.MetricTokenMismatchRejected, Name: "steamlogin_token_mismatch_rejected_total", Help: "Token commits rejected for subject mismatch."},
	{ID: steamlogin.MetricCookiesFinalized, Name: "steamlogin_cookies_finalized_total", Help: "Successful web cookie finalizations."},
	{ID: steamlogin.MetricCookieFinalizeFailure, Name: "steamlogin_cookie_finalize_failure_total", Help: "Failed web cookie finalizations."},
	{ID: steamlogin.MetricTransferFailure, Name: "steamlogin_transfer_failure_total", Help: "Individual transfer endpoint failures."},
}

// HistogramDefs is an exported constant or variable used by the login session engine.
var HistogramDefs = []HistogramDef{
	{ID: steamlogin.MetricLoginDuration, Name: "steamlogin_login_duration_seconds", Help: "Login duration from start to committed tokens."},
}

// HistogramBounds is an exported constant or variable used by the login session engine.
var HistogramBounds = []string{
	"0.25",
	"0.5",
	"1",
	"2.5",
	"5",
	"10",
	"30",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the login session engine.
var HistogramBoundSuffix = []string{
	"0_25",
	"0_5",
	"1",
	"2_5",
	"5",
	"10",
	"30",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
