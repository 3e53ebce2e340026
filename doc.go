// Package steamlogin drives the multi-step login handshake of a Steam-style
// identity provider: credential submission, Steam Guard challenge resolution,
// status polling, and the final exchange of a refresh token for web session
// cookies.
//
// The package owns orchestration only. Wire-level concerns — request
// encoding, password encryption, transport — sit behind the caller-supplied
// [AuthClient]; a [LoginSession] built through [Builder.Build] is safe to
// observe from multiple goroutines while its detached polling loop runs.
//
// # Architecture boundaries
//
// steamlogin is the public surface. It exposes [LoginSession], [Builder],
// [Config], the event and metrics types, and the steamid, token, and
// authcode sub-packages. Timer ownership, token consistency checks, and
// event dispatch are internal and never exported.
//
// # What this package must NOT do
//
//   - Persist sessions, tokens, or cookies anywhere.
//   - Retry failed provider calls on its own; one poll tick issues at most
//     one status request.
//   - Block a caller on event delivery (the dispatcher is bounded and may
//     drop under pressure when configured to).
//
// # Lifecycle contract
//
// StartWithCredentials may be called once per session. Polling runs detached
// until a token arrives, the timeout elapses, or [LoginSession.CancelLoginAttempt]
// is called; progress surfaces as [Event] values. GetWebCookies is
// independent of polling state and only requires a committed refresh token.
package steamlogin
