// Package authcode generates second-factor guard codes from a shared secret.
//
// # Code format
//
// Codes are five characters drawn from [Alphabet]. The generator runs the
// RFC-4226 HMAC-SHA1 truncation over a 30-second counter, then re-encodes
// the truncated integer in the provider's alphabet instead of decimal digits,
// which is why a generic OTP library cannot produce these codes.
//
// # What this package must NOT do
//
//   - Store secrets — callers supply the base64 secret per call.
//   - Validate codes; only the identity provider can judge a submission.
//   - Import any other steamlogin package.
package authcode
