// Package token decodes provider-issued JWTs without signature verification.
// Login clients never hold the provider's verification keys; the only trusted
// facts in a token are the structural claims the provider will re-check
// server-side, so decoding stops at payload extraction.
package token
