// Package internal contains helper utilities that are intentionally private to
// steamlogin, currently limited to secure random identifier generation.
//
// # What this package must NOT do
//
//   - Export types that appear in the public steamlogin API.
//   - Be imported by any package outside the steamlogin module.
package internal
