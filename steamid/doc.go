// Package steamid parses and formats 64-bit packed account identifiers.
//
// # Identifier layout
//
// A SteamID packs four fields into one uint64, high to low:
//
//	universe (8 bits) | account type (4 bits) | instance (20 bits) | account id (32 bits)
//
// An individual public desktop account is therefore
// 0x0110000100000000 | accountID in the familiar decimal rendering.
//
// # Architecture boundaries
//
// This package owns identifier encoding only. Which identifier a login session
// trusts (start response vs. token subject) is decided by the steamlogin root
// package.
//
// # What this package must NOT do
//
//   - Perform I/O or talk to the identity provider.
//   - Import any other steamlogin package.
package steamid
