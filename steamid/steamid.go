package steamid

import (
	"errors"
	"strconv"
)

// SteamID defines a public type used by steamlogin APIs.
//
// SteamID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SteamID uint64

const (
	// UniversePublic is an exported constant or variable used by the login session engine.
	UniversePublic uint8 = 1
	// TypeIndividual is an exported constant or variable used by the login session engine.
	TypeIndividual uint8 = 1
	// InstanceDesktop is an exported constant or variable used by the login session engine.
	InstanceDesktop uint32 = 1
)

// Bit layout of a 64-bit identifier, high to low:
// universe (8) | type (4) | instance (20) | account id (32).
const (
	accountIDMask  = 0xFFFFFFFF
	instanceMask   = 0xFFFFF
	instanceShift  = 32
	typeMask       = 0xF
	typeShift      = 52
	universeShift  = 56
	maxDecimalsLen = 20
)

var (
	// ErrInvalidSteamID is an exported constant or variable used by the login session engine.
	ErrInvalidSteamID = errors.New("invalid steam id")
)

// Parse describes the parse operation and its observable behavior.
//
// Parse may return an error when input validation, dependency calls, or security checks fail.
// Parse does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Parse(s string) (SteamID, error) {
	if s == "" || len(s) > maxDecimalsLen {
		return 0, ErrInvalidSteamID
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidSteamID
		}
	}

	raw, err := strconv.ParseUint(s, 10, 64)
	if err != nil || raw == 0 {
		return 0, ErrInvalidSteamID
	}

	id := SteamID(raw)
	if id.AccountID() == 0 {
		return 0, ErrInvalidSteamID
	}
	return id, nil
}

// FromAccountID describes the fromaccountid operation and its observable behavior.
//
// FromAccountID may return an error when input validation, dependency calls, or security checks fail.
// FromAccountID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func FromAccountID(accountID uint32) SteamID {
	return SteamID(uint64(UniversePublic)<<universeShift |
		uint64(TypeIndividual)<<typeShift |
		uint64(InstanceDesktop)<<instanceShift |
		uint64(accountID))
}

// AccountID describes the accountid operation and its observable behavior.
//
// AccountID may return an error when input validation, dependency calls, or security checks fail.
// AccountID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (id SteamID) AccountID() uint32 {
	return uint32(id & accountIDMask)
}

// Instance describes the instance operation and its observable behavior.
//
// Instance may return an error when input validation, dependency calls, or security checks fail.
// Instance does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (id SteamID) Instance() uint32 {
	return uint32((id >> instanceShift) & instanceMask)
}

// Type describes the type operation and its observable behavior.
//
// Type may return an error when input validation, dependency calls, or security checks fail.
// Type does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (id SteamID) Type() uint8 {
	return uint8((id >> typeShift) & typeMask)
}

// Universe describes the universe operation and its observable behavior.
//
// Universe may return an error when input validation, dependency calls, or security checks fail.
// Universe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (id SteamID) Universe() uint8 {
	return uint8(id >> universeShift)
}

// Valid describes the valid operation and its observable behavior.
//
// Valid may return an error when input validation, dependency calls, or security checks fail.
// Valid does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (id SteamID) Valid() bool {
	return id != 0 && id.AccountID() != 0
}

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (id SteamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
