package internal

import (
	"crypto/rand"
	"encoding/hex"
)

const webSessionIDBytes = 12

// NewWebSessionID returns the random hex identifier posted alongside the
// finalize nonce. Community endpoints expect exactly 24 hex characters.
func NewWebSessionID() (string, error) {
	var raw [webSessionIDBytes]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}
