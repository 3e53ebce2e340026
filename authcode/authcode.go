package authcode

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

// Alphabet is the provider's code symbol set. Codes never contain characters
// that read ambiguously over the phone (0/O, 1/I, and vowels are absent).
const Alphabet = "23456789BCDFGHJKMNPQRTVWXY"

const (
	codeLength    = 5
	periodSeconds = 30
	secretBytes   = 20
)

var (
	// ErrInvalidSecret is an exported constant or variable used by the login session engine.
	ErrInvalidSecret = errors.New("invalid shared secret")
)

// Generate describes the generate operation and its observable behavior.
//
// Generate may return an error when input validation, dependency calls, or security checks fail.
// Generate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Generate(sharedSecret string, now time.Time) (string, error) {
	secret, err := decodeSecret(sharedSecret)
	if err != nil {
		return "", err
	}
	return generate(secret, now.Unix()/periodSeconds), nil
}

// GenerateForCounter describes the generateforcounter operation and its observable behavior.
//
// GenerateForCounter may return an error when input validation, dependency calls, or security checks fail.
// GenerateForCounter does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func GenerateForCounter(sharedSecret string, counter int64) (string, error) {
	secret, err := decodeSecret(sharedSecret)
	if err != nil {
		return "", err
	}
	return generate(secret, counter), nil
}

func decodeSecret(sharedSecret string) ([]byte, error) {
	if sharedSecret == "" {
		return nil, ErrInvalidSecret
	}
	secret, err := base64.StdEncoding.DecodeString(sharedSecret)
	if err != nil || len(secret) != secretBytes {
		return nil, ErrInvalidSecret
	}
	return secret, nil
}

func generate(secret []byte, counter int64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, secret)
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	code := make([]byte, codeLength)
	for i := 0; i < codeLength; i++ {
		code[i] = Alphabet[bin%uint32(len(Alphabet))]
		bin /= uint32(len(Alphabet))
	}
	return string(code)
}
