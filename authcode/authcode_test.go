package authcode

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("12345678901234567890"))

func TestGenerateShapeAndDeterminism(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	code, err := Generate(testSecret, at)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(code) != 5 {
		t.Fatalf("code length mismatch: got %q", code)
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", code, r)
		}
	}

	again, err := Generate(testSecret, at)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if again != code {
		t.Fatalf("Generate is not deterministic: %q vs %q", code, again)
	}
}

func TestGenerateStableWithinPeriod(t *testing.T) {
	// Window-aligned base so both instants share one 30s counter.
	base := time.Unix(1770000000-1770000000%30, 0)

	first, err := Generate(testSecret, base)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	last, err := Generate(testSecret, base.Add(29*time.Second))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first != last {
		t.Fatalf("code changed within one period: %q vs %q", first, last)
	}

	counter := base.Unix() / 30
	byCounter, err := GenerateForCounter(testSecret, counter)
	if err != nil {
		t.Fatalf("GenerateForCounter failed: %v", err)
	}
	if byCounter != first {
		t.Fatalf("counter and time paths disagree: %q vs %q", byCounter, first)
	}
}

func TestGenerateDiffersAcrossSecrets(t *testing.T) {
	other := base64.StdEncoding.EncodeToString([]byte("09876543210987654321"))
	at := time.Unix(1770000000, 0)

	a, err := Generate(testSecret, at)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(other, at)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a == b {
		t.Fatalf("distinct secrets produced identical codes %q", a)
	}
}

func TestGenerateRejectsBadSecrets(t *testing.T) {
	at := time.Now()

	cases := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"not base64", "!!!"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Generate(tc.secret, at); !errors.Is(err, ErrInvalidSecret) {
				t.Fatalf("Generate = %v, want ErrInvalidSecret", err)
			}
		})
	}
}
