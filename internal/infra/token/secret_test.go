package token

import (
	"bytes"
	"encoding/base64"
	"testing"
	"time"
)

func TestLoadSecretFromBase64(t *testing.T) {
	raw := bytes.Repeat([]byte{0xab}, 32)
	secret, err := LoadSecret(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(secret, raw) {
		t.Fatal("expected decoded base64 secret")
	}
}

func TestLoadSecretFromRawString(t *testing.T) {
	configured := "this-secret-is-not-base64-encoded!!!"
	secret, err := LoadSecret(configured)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(secret) != configured {
		t.Fatal("expected raw bytes for a non-base64 value")
	}
}

func TestLoadSecretRejectsShortSecret(t *testing.T) {
	if _, err := LoadSecret("too-short"); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestLoadSecretGeneratesWhenUnset(t *testing.T) {
	first, err := LoadSecret("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := LoadSecret("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first) < MinSecretLen {
		t.Fatalf("generated secret too short: %d bytes", len(first))
	}
	if bytes.Equal(first, second) {
		t.Fatal("expected distinct generated secrets")
	}
}

// A generated secret is scoped to the process: tokens issued under the old
// secret must fail verification after a simulated restart.
func TestGeneratedSecretInvalidatesPriorTokens(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	before, err := LoadSecret("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	encoded, _ := NewAuthenticator(before, clock).Issue(time.Hour)

	after, err := LoadSecret("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := NewAuthenticator(after, clock).Verify(encoded); err == nil {
		t.Fatal("token survived a secret rotation")
	}
}
