// Package token implements the stateless session token: two timestamps
// bound by an HMAC-SHA256 signature, encoded as a single opaque string.
// Validity is re-derivable from the token bytes and the signing secret
// alone, so the server stores nothing per session.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"
)

const fieldSeparator = ":"

// Authenticator issues and verifies session tokens with a shared secret.
// It is stateless apart from the secret and safe for concurrent use.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(secret []byte, now func() time.Time) *Authenticator {
	if now == nil {
		now = time.Now
	}
	return &Authenticator{secret: secret, now: now}
}

// Issue mints a token valid for ttl from now. The encoded form is
// base64url("issuedAtMillis:expiresAtMillis:hexSignature").
func (a *Authenticator) Issue(ttl time.Duration) (string, time.Time) {
	issuedAt := a.now()
	expiresAt := issuedAt.Add(ttl)

	payload := formatPayload(issuedAt.UnixMilli(), expiresAt.UnixMilli())
	signature := a.sign(payload)

	encoded := base64.RawURLEncoding.EncodeToString(
		[]byte(payload + fieldSeparator + hex.EncodeToString(signature)),
	)
	return encoded, expiresAt
}

// Verify decodes and validates a token. The signature is checked before
// expiry so a tampered expiresAt can never extend a token's life; any
// tamper invalidates the signature first.
func (a *Authenticator) Verify(encoded string) (domain.SessionClaims, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return domain.SessionClaims{}, domain.ErrMalformedToken
	}

	fields := strings.Split(string(decoded), fieldSeparator)
	if len(fields) != 3 {
		return domain.SessionClaims{}, domain.ErrMalformedToken
	}

	issuedAtMillis, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return domain.SessionClaims{}, domain.ErrMalformedToken
	}
	expiresAtMillis, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return domain.SessionClaims{}, domain.ErrMalformedToken
	}
	signature, err := hex.DecodeString(fields[2])
	if err != nil {
		return domain.SessionClaims{}, domain.ErrMalformedToken
	}

	expected := a.sign(formatPayload(issuedAtMillis, expiresAtMillis))
	if !hmac.Equal(signature, expected) {
		return domain.SessionClaims{}, domain.ErrInvalidSignature
	}

	now := a.now()
	expiresAt := time.UnixMilli(expiresAtMillis)
	if now.After(expiresAt) {
		return domain.SessionClaims{}, domain.ErrTokenExpired
	}

	return domain.SessionClaims{
		IssuedAt:  time.UnixMilli(issuedAtMillis),
		ExpiresAt: expiresAt,
		Remaining: expiresAt.Sub(now),
	}, nil
}

func (a *Authenticator) sign(payload string) []byte {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}

func formatPayload(issuedAtMillis, expiresAtMillis int64) string {
	return strconv.FormatInt(issuedAtMillis, 10) + fieldSeparator + strconv.FormatInt(expiresAtMillis, 10)
}

var (
	_ domain.TokenIssuer   = (*Authenticator)(nil)
	_ domain.TokenVerifier = (*Authenticator)(nil)
)
