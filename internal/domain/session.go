package domain

import "time"

// StatusReason identifies why a session status check came back
// unauthenticated. Natural expiry and a missing cookie are ordinary
// conditions, not faults.
type StatusReason string

const (
	ReasonNoSessionCookie  StatusReason = "NoSessionCookie"
	ReasonMalformedToken   StatusReason = "MalformedToken"
	ReasonInvalidSignature StatusReason = "InvalidSignature"
	ReasonExpired          StatusReason = "Expired"
)

// SessionClaims is the decoded content of a verified session token. The
// server keeps no record of issued tokens; everything here is re-derived
// from the token bytes and the signing secret.
type SessionClaims struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
	Remaining time.Duration
}

// SessionStatus is the answer to a status check.
type SessionStatus struct {
	Authenticated bool
	ExpiresAt     time.Time
	Remaining     time.Duration
	Reason        StatusReason
}

// TokenIssuer mints signed, self-describing session tokens.
type TokenIssuer interface {
	Issue(ttl time.Duration) (token string, expiresAt time.Time)
}

// TokenVerifier validates a token purely from its own contents and the
// signing secret. Errors are ErrMalformedToken, ErrInvalidSignature or
// ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (SessionClaims, error)
}
