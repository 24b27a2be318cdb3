package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/infra/crypto"
)

// Gate answers the three access-gate operations: verify-credentials,
// check-status and logout. It owns every piece of shared state the gate
// needs (configured password, limiter, token codec); nothing lives in
// package-level variables, so a process constructs exactly one Gate at
// startup and hands it to the transport.
type Gate struct {
	password string
	limiter  domain.RateLimiter
	issuer   domain.TokenIssuer
	verifier domain.TokenVerifier

	ttl      time.Duration
	attempts int
	window   time.Duration
	now      func() time.Time
}

type GateConfig struct {
	Password string
	Limiter  domain.RateLimiter
	Issuer   domain.TokenIssuer
	Verifier domain.TokenVerifier
	TTL      time.Duration
	Attempts int
	Window   time.Duration
	Now      func() time.Time
}

func NewGate(cfg GateConfig) (*Gate, error) {
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: gate password is required", domain.ErrConfigMissing)
	}
	if cfg.Limiter == nil || cfg.Issuer == nil || cfg.Verifier == nil {
		return nil, fmt.Errorf("%w: limiter and token codec are required", domain.ErrConfigMissing)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Gate{
		password: cfg.Password,
		limiter:  cfg.Limiter,
		issuer:   cfg.Issuer,
		verifier: cfg.Verifier,
		ttl:      cfg.TTL,
		attempts: cfg.Attempts,
		window:   cfg.Window,
		now:      cfg.Now,
	}, nil
}

// VerifyResult carries the outcome of a credential check. On success Token
// and ExpiresAt are set; on ErrInvalidCredentials RemainingAttempts tells
// the caller how much budget is left; on ErrRateLimited RetryAfter tells
// them how long until the window resets.
type VerifyResult struct {
	Token             string
	ExpiresAt         time.Time
	ExpiresIn         time.Duration
	RemainingAttempts int
	RetryAfter        time.Duration
	Decision          domain.RateLimitDecision
}

// VerifyPassword checks one login attempt from identity. The rate limit is
// consulted first, so attempts beyond the budget never reach the credential
// comparison. A limiter failure rejects the attempt: an auth gate fails
// closed.
func (g *Gate) VerifyPassword(ctx context.Context, password, identity string) (VerifyResult, error) {
	decision, err := g.limiter.Allow(ctx, identity, g.attempts, g.window)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("%w: limiter unavailable", domain.ErrRateLimited)
	}
	result := VerifyResult{
		Decision:          decision,
		RemainingAttempts: decision.Remaining,
		RetryAfter:        g.untilReset(decision),
	}
	if !decision.Allowed {
		return result, domain.ErrRateLimited
	}

	if !crypto.SecureCompare(password, g.password) {
		return result, domain.ErrInvalidCredentials
	}

	token, expiresAt := g.issuer.Issue(g.ttl)
	result.Token = token
	result.ExpiresAt = expiresAt
	result.ExpiresIn = g.ttl
	return result, nil
}

// Status reports whether a presented token grants access. It never returns
// an error: an absent, malformed, tampered or expired token is the ordinary
// unauthenticated state, mapped to a reason the dashboard can act on.
func (g *Gate) Status(token string) domain.SessionStatus {
	if token == "" {
		return domain.SessionStatus{Reason: domain.ReasonNoSessionCookie}
	}
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return domain.SessionStatus{Reason: statusReason(err)}
	}
	return domain.SessionStatus{
		Authenticated: true,
		ExpiresAt:     claims.ExpiresAt,
		Remaining:     claims.Remaining,
	}
}

// Logout always succeeds. Tokens are stateless, so the server has nothing
// to invalidate: the transport overwrites the client cookie, and a token
// value retained elsewhere remains verifiable until natural expiry. Stronger
// revocation would need a denylist, which this gate deliberately omits.
func (g *Gate) Logout() {}

func (g *Gate) untilReset(decision domain.RateLimitDecision) time.Duration {
	if decision.ResetAt.IsZero() {
		return 0
	}
	until := decision.ResetAt.Sub(g.now())
	if until < 0 {
		return 0
	}
	return until
}

func statusReason(err error) domain.StatusReason {
	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		return domain.ReasonInvalidSignature
	case errors.Is(err, domain.ErrTokenExpired):
		return domain.ReasonExpired
	default:
		return domain.ReasonMalformedToken
	}
}
