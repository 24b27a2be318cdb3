package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/infra/ratelimit"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/infra/token"
)

const (
	testPassword = "hunter2"
	testIdentity = "203.0.113.7"
	testTTL      = 7 * 24 * time.Hour
	testAttempts = 5
	testWindow   = 15 * time.Minute
)

type gateClock struct {
	current time.Time
}

func (c *gateClock) now() time.Time { return c.current }

func newTestGate(t *testing.T, clock *gateClock) *Gate {
	t.Helper()
	authenticator := token.NewAuthenticator(
		[]byte("0123456789abcdef0123456789abcdef"), clock.now,
	)
	gate, err := NewGate(GateConfig{
		Password: testPassword,
		Limiter:  ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{Now: clock.now}),
		Issuer:   authenticator,
		Verifier: authenticator,
		TTL:      testTTL,
		Attempts: testAttempts,
		Window:   testWindow,
		Now:      clock.now,
	})
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	return gate
}

func TestNewGateRequiresPassword(t *testing.T) {
	_, err := NewGate(GateConfig{})
	if !errors.Is(err, domain.ErrConfigMissing) {
		t.Fatalf("got %v, want ErrConfigMissing", err)
	}
}

func TestVerifyPasswordSuccess(t *testing.T) {
	clock := &gateClock{current: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	gate := newTestGate(t, clock)

	result, err := gate.VerifyPassword(context.Background(), testPassword, testIdentity)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.ExpiresIn != testTTL {
		t.Fatalf("expiresIn = %v, want %v", result.ExpiresIn, testTTL)
	}

	status := gate.Status(result.Token)
	if !status.Authenticated {
		t.Fatalf("fresh token not authenticated: %+v", status)
	}
	if !status.ExpiresAt.Equal(clock.current.Add(testTTL)) {
		t.Fatalf("expiresAt = %v", status.ExpiresAt)
	}
	if status.Remaining != testTTL {
		t.Fatalf("remaining = %v, want %v", status.Remaining, testTTL)
	}
}

func TestVerifyPasswordCountsDownRemainingAttempts(t *testing.T) {
	clock := &gateClock{current: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	gate := newTestGate(t, clock)
	ctx := context.Background()

	for i, want := range []int{4, 3, 2, 1, 0} {
		result, err := gate.VerifyPassword(ctx, "wrong", testIdentity)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v, want ErrInvalidCredentials", i+1, err)
		}
		if result.RemainingAttempts != want {
			t.Fatalf("attempt %d remaining = %d, want %d", i+1, result.RemainingAttempts, want)
		}
	}

	// Budget exhausted: even the correct password is refused until the
	// window resets.
	result, err := gate.VerifyPassword(ctx, testPassword, testIdentity)
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if result.RetryAfter != testWindow {
		t.Fatalf("retryAfter = %v, want %v", result.RetryAfter, testWindow)
	}

	clock.current = clock.current.Add(testWindow + time.Second)
	if _, err := gate.VerifyPassword(ctx, testPassword, testIdentity); err != nil {
		t.Fatalf("after window reset: %v", err)
	}
}

func TestVerifyPasswordRateLimitCountdown(t *testing.T) {
	clock := &gateClock{current: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	gate := newTestGate(t, clock)
	ctx := context.Background()

	for i := 0; i < testAttempts; i++ {
		gate.VerifyPassword(ctx, "wrong", testIdentity)
	}

	clock.current = clock.current.Add(5 * time.Minute)
	result, err := gate.VerifyPassword(ctx, testPassword, testIdentity)
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if result.RetryAfter != 10*time.Minute {
		t.Fatalf("retryAfter = %v, want 10m", result.RetryAfter)
	}
}

func TestVerifyPasswordIdentitiesDoNotShareBudget(t *testing.T) {
	clock := &gateClock{current: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	gate := newTestGate(t, clock)
	ctx := context.Background()

	for i := 0; i < testAttempts; i++ {
		gate.VerifyPassword(ctx, "wrong", testIdentity)
	}
	if _, err := gate.VerifyPassword(ctx, testPassword, testIdentity); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}

	if _, err := gate.VerifyPassword(ctx, testPassword, "198.51.100.9"); err != nil {
		t.Fatalf("second identity blocked: %v", err)
	}
}

func TestStatusReasons(t *testing.T) {
	clock := &gateClock{current: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	gate := newTestGate(t, clock)

	if status := gate.Status(""); status.Authenticated || status.Reason != domain.ReasonNoSessionCookie {
		t.Fatalf("empty token: %+v", status)
	}
	if status := gate.Status("not-a-token"); status.Reason != domain.ReasonMalformedToken {
		t.Fatalf("garbage token: %+v", status)
	}

	result, err := gate.VerifyPassword(context.Background(), testPassword, testIdentity)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	clock.current = clock.current.Add(testTTL + time.Second)
	if status := gate.Status(result.Token); status.Authenticated || status.Reason != domain.ReasonExpired {
		t.Fatalf("expired token: %+v", status)
	}
}
