package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the pause between card creations under the fixed policy.
const DefaultDelay = 500 * time.Millisecond

// Pacing policies.
const (
	PolicyFixed       = "fixed"
	PolicyTokenBucket = "token_bucket"
	PolicyNone        = "none"
)

// Pacer blocks between card creations to stay under the remote rate limit.
type Pacer interface {
	Pace(ctx context.Context) error
}

// FixedDelay waits a constant interval on every call.
type FixedDelay struct {
	Delay time.Duration
}

// Pace implements Pacer.
func (p FixedDelay) Pace(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TokenBucket allows bursts of up to burst calls and refills one token per
// interval.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a token bucket pacer.
func NewTokenBucket(interval time.Duration, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &TokenBucket{limiter: rate.NewLimiter(limit, burst)}
}

// Pace implements Pacer.
func (p *TokenBucket) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NoPace never waits.
type NoPace struct{}

// Pace implements Pacer.
func (NoPace) Pace(ctx context.Context) error {
	return ctx.Err()
}

// NewPacer builds the pacer for policy. An empty policy selects PolicyFixed.
func NewPacer(policy string, delay time.Duration, burst int) (Pacer, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicyFixed:
		return FixedDelay{Delay: delay}, nil
	case PolicyTokenBucket:
		return NewTokenBucket(delay, burst), nil
	case PolicyNone:
		return NoPace{}, nil
	default:
		return nil, fmt.Errorf("unknown pacing policy %q", policy)
	}
}
