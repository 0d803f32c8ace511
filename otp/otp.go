// Package otp implements the one-time-code verification machine shared
// by signup, login-gate and password-reset flows for both account kinds.
package otp

import (
	"errors"
	"math/rand"
	"strconv"
	"time"
)

// TTL is how long an issued code stays valid.
const TTL = 10 * time.Minute

var (
	ErrNotRequested = errors.New("otp not requested")
	ErrExpired      = errors.New("otp expired")
	ErrInvalid      = errors.New("invalid otp")
)

// Challenge is a pending code with its deadline.
type Challenge struct {
	Code   string
	Expiry time.Time
}

// Generate returns a 6-digit numeric code. Uniform random, collisions
// allowed; these codes are short-lived and tied to a single account.
func Generate() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// Issue creates a fresh challenge expiring TTL from now.
func Issue(now time.Time) Challenge {
	return Challenge{Code: Generate(), Expiry: now.Add(TTL)}
}

// Verify checks a submitted code against a pending challenge.
// The check order is fixed and client-visible: a missing challenge
// fails before anything else, an expired one fails before the codes
// are compared, so an expired-but-correct code still reports ErrExpired.
// A nil challenge means no code was ever requested (or it was already
// consumed). Verification does not consume the challenge; the caller
// clears it only on success.
func Verify(ch *Challenge, submitted string, now time.Time) error {
	if ch == nil || ch.Code == "" {
		return ErrNotRequested
	}
	if now.After(ch.Expiry) {
		return ErrExpired
	}
	if ch.Code != submitted {
		return ErrInvalid
	}
	return nil
}
