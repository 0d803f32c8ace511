package otp

import (
	"testing"
	"time"
)

func TestGenerateSixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		if len(code) != 6 {
			t.Fatalf("expected 6-digit code, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("code %q has a leading zero", code)
		}
	}
}

func TestIssueExpiry(t *testing.T) {
	now := time.Now()
	ch := Issue(now)
	if got := ch.Expiry.Sub(now); got != TTL {
		t.Fatalf("expiry = now + %v, want now + %v", got, TTL)
	}
	if len(ch.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", ch.Code)
	}
}

func TestVerifyCheckOrder(t *testing.T) {
	now := time.Now()
	valid := &Challenge{Code: "123456", Expiry: now.Add(time.Minute)}
	expired := &Challenge{Code: "123456", Expiry: now.Add(-time.Minute)}

	cases := []struct {
		name      string
		ch        *Challenge
		submitted string
		want      error
	}{
		{"missing challenge", nil, "123456", ErrNotRequested},
		{"consumed challenge", &Challenge{}, "123456", ErrNotRequested},
		{"expired with wrong code", expired, "000000", ErrExpired},
		{"expired with correct code", expired, "123456", ErrExpired},
		{"wrong code", valid, "654321", ErrInvalid},
		{"match", valid, "123456", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Verify(tc.ch, tc.submitted, now); got != tc.want {
				t.Fatalf("Verify() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVerifyDoesNotConsume(t *testing.T) {
	now := time.Now()
	ch := &Challenge{Code: "123456", Expiry: now.Add(time.Minute)}

	if err := Verify(ch, "999999", now); err != ErrInvalid {
		t.Fatalf("Verify() = %v, want ErrInvalid", err)
	}
	// A failed attempt leaves the challenge intact for a retry.
	if err := Verify(ch, "123456", now); err != nil {
		t.Fatalf("Verify() after failed attempt = %v, want nil", err)
	}
}
