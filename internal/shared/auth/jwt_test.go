package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestSigner(t *testing.T, secret string) *Signer {
	t.Helper()
	s, err := NewSigner(secret, time.Hour)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestSignAndVerify(t *testing.T) {
	s := newTestSigner(t, "test-secret")

	token, err := s.Sign(Claims{
		Email:            "ada@example.com",
		Name:             "Ada",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "ada@example.com" || claims.Issuer != Issuer {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %s", got)
	}
}

func TestVerifyRejects(t *testing.T) {
	s := newTestSigner(t, "test-secret")
	token, err := s.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	expired, _ := s.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	foreign, _ := s.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "someone-else"}})
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: Issuer},
	}).SignedString([]byte("test-secret"))

	cases := map[string]struct {
		signer *Signer
		token  string
	}{
		"tampered":     {s, tampered},
		"expired":      {s, expired},
		"issuer":       {s, foreign},
		"no expiry":    {s, noExpiry},
		"wrong secret": {newTestSigner(t, "other-secret"), token},
		"garbage":      {s, "not-a-token"},
	}
	for name, tc := range cases {
		if _, err := tc.signer.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestVerifyUsesSignerClock(t *testing.T) {
	s := newTestSigner(t, "test-secret")
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	s.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := s.Verify(token); err != nil {
		t.Fatalf("expected valid token before expiry: %v", err)
	}
	s.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := s.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestSignerRequiresSecretAndSubject(t *testing.T) {
	if _, err := NewSigner("  ", 0); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	s := newTestSigner(t, "x")
	if _, err := s.Sign(Claims{}); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}
