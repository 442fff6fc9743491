package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	at, err := NewAccessToken(secret, 42, "ADMIN", 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if !at.Exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if got := claims["sub"].(float64); uint64(got) != 42 {
		t.Fatalf("sub claim: got %v want 42", got)
	}
	if claims["role"] != "ADMIN" {
		t.Fatalf("role claim: got %v want ADMIN", claims["role"])
	}
}

func TestNewAccessToken_ExpiredRejected(t *testing.T) {
	t.Parallel()

	at, err := NewAccessToken("s", 1, "STAFF", -5)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("s"), nil
	})
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestNewRefreshToken_HashStability(t *testing.T) {
	t.Parallel()

	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length: got %d want 96", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Fatal("hash is not deterministic")
	}

	other, _ := NewRefreshToken(7)
	if rt.Raw == other.Raw {
		t.Fatal("two refresh tokens must not collide")
	}
}
