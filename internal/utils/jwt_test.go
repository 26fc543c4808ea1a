package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	id := Identity{UserID: "u-1", Role: "COACH", ClubID: "club-1", Name: "Ana"}
	at, err := NewAccessToken("secret", id, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if !at.Exp.After(time.Now()) {
		t.Fatal("expiry must be in the future")
	}

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "u-1" || claims["role"] != "COACH" || claims["club"] != "club-1" || claims["name"] != "Ana" {
		t.Fatalf("claims = %v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret", Identity{UserID: "u-1"}, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatal("refresh tokens must be unique")
	}
	if HashRefreshRaw(a.Raw) == HashRefreshRaw(b.Raw) {
		t.Fatal("distinct tokens must hash differently")
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Fatal("hash must be deterministic")
	}
	if HashRefreshRaw(a.Raw) == a.Raw {
		t.Fatal("stored value must not be the raw token")
	}
}
