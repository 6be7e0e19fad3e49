package demotokens

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	now := time.Now()
	token, err := Sign("secret", "203.0.113.9", now, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Verify("secret", token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.IP != "203.0.113.9" {
		t.Fatalf("ip = %q, want 203.0.113.9", claims.IP)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Sign("secret", "203.0.113.9", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify("other", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := Sign("secret", "203.0.113.9", time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify("secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := Verify("secret", "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}
