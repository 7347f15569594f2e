package security

import (
	"strings"
	"testing"

	"github.com/avelarsoto/leadpipe-backend/pkg/config"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	cfg := config.PasswordConfig{}

	encoded, err := HashPassword("hunter2!", cfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.Contains(encoded, ".") {
		t.Fatalf("expected hex(key).hex(salt) format, got %q", encoded)
	}

	ok, err := VerifyPassword("hunter2!", encoded, cfg)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Fatalf("expected original password to verify")
	}

	ok, err = VerifyPassword("hunter2?", encoded, cfg)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatalf("one-character difference must not verify")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	cfg := config.PasswordConfig{}

	first, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ by salt")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{}); err == nil {
		t.Fatalf("empty password must be rejected")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cfg := config.PasswordConfig{}
	for _, encoded := range []string{"", "nodot", "zz.zz", "deadbeef.", ".deadbeef"} {
		if _, err := VerifyPassword("whatever", encoded, cfg); err == nil {
			t.Fatalf("expected ErrInvalidHash for %q", encoded)
		}
	}
}
