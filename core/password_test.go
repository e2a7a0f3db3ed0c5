package core

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	h1, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
	if !VerifyPassword("correct horse battery staple", h1) {
		t.Fatalf("first hash does not verify")
	}
	if !VerifyPassword("correct horse battery staple", h2) {
		t.Fatalf("second hash does not verify")
	}
}

func TestHashPassword_CostFactor(t *testing.T) {
	h, err := HashPassword("x")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != bcryptCost {
		t.Fatalf("cost = %d, want %d", cost, bcryptCost)
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("right-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword("wrong-pass", h) {
		t.Fatalf("wrong password verified")
	}
	if VerifyPassword("", h) {
		t.Fatalf("empty password verified")
	}
}

// Hashes produced by older deployments use the $2a variant; verification
// must accept both subvariants without configuration.
func TestVerifyPassword_LegacyVariant(t *testing.T) {
	h, err := HashPassword("legacy")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	legacy := strings.Replace(h, "$2a$", "$2b$", 1)
	if legacy == h {
		legacy = strings.Replace(h, "$2b$", "$2a$", 1)
	}
	if !VerifyPassword("legacy", legacy) {
		t.Fatalf("subvariant swap broke verification")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	// Must return false, never panic.
	if VerifyPassword("x", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
}
