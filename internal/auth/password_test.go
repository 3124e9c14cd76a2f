package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, _ := HashPassword("hunter22")

	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
	if !strings.HasPrefix(h1, "$2") {
		t.Errorf("hash does not look like bcrypt: %q", h1)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword("correct-password", hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("correct-password", "not-a-hash") {
		t.Error("CheckPassword() accepted a garbage hash")
	}
}
