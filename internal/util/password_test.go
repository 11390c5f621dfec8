package util

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Error("hash format wrong, should contain $")
	}

	if _, err = HashPassword(""); err == nil {
		t.Error("empty password should return error")
	}

	// same password must produce different hashes (random salt)
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password)

	if !CheckPassword(password, hashed) {
		t.Error("correct password failed verification")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password should not verify")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash should not verify")
	}
	if CheckPassword(password, "invalid-format") {
		t.Error("invalid hash format should not verify")
	}
}

func TestIsStrongPassword(t *testing.T) {
	strong := []string{"Abcdef12", "XyZ12345", "LongerPassword99"}
	for _, pwd := range strong {
		if !IsStrongPassword(pwd) {
			t.Errorf("IsStrongPassword(%q) = false, want true", pwd)
		}
	}

	weak := []string{
		"short1A",                             // too short
		"alllowercase1",                       // no upper
		"ALLUPPERCASE1",                       // no lower
		"NoDigitsHere",                        // no digit
		strings.Repeat("Aa1", 11) + "1234567", // too long
	}
	for _, pwd := range weak {
		if IsStrongPassword(pwd) {
			t.Errorf("IsStrongPassword(%q) = true, want false", pwd)
		}
	}
}

func TestEmailLocalPart(t *testing.T) {
	cases := map[string]string{
		"a@x.com":        "a",
		"john.doe@y.org": "john.doe",
		"noatsign":       "noatsign",
	}
	for email, want := range cases {
		if got := EmailLocalPart(email); got != want {
			t.Errorf("EmailLocalPart(%q) = %q, want %q", email, got, want)
		}
	}
}
