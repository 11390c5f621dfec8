package util

import (
	"errors"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks basic address shape. Real deliverability is the
// mail provider's problem.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > 255 {
		return errors.New("email too long")
	}
	if !emailRe.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidateDisplayName checks an optional display name: up to 64 chars,
// no control characters.
func ValidateDisplayName(name string) error {
	if len(name) > 64 {
		return errors.New("name too long")
	}
	for _, r := range name {
		if r < 0x20 {
			return errors.New("name contains control characters")
		}
	}
	return nil
}

// ValidatePrice rejects negative or absurdly large program prices.
func ValidatePrice(price int64) error {
	if price < 0 {
		return errors.New("price must not be negative")
	}
	if price > 10_000_000 {
		return errors.New("price too large")
	}
	return nil
}
