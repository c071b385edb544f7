// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordStrength buckets a password by length.
type PasswordStrength int

const (
	PasswordVeryWeak PasswordStrength = iota + 1
	PasswordWeak
	PasswordGood
	PasswordStrong
)

func (p PasswordStrength) String() string {
	switch p {
	case PasswordVeryWeak:
		return "very weak"
	case PasswordWeak:
		return "weak"
	case PasswordGood:
		return "good"
	case PasswordStrong:
		return "strong"
	}
	return "unknown"
}

// CheckPasswordStrength buckets the password: 1-4 characters very weak, 5-8
// weak, 9-15 good, longer strong.
func CheckPasswordStrength(password string) PasswordStrength {
	switch n := len(password); {
	case n <= 4:
		return PasswordVeryWeak
	case n <= 8:
		return PasswordWeak
	case n <= 15:
		return PasswordGood
	default:
		return PasswordStrong
	}
}
