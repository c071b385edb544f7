// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"ada@example.com",
		"ada.lovelace@example.co",
		"a_b-c@mail.example.org",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"ada",
		"ada@example",
		"@example.com",
		"ada@.com",
		"ada@example.c",
		"ada example@example.com",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		length int
		want   PasswordStrength
	}{
		{length: 1, want: PasswordVeryWeak},
		{length: 4, want: PasswordVeryWeak},
		{length: 5, want: PasswordWeak},
		{length: 8, want: PasswordWeak},
		{length: 9, want: PasswordGood},
		{length: 15, want: PasswordGood},
		{length: 16, want: PasswordStrong},
		{length: 40, want: PasswordStrong},
	}
	for _, tc := range tests {
		got := CheckPasswordStrength(strings.Repeat("x", tc.length))
		assert.Equal(t, tc.want, got, "length %d", tc.length)
	}
}
