package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAllowlist(t *testing.T) {
	list := NewAllowlist(" Alice@Example.com , bob@example.com ,, ")

	assert.Equal(t, Allowlist{"alice@example.com", "bob@example.com"}, list)
}

func TestAllowlistContains(t *testing.T) {
	list := NewAllowlist("alice@example.com,bob@example.com")

	tests := []struct {
		name     string
		email    string
		expected bool
	}{
		{"exact match", "alice@example.com", true},
		{"case insensitive", "ALICE@Example.COM", true},
		{"surrounding whitespace", "  bob@example.com ", true},
		{"unknown email", "mallory@example.com", false},
		{"empty email", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, list.Contains(tt.email))
		})
	}
}

func TestEmptyAllowlistRejectsEveryone(t *testing.T) {
	list := NewAllowlist("")

	assert.Empty(t, list)
	assert.False(t, list.Contains("alice@example.com"))
}
