package host

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name  string
		addr  string
		valid bool
	}{
		{"bech32", "paxi1qyqszqgpqyqszqgpqyqszqgpqyqszqgp8a6hd2", true},
		{"simple", "admin", true},
		{"empty", "", false},
		{"uppercase", "Admin", false},
		{"whitespace", "ad min", false},
		{"trailing newline", "admin\n", false},
		{"nul separator", "alice\x00x", false},
		{"escape", "alice\x1b", false},
		{"too long", strings.Repeat("a", maxAddressLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAddress)
			}
		})
	}
}
