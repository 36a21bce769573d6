package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteCode(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		code  string
		valid bool
	}{
		{"A1B2C3D4E5F6", true},
		{"a1b2c3d4e5f6", true},
		{"  A1B2C3D4E5F6 ", true},
		{"A1B2C", false},
		{"ZZZZZZZZZZZZ", false},
		{"A1B2-C3D4-E5F6", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := v.Var(tt.code, "invitecode")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterGin(t *testing.T) {
	assert.NoError(t, RegisterGin())
}
