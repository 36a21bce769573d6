// Package validation registers custom validator tags used in request binding.
package validation

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/leaguehub/server/internal/utils/random"
)

// Invitation code length bounds accepted on input. Generated codes use the
// configured length, which always falls inside this range.
const (
	MinCodeLength = 6
	MaxCodeLength = 32
)

// Register adds the custom tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("invitecode", isInviteCode); err != nil {
		return fmt.Errorf("register invitecode: %w", err)
	}
	return nil
}

// RegisterGin adds the custom tags to gin's default binding validator.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

// isInviteCode accepts hex codes in either case, surrounded by optional whitespace.
func isInviteCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return false
	}
	return random.IsFrom(code, random.CharsetUpperHex)
}
