package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/leaguehub/server/internal/port/outbound"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := TranslateError(fmt.Errorf("first: %w", gorm.ErrRecordNotFound))
		assert.ErrorIs(t, err, outbound.ErrRecordNotFound)
	})

	t.Run("unique violation keeps constraint name", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: outbound.ConstraintPendingJoinRequest}

		err := TranslateError(fmt.Errorf("insert: %w", pgErr))
		assert.ErrorIs(t, err, outbound.ErrDuplicate)
		assert.True(t, outbound.IsDuplicateOn(err, outbound.ConstraintPendingJoinRequest))
		assert.False(t, outbound.IsDuplicateOn(err, outbound.ConstraintTeamPlayer))
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "40001"}
		err := TranslateError(pgErr)
		assert.Same(t, pgErr, err)
	})

	t.Run("unrelated errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, TranslateError(plain))
	})
}
