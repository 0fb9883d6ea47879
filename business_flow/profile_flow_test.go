package businessflow

import (
	"errors"
	"testing"

	"github.com/scoutbase/scoutbase/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUpdateErrorTranslation(t *testing.T) {
	assert.ErrorIs(t, updateError(gorm.ErrRecordNotFound), ErrUserNotFound,
		"a vanished user surfaces as not found")

	assert.ErrorIs(t, updateError(repository.ErrNoRowsUpdated), ErrUpdateFailed,
		"a zero-row write on an existing user surfaces as an update failure")

	wrapped := updateError(errors.New("connection reset"))
	assert.NotErrorIs(t, wrapped, ErrUserNotFound)
	assert.NotErrorIs(t, wrapped, ErrUpdateFailed)
	assert.ErrorContains(t, wrapped, "connection reset")
}
