package service

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/daycare-api/internal/repository"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

func TestRepoError(t *testing.T) {
	assert.ErrorIs(t, repoError(sql.ErrNoRows, "child", "load"), appErrors.ErrNotFound)
	assert.ErrorIs(t, repoError(fmt.Errorf("x: %w", repository.ErrDuplicate), "user", "create"), appErrors.ErrConflict)
	err := repoError(fmt.Errorf("boom"), "user", "create")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Equal(t, "failed to create user", appErrors.FromError(err).Message)
}

func TestDayBoundsUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC on the 11th is still the 10th in UTC-5
	start, end := dayBounds(time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestValidatorUsesJSONNames(t *testing.T) {
	type payload struct {
		ChildID string `json:"child_id" validate:"required"`
	}
	err := NewValidator().Struct(payload{})
	require.Error(t, err)
	appErr := appErrors.Validation(err, "")
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "child_id", appErr.Details[0].Field)
	assert.Equal(t, "is required", appErr.Details[0].Message)
}
