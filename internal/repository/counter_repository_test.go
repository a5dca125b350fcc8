package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterRepositoryDisabled(t *testing.T) {
	repo := NewCounterRepository(nil)
	assert.False(t, repo.Enabled())

	_, _, err := repo.Increment(context.Background(), "k", time.Minute)
	assert.ErrorIs(t, err, ErrCounterUnavailable)
	assert.ErrorIs(t, repo.Ping(context.Background()), ErrCounterUnavailable)
	assert.NoError(t, repo.Close())

	var nilRepo *CounterRepository
	assert.False(t, nilRepo.Enabled())
}
