package users

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := r.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	got, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByID(ctx, "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_Uniqueness(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Username: "alice", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
	_, err = r.Create(ctx, &models.User{Username: "alice2", Email: "a@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestMemoryRepository_ConcurrentRegistration(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(ctx, &models.User{Username: "same", Email: "same@example.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, common.ErrorAlreadyExists)
	}
	assert.Equal(t, 1, created)
}

func TestMemoryRepository_CreateOrGetExternal(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	first, err := r.CreateOrGetExternal(ctx, &models.User{Username: "carol", Email: "c@example.com", Provider: "google", ExternalID: "g1"})
	require.NoError(t, err)

	again, err := r.CreateOrGetExternal(ctx, &models.User{Username: "renamed", Email: "c2@example.com", Provider: "google", ExternalID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "carol", again.Username)
}
