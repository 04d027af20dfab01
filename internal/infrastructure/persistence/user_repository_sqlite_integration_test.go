//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	byID, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)
	assert.Equal(t, user.ClearanceLevel, byID.ClearanceLevel)

	byName, err := ctx.UserRepo.GetByUsername(context.Background(), user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := ctx.UserRepo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t)

	user, err := ctx.UserRepo.GetByID(context.Background(), uuid.NewString())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserSqliteRepository_Create_DuplicateUsername(t *testing.T) {
	ctx := SetupTestDB(t)

	first := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), first))

	second := CreateTestUser(t)
	second.Username = first.Username

	err := ctx.UserRepo.Create(context.Background(), second)
	assert.ErrorIs(t, err, users.ErrDuplicateUser)
}
