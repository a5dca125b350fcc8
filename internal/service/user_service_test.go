package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

var (
	adminID  = access.Identity{UserID: "admin", Role: models.RoleAdmin}
	staffID  = access.Identity{UserID: "staff", Role: models.RoleStaff}
	parentID = access.Identity{UserID: "parent", Role: models.RoleParent}
)

func newUserFixture() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo(
		testUser("admin", models.RoleAdmin),
		testUser("staff", models.RoleStaff),
		testUser("parent", models.RoleParent),
	)
	return NewUserService(repo, nil, zap.NewNop(), bcrypt.MinCost), repo
}

func TestUserServiceListRequiresAdmin(t *testing.T) {
	svc, repo := newUserFixture()
	repo.users["parent"].IsActive = false

	users, pagination, err := svc.List(context.Background(), adminID, models.UserFilter{Page: -3, Limit: 500})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 100, pagination.Limit)
	assert.Equal(t, 2, pagination.Total)
	assert.Equal(t, 1, pagination.Pages)

	_, _, err = svc.List(context.Background(), staffID, models.UserFilter{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, _, err = svc.List(context.Background(), access.Anonymous(), models.UserFilter{})
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
}

func TestUserServiceGetScopesToSelf(t *testing.T) {
	svc, repo := newUserFixture()
	ctx := context.Background()

	user, err := svc.Get(ctx, parentID, "parent")
	require.NoError(t, err)
	assert.Equal(t, "parent", user.ID)

	_, err = svc.Get(ctx, parentID, "staff")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	repo.users["parent"].IsActive = false
	_, err = svc.Get(ctx, staffID, "parent")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestUserServiceCreate(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()
	req := CreateUserRequest{Email: "New@Example.com", Password: "secret1", FirstName: "New", LastName: "Staff", Role: models.RoleStaff}

	user, err := svc.Create(ctx, adminID, req)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.RoleStaff, user.Role)

	_, err = svc.Create(ctx, adminID, req)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Create(ctx, staffID, req)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	req.Role = "owner"
	req.Email = "other@example.com"
	_, err = svc.Create(ctx, adminID, req)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestUserServiceUpdate(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	user, err := svc.Update(ctx, parentID, "parent", UpdateUserRequest{LastName: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.LastName)

	role := models.RoleAdmin
	_, err = svc.Update(ctx, parentID, "parent", UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Update(ctx, staffID, "parent", UpdateUserRequest{LastName: strPtr("X")})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Update(ctx, adminID, "parent", UpdateUserRequest{Email: strPtr("staff@example.com")})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	staffRole := models.RoleStaff
	user, err = svc.Update(ctx, adminID, "parent", UpdateUserRequest{Role: &staffRole})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)

	inactive := false
	_, err = svc.Update(ctx, adminID, "admin", UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	admin, err := svc.Get(ctx, adminID, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsActive)

	user, err = svc.Update(ctx, adminID, "parent", UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestUserServiceDelete(t *testing.T) {
	svc, repo := newUserFixture()
	ctx := context.Background()

	err := svc.Delete(ctx, adminID, "admin")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.Delete(ctx, adminID, "parent"))
	assert.False(t, repo.users["parent"].IsActive)

	err = svc.Delete(ctx, adminID, "parent")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	err = svc.Delete(ctx, staffID, "staff")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}
