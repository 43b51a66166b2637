package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
)

func seedUser(t *testing.T, repo *memUserRepo) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("original-pw", 4)
	require.NoError(t, err)
	user := &domain.User{Name: "Jamie", Email: "jamie@example.com", PasswordHash: hash, Role: domain.RoleUser}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserService_UpdateAllowList(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, 4)
	ctx := context.Background()
	user := seedUser(t, repo)

	newName := "Jamie Q"
	adminRole := domain.RoleAdmin
	updated, err := svc.Update(ctx, user.ID, UserUpdateInput{Name: &newName, Role: &adminRole})
	require.NoError(t, err)
	assert.Equal(t, "Jamie Q", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, user.Email, updated.Email, "omitted fields stay unchanged")
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestUserService_UpdatePasswordRehashes(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, 4)
	ctx := context.Background()
	user := seedUser(t, repo)

	newPassword := "replacement-pw"
	updated, err := svc.Update(ctx, user.ID, UserUpdateInput{Password: &newPassword})
	require.NoError(t, err)
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)
	assert.NotEqual(t, "replacement-pw", updated.PasswordHash)
	assert.NoError(t, auth.ComparePassword(updated.PasswordHash, "replacement-pw"))
}

func TestUserService_UpdateValidation(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, 4)
	ctx := context.Background()
	user := seedUser(t, repo)

	empty := ""
	_, err := svc.Update(ctx, user.ID, UserUpdateInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)

	badEmail := "not-an-email"
	_, err = svc.Update(ctx, user.ID, UserUpdateInput{Email: &badEmail})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)

	badRole := domain.Role("superadmin")
	_, err = svc.Update(ctx, user.ID, UserUpdateInput{Role: &badRole})
	require.Error(t, err)
	assert.Equal(t, "400", asDomainError(t, err).Code)
}

func TestUserService_UpdateMissingUser(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), 4)

	name := "Anyone"
	_, err := svc.Update(context.Background(), "missing-id", UserUpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, "404", asDomainError(t, err).Code)
}

func TestUserService_Delete(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, 4)
	ctx := context.Background()
	user := seedUser(t, repo)

	require.NoError(t, svc.Delete(ctx, user.ID))

	err := svc.Delete(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, "404", asDomainError(t, err).Code)
}
