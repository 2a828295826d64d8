package repository

import (
	"context"
	"testing"

	"ecom-admin/domain"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(&domain.User{}), "failed to migrate test database")
	return db
}

func seedUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		RoleID:   "role-1",
		Status:   domain.StatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEmpty(t, user.ID, "Create should generate an id")
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "one@example.com")

	got, err := repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "one@example.com", got.Email)
	assert.Equal(t, domain.StatusActive, got.Status)

	byEmail, err := repo.FindOne(ctx, &domain.UserFilter{Email: lo.ToPtr("one@example.com")}, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindOne(ctx, &domain.UserFilter{Email: lo.ToPtr("missing@example.com")}, nil)
	assert.Error(t, err)
}

func TestUserRepository_SoftDeleteAndRestore(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "gone@example.com")
	require.NoError(t, repo.Delete(ctx, user.ID))

	// Default lookups exclude soft-deleted rows.
	_, err := repo.FindByID(ctx, user.ID, nil)
	assert.Error(t, err)

	// IncludeDeleted surfaces it, OnlyDeleted finds it exclusively.
	got, err := repo.FindOne(ctx, &domain.UserFilter{
		ID:             &user.ID,
		IncludeDeleted: lo.ToPtr(true),
	}, nil)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted())

	got, err = repo.FindOne(ctx, &domain.UserFilter{
		ID:          &user.ID,
		OnlyDeleted: lo.ToPtr(true),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, repo.Restore(ctx, user.ID))
	got, err = repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted())
}

func TestUserRepository_FindPage(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		seedUser(t, repo, email)
	}

	users, pagination, err := repo.FindPage(ctx, &domain.UserFilter{}, &domain.FindPageOption{
		Page:    1,
		PerPage: 2,
	})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(3), pagination.TotalItems)
	assert.Equal(t, 2, pagination.TotalPages)
}

func TestUserRepository_SearchTerm(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@example.com")
	alice.Name = "Alice Johnson"
	require.NoError(t, repo.Update(ctx, alice))
	seedUser(t, repo, "bob@example.com")

	users, err := repo.FindMany(ctx, &domain.UserFilter{SearchTerm: lo.ToPtr("alice")}, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, alice.ID, users[0].ID)
}

func TestUserRepository_SyncRolePrivilegeIDs(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	first := seedUser(t, repo, "first@example.com")
	second := seedUser(t, repo, "second@example.com")
	other := &domain.User{
		Name:     "Other Role",
		Email:    "other@example.com",
		Password: "hashed",
		RoleID:   "role-2",
		Status:   domain.StatusActive,
	}
	require.NoError(t, repo.Create(ctx, other))

	ids := domain.NewStringSlice([]string{"priv-1", "priv-2"})
	require.NoError(t, repo.SyncRolePrivilegeIDs(ctx, "role-1", ids))

	for _, id := range []string{first.ID, second.ID} {
		got, err := repo.FindByID(ctx, id, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"priv-1", "priv-2"}, []string(got.RolePrivilegeIDs))
	}

	got, err := repo.FindByID(ctx, other.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.RolePrivilegeIDs, "users of other roles must be untouched")
}

func TestUserRepository_UpdateFields(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "fields@example.com")
	require.NoError(t, repo.UpdateFields(ctx, user.ID, map[string]any{
		"reset_password_token":   "token-123",
		"reset_password_expires": int64(42),
	}))

	got, err := repo.FindOne(ctx, &domain.UserFilter{ResetToken: lo.ToPtr("token-123")}, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, int64(42), got.ResetPasswordExpires)
}
