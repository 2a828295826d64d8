package usecase

import (
	"context"
	"testing"

	"ecom-admin/common"
	"ecom-admin/domain"
	roleRepository "ecom-admin/modules/role/repository"
	userRepository "ecom-admin/modules/user/repository"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userFixture struct {
	db      *gorm.DB
	repo    *userRepository.UserRepository
	usecase domain.UserUsecase
	hasher  *common.BcryptHasher
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.RolePrivilege{},
	), "failed to migrate test database")

	repo := userRepository.NewUserRepository(db)
	hasher := common.NewBcryptHasher()
	uc := NewUserUsecase(
		repo,
		roleRepository.NewRoleRepository(db),
		roleRepository.NewRolePrivilegeRepository(db),
		hasher,
	)
	return &userFixture{db: db, repo: repo, usecase: uc, hasher: hasher}
}

// seedRole creates a role with n privilege rows attached.
func (f *userFixture) seedRole(t *testing.T, name string, n int) (*domain.Role, []string) {
	t.Helper()

	role := &domain.Role{Name: name, Slug: common.Slugify(name), Status: domain.StatusActive}
	require.NoError(t, f.db.Create(role).Error)

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		privilege := &domain.RolePrivilege{RoleID: role.ID, MenuGroupID: "group", Status: true}
		require.NoError(t, f.db.Create(privilege).Error)
		ids = append(ids, privilege.ID)
	}
	return role, ids
}

func TestUserUsecase_CreateSnapshotsRolePrivileges(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	role, privilegeIDs := f.seedRole(t, "Editor", 2)

	user, err := f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret-pass",
		RoleID:   role.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, user.Password, "created user comes back sanitized")
	assert.Equal(t, role.ID, user.RoleID)
	assert.Equal(t, "Editor", user.Role)
	assert.ElementsMatch(t, privilegeIDs, []string(user.RolePrivilegeIDs))

	stored, err := f.repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", stored.Password)
	assert.True(t, f.hasher.Compare(stored.Password, "secret-pass"))
}

func TestUserUsecase_CreateRejections(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	role, _ := f.seedRole(t, "Editor", 1)

	_, err := f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: "no-such-role",
	})
	var dErr *domain.DetailedError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, domain.ErrRoleNotFound.IDField, dErr.IDField)

	_, err = f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: role.ID,
	})
	require.NoError(t, err)

	_, err = f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Other Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: role.ID,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUsecase_UpdateRoleResnapshots(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	editor, _ := f.seedRole(t, "Editor", 1)
	admin, adminPrivileges := f.seedRole(t, "Admin", 3)

	user, err := f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: editor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.usecase.Update(ctx, user.ID, &domain.UserUpdateRequest{
		RoleID: &admin.ID,
	}))

	got, err := f.repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.RoleID)
	assert.Equal(t, "Admin", got.Role)
	assert.ElementsMatch(t, adminPrivileges, []string(got.RolePrivilegeIDs))
}

func TestUserUsecase_UpdateEmailUniqueness(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	role, _ := f.seedRole(t, "Editor", 1)

	alice, err := f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: role.ID,
	})
	require.NoError(t, err)
	_, err = f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Bob", Email: "bob@example.com", Password: "secret-pass", RoleID: role.ID,
	})
	require.NoError(t, err)

	err = f.usecase.Update(ctx, alice.ID, &domain.UserUpdateRequest{
		Email: lo.ToPtr("bob@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Re-submitting the current email is not a conflict.
	require.NoError(t, f.usecase.Update(ctx, alice.ID, &domain.UserUpdateRequest{
		Email: lo.ToPtr("alice@example.com"),
	}))
}

func TestUserUsecase_UpdatePasswordRehashes(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	role, _ := f.seedRole(t, "Editor", 1)

	user, err := f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: role.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.usecase.Update(ctx, user.ID, &domain.UserUpdateRequest{
		Password: lo.ToPtr("new-secret"),
	}))

	got, err := f.repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.False(t, f.hasher.Compare(got.Password, "secret-pass"))
	assert.True(t, f.hasher.Compare(got.Password, "new-secret"))
}

func TestUserUsecase_DeleteRestoreLifecycle(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	role, _ := f.seedRole(t, "Editor", 1)

	user, err := f.usecase.Create(ctx, &domain.UserCreateRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret-pass", RoleID: role.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.usecase.ToggleStatus(ctx, user.ID))
	got, err := f.repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status)

	require.NoError(t, f.usecase.Delete(ctx, user.ID))
	var dErr *domain.DetailedError
	err = f.usecase.Delete(ctx, user.ID)
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, domain.ErrUserNotFound.IDField, dErr.IDField)

	require.NoError(t, f.usecase.Restore(ctx, user.ID))
	_, err = f.usecase.FindByID(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Delete(ctx, user.ID))
	require.NoError(t, f.usecase.PermanentDelete(ctx, user.ID))
	_, err = f.repo.FindOne(ctx, &domain.UserFilter{
		ID:             &user.ID,
		IncludeDeleted: lo.ToPtr(true),
	}, nil)
	assert.Error(t, err, "hard delete removes the row entirely")
}
