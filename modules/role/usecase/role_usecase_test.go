package usecase

import (
	"context"
	"strings"
	"testing"

	"ecom-admin/domain"
	menuRepository "ecom-admin/modules/menu/repository"
	roleRepository "ecom-admin/modules/role/repository"
	userRepository "ecom-admin/modules/user/repository"

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
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.RolePrivilege{},
		&domain.Menu{},
		&domain.Submenu{},
		&domain.MenuPermission{},
		&domain.MenuGroup{},
	), "failed to migrate test database")
	return db
}

func newTestRoleUsecase(t *testing.T, db *gorm.DB) domain.RoleUsecase {
	t.Helper()
	return NewRoleUsecase(
		roleRepository.NewRoleRepository(db),
		roleRepository.NewRolePrivilegeRepository(db),
		menuRepository.NewMenuGroupRepository(db),
		menuRepository.NewSubmenuRepository(db),
		menuRepository.NewMenuRepository(db),
		menuRepository.NewMenuPermissionRepository(db),
		userRepository.NewUserRepository(db),
	)
}

// seedGroups creates n grantable menu groups with a full navigation chain.
func seedGroups(t *testing.T, db *gorm.DB, n int) []*domain.MenuGroup {
	t.Helper()

	menu := &domain.Menu{Name: "Catalog", Slug: "catalog", Status: domain.StatusActive}
	require.NoError(t, db.Create(menu).Error)
	permission := &domain.MenuPermission{Name: "View", Slug: "view", Status: domain.StatusActive}
	require.NoError(t, db.Create(permission).Error)

	groups := make([]*domain.MenuGroup, 0, n)
	for i := 0; i < n; i++ {
		submenu := &domain.Submenu{
			Name: "Section", Slug: "section-" + string(rune('a'+i)), Path: "/section",
			MainMenuID: menu.ID, SortOrder: i, Status: domain.StatusActive,
		}
		require.NoError(t, db.Create(submenu).Error)
		group := &domain.MenuGroup{SubmenuID: submenu.ID, MenuPermissionID: permission.ID, Status: domain.StatusActive}
		require.NoError(t, db.Create(group).Error)
		groups = append(groups, group)
	}
	return groups
}

func TestRoleUsecase_CreateBuildsFullMatrix(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	groups := seedGroups(t, db, 3)

	role, err := uc.Create(ctx, &domain.RoleCreateRequest{
		Name:         "Catalog Editor",
		MenuGroupIDs: []string{groups[0].ID, groups[2].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "catalog-editor", role.Slug)
	assert.Equal(t, domain.StatusActive, role.Status)

	detail, err := uc.FindByID(ctx, role.ID)
	require.NoError(t, err)
	// One row per active menu group, granted or not.
	require.Len(t, detail.Privileges, 3)

	granted := lo.Filter(detail.Privileges, func(p *domain.RolePrivilege, _ int) bool { return p.Status })
	require.Len(t, granted, 2)
	grantedGroupIDs := lo.Map(granted, func(p *domain.RolePrivilege, _ int) string { return p.MenuGroupID })
	assert.ElementsMatch(t, []string{groups[0].ID, groups[2].ID}, grantedGroupIDs)

	for _, p := range detail.Privileges {
		assert.Equal(t, role.ID, p.RoleID)
		assert.NotEmpty(t, p.ID)
	}
}

func TestRoleUsecase_CreateRejectsDuplicateName(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	seedGroups(t, db, 1)

	_, err := uc.Create(ctx, &domain.RoleCreateRequest{Name: "Editor"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, &domain.RoleCreateRequest{Name: "Editor"})
	assert.ErrorIs(t, err, domain.ErrRoleNameExists)
}

// Distinct names can collapse to the same slug; the later role keeps a
// suffixed one instead of failing.
func TestRoleUsecase_CreateSuffixesCollidingSlug(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	seedGroups(t, db, 1)

	first, err := uc.Create(ctx, &domain.RoleCreateRequest{Name: "Catalog Editor"})
	require.NoError(t, err)
	assert.Equal(t, "catalog-editor", first.Slug)

	second, err := uc.Create(ctx, &domain.RoleCreateRequest{Name: "Catalog / Editor"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "catalog-editor-"),
		"colliding slug %q must carry a suffix", second.Slug)
}

func TestRoleUsecase_UpdateReplacesMatrixExactly(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	groups := seedGroups(t, db, 2)

	role, err := uc.Create(ctx, &domain.RoleCreateRequest{
		Name:         "Editor",
		MenuGroupIDs: []string{groups[0].ID},
	})
	require.NoError(t, err)

	before, err := uc.FindByID(ctx, role.ID)
	require.NoError(t, err)
	beforeIDs := lo.Map(before.Privileges, func(p *domain.RolePrivilege, _ int) string { return p.ID })

	require.NoError(t, uc.Update(ctx, role.ID, &domain.RoleUpdateRequest{
		MenuGroupIDs: []string{groups[1].ID},
	}))

	after, err := uc.FindByID(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, after.Privileges, 2, "replacement must not leave stale rows behind")

	afterIDs := lo.Map(after.Privileges, func(p *domain.RolePrivilege, _ int) string { return p.ID })
	for _, id := range afterIDs {
		assert.NotContains(t, beforeIDs, id, "replacement mints new privilege rows")
	}

	granted := lo.Filter(after.Privileges, func(p *domain.RolePrivilege, _ int) bool { return p.Status })
	require.Len(t, granted, 1)
	assert.Equal(t, groups[1].ID, granted[0].MenuGroupID)
}

func TestRoleUsecase_UpdateSyncsUserPrivilegeSnapshots(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	groups := seedGroups(t, db, 1)

	role, err := uc.Create(ctx, &domain.RoleCreateRequest{
		Name:         "Editor",
		MenuGroupIDs: []string{groups[0].ID},
	})
	require.NoError(t, err)

	userRepo := userRepository.NewUserRepository(db)
	user := &domain.User{
		Name: "Member", Email: "member@example.com", Password: "hashed",
		RoleID: role.ID, Status: domain.StatusActive,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	require.NoError(t, uc.Update(ctx, role.ID, &domain.RoleUpdateRequest{
		MenuGroupIDs: []string{groups[0].ID},
	}))

	detail, err := uc.FindByID(ctx, role.ID)
	require.NoError(t, err)
	wantIDs := lo.Map(detail.Privileges, func(p *domain.RolePrivilege, _ int) string { return p.ID })

	got, err := userRepo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, wantIDs, []string(got.RolePrivilegeIDs),
		"user snapshot must follow the rewritten matrix")
}

func TestRoleUsecase_UpdateWithoutGroupsKeepsMatrix(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	groups := seedGroups(t, db, 1)

	role, err := uc.Create(ctx, &domain.RoleCreateRequest{
		Name:         "Editor",
		MenuGroupIDs: []string{groups[0].ID},
	})
	require.NoError(t, err)

	before, err := uc.FindByID(ctx, role.ID)
	require.NoError(t, err)

	require.NoError(t, uc.Update(ctx, role.ID, &domain.RoleUpdateRequest{
		Name: lo.ToPtr("Senior Editor"),
	}))

	after, err := uc.FindByID(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Editor", after.Role.Name)
	assert.Equal(t, "senior-editor", after.Role.Slug, "rename re-derives the slug")

	beforeIDs := lo.Map(before.Privileges, func(p *domain.RolePrivilege, _ int) string { return p.ID })
	afterIDs := lo.Map(after.Privileges, func(p *domain.RolePrivilege, _ int) string { return p.ID })
	assert.ElementsMatch(t, beforeIDs, afterIDs, "a nil group list leaves privileges untouched")
}

func TestRoleUsecase_UpdateRederivesSlugOnRename(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	seedGroups(t, db, 1)

	editor, err := uc.Create(ctx, &domain.RoleCreateRequest{Name: "Editor"})
	require.NoError(t, err)
	viewer, err := uc.Create(ctx, &domain.RoleCreateRequest{Name: "Viewer"})
	require.NoError(t, err)

	// Renaming onto another role's slug gets the suffixed value.
	require.NoError(t, uc.Update(ctx, viewer.ID, &domain.RoleUpdateRequest{Name: lo.ToPtr("Editor!")}))
	got, err := uc.FindByID(ctx, viewer.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Role.Slug, "editor-"),
		"slug %q must not shadow another role", got.Role.Slug)

	// A cosmetic rename keeps the role's own slug, no suffix.
	require.NoError(t, uc.Update(ctx, editor.ID, &domain.RoleUpdateRequest{Name: lo.ToPtr("EDITOR")}))
	got, err = uc.FindByID(ctx, editor.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", got.Role.Slug)
}

func TestRoleUsecase_PermanentDeleteRemovesPrivileges(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	seedGroups(t, db, 2)

	role, err := uc.Create(ctx, &domain.RoleCreateRequest{Name: "Short Lived"})
	require.NoError(t, err)

	require.NoError(t, uc.PermanentDelete(ctx, role.ID))

	var count int64
	require.NoError(t, db.Model(&domain.RolePrivilege{}).Where("role_id = ?", role.ID).Count(&count).Error)
	assert.Zero(t, count, "hard delete must take the privilege rows with it")
}

func TestRoleUsecase_PrivilegeTable(t *testing.T) {
	db := testDB(t)
	uc := newTestRoleUsecase(t, db)
	ctx := context.Background()
	groups := seedGroups(t, db, 2)

	rows, err := uc.PrivilegeTable(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "catalog", rows[0].MenuSlug)
	assert.Equal(t, "view", rows[0].PermissionSlug)
	assert.ElementsMatch(t,
		[]string{groups[0].ID, groups[1].ID},
		[]string{rows[0].MenuGroupID, rows[1].MenuGroupID},
	)

	// A group whose submenu went inactive drops out of the table.
	require.NoError(t, db.Model(&domain.Submenu{}).
		Where("id = ?", groups[0].SubmenuID).
		Update("status", domain.StatusInactive).Error)

	rows, err = uc.PrivilegeTable(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, groups[1].ID, rows[0].MenuGroupID)
}
