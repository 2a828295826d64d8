package usecase

import (
	"context"
	"strings"
	"testing"

	"ecom-admin/domain"
	menuRepository "ecom-admin/modules/menu/repository"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertDetailID(t *testing.T, err error, wantID string) {
	t.Helper()
	require.Error(t, err)
	var dErr *domain.DetailedError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, wantID, dErr.IDField)
}

func newTestMenuUsecase(t *testing.T, db *gorm.DB) domain.MenuUsecase {
	t.Helper()
	return NewMenuUsecase(
		menuRepository.NewMenuRepository(db),
		menuRepository.NewSubmenuRepository(db),
		menuRepository.NewMenuPermissionRepository(db),
		menuRepository.NewMenuGroupRepository(db),
	)
}

func TestMenuUsecase_CreateMenu(t *testing.T) {
	uc := newTestMenuUsecase(t, testDB(t))
	ctx := context.Background()

	menu, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "User Management"})
	require.NoError(t, err)
	assert.Equal(t, "user-management", menu.Slug)
	assert.Equal(t, domain.DefaultMenuIcon, menu.Icon, "missing icon falls back to the default")
	assert.Equal(t, domain.StatusActive, menu.Status)

	withIcon, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "Orders", Icon: "bx-cart"})
	require.NoError(t, err)
	assert.Equal(t, "bx-cart", withIcon.Icon)
}

func TestMenuUsecase_SlugCollisionGetsSuffix(t *testing.T) {
	uc := newTestMenuUsecase(t, testDB(t))
	ctx := context.Background()

	first, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "Reports"})
	require.NoError(t, err)
	second, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "Reports"})
	require.NoError(t, err)

	assert.Equal(t, "reports", first.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "reports-"))
	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestMenuUsecase_CreateSubmenuRequiresParent(t *testing.T) {
	uc := newTestMenuUsecase(t, testDB(t))
	ctx := context.Background()

	_, err := uc.CreateSubmenu(ctx, &domain.SubmenuCreateRequest{
		Name:       "Orphan",
		MainMenuID: "no-such-menu",
	})
	assertDetailID(t, err, domain.ErrMenuNotFound.IDField)

	menu, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "Catalog"})
	require.NoError(t, err)

	submenu, err := uc.CreateSubmenu(ctx, &domain.SubmenuCreateRequest{
		Name:       "Products",
		Path:       "/catalog/products",
		MainMenuID: menu.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "products", submenu.Slug)
	assert.Equal(t, menu.ID, submenu.MainMenuID)
}

func TestMenuUsecase_CreateMenuGroupValidatesLinks(t *testing.T) {
	uc := newTestMenuUsecase(t, testDB(t))
	ctx := context.Background()

	menu, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "Catalog"})
	require.NoError(t, err)
	submenu, err := uc.CreateSubmenu(ctx, &domain.SubmenuCreateRequest{
		Name: "Products", Path: "/catalog/products", MainMenuID: menu.ID,
	})
	require.NoError(t, err)
	permission, err := uc.CreateMenuPermission(ctx, &domain.MenuPermissionCreateRequest{Name: "View"})
	require.NoError(t, err)

	_, err = uc.CreateMenuGroup(ctx, &domain.MenuGroupCreateRequest{
		SubmenuID: "missing", MenuPermissionID: permission.ID,
	})
	assertDetailID(t, err, domain.ErrMenuNotFound.IDField)

	_, err = uc.CreateMenuGroup(ctx, &domain.MenuGroupCreateRequest{
		SubmenuID: submenu.ID, MenuPermissionID: "missing",
	})
	assertDetailID(t, err, domain.ErrMenuNotFound.IDField)

	group, err := uc.CreateMenuGroup(ctx, &domain.MenuGroupCreateRequest{
		SubmenuID: submenu.ID, MenuPermissionID: permission.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, group.Status)
}

func TestMenuUsecase_ToggleDeleteRestore(t *testing.T) {
	db := testDB(t)
	uc := newTestMenuUsecase(t, db)
	ctx := context.Background()

	menu, err := uc.CreateMenu(ctx, &domain.MenuCreateRequest{Name: "Settings"})
	require.NoError(t, err)

	require.NoError(t, uc.ToggleMenuStatus(ctx, menu.ID))
	menus, _, err := uc.FindMenuPage(ctx, &domain.MenuFilter{ID: &menu.ID}, &domain.FindPageOption{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, domain.StatusInactive, menus[0].Status)

	require.NoError(t, uc.DeleteMenu(ctx, menu.ID))
	assert.ErrorIs(t, uc.DeleteMenu(ctx, menu.ID), domain.ErrMenuNotFound)

	// Restore only works on soft-deleted records.
	require.NoError(t, uc.RestoreMenu(ctx, menu.ID))
	assert.ErrorIs(t, uc.RestoreMenu(ctx, menu.ID), domain.ErrMenuNotFound)

	require.NoError(t, uc.DeleteMenu(ctx, menu.ID))
	require.NoError(t, uc.PermanentDeleteMenu(ctx, menu.ID))

	_, err = menuRepository.NewMenuRepository(db).FindOne(ctx, &domain.MenuFilter{
		ID:             &menu.ID,
		IncludeDeleted: lo.ToPtr(true),
	}, nil)
	assert.Error(t, err, "hard delete removes the row entirely")
}
