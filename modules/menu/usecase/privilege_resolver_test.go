package usecase

import (
	"context"
	"testing"

	"ecom-admin/domain"
	menuRepository "ecom-admin/modules/menu/repository"
	roleRepository "ecom-admin/modules/role/repository"
	"ecom-admin/pkg/log"

	"github.com/glebarez/sqlite"
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

func newTestResolver(t *testing.T, db *gorm.DB) domain.MenuResolver {
	t.Helper()
	return NewMenuResolver(
		roleRepository.NewRolePrivilegeRepository(db),
		menuRepository.NewMenuGroupRepository(db),
		menuRepository.NewSubmenuRepository(db),
		menuRepository.NewMenuRepository(db),
		log.MustNewDevelopmentLogger(),
	)
}

type navFixture struct {
	menu       *domain.Menu
	submenu    *domain.Submenu
	permission *domain.MenuPermission
	group      *domain.MenuGroup
	privilege  *domain.RolePrivilege
}

// seedNavChain creates one full privilege -> group -> submenu -> menu chain.
func seedNavChain(t *testing.T, db *gorm.DB, menuName, menuSlug string, sortOrder int) *navFixture {
	t.Helper()

	menu := &domain.Menu{Name: menuName, Slug: menuSlug, Icon: "bx-cog", SortOrder: sortOrder, Status: domain.StatusActive}
	require.NoError(t, db.Create(menu).Error)

	submenu := &domain.Submenu{
		Name: menuName + " List", Slug: menuSlug + "-list", Path: "/" + menuSlug,
		MainMenuID: menu.ID, SortOrder: 1, Status: domain.StatusActive,
	}
	require.NoError(t, db.Create(submenu).Error)

	permission := &domain.MenuPermission{Name: "View", Slug: "view", Status: domain.StatusActive}
	require.NoError(t, db.Create(permission).Error)

	group := &domain.MenuGroup{SubmenuID: submenu.ID, MenuPermissionID: permission.ID, Status: domain.StatusActive}
	require.NoError(t, db.Create(group).Error)

	privilege := &domain.RolePrivilege{RoleID: "role-1", MenuGroupID: group.ID, Status: true}
	require.NoError(t, db.Create(privilege).Error)

	return &navFixture{menu: menu, submenu: submenu, permission: permission, group: group, privilege: privilege}
}

func TestMenuResolver_ResolvesFullChain(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	fx := seedNavChain(t, db, "Users", "users", 2)

	menus := resolver.ResolveMenus(context.Background(), []string{fx.privilege.ID})
	require.Len(t, menus, 1)

	entry := menus[0]
	assert.Equal(t, "Users", entry.Name)
	assert.Equal(t, "users", entry.Slug)
	assert.Equal(t, "bx-cog", entry.Icon)
	assert.False(t, entry.Special)
	require.Len(t, entry.Children, 1)
	assert.Equal(t, "users-list", entry.Children[0].Slug)
	assert.Equal(t, "/users", entry.Children[0].Path)
}

func TestMenuResolver_DashboardIsSpecialLeaf(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	fx := seedNavChain(t, db, "Dashboard", domain.DashboardSlug, 0)

	menus := resolver.ResolveMenus(context.Background(), []string{fx.privilege.ID})
	require.Len(t, menus, 1)

	entry := menus[0]
	assert.True(t, entry.Special)
	assert.Equal(t, "/", entry.Path)
	assert.Empty(t, entry.Children, "dashboard never carries children")
}

func TestMenuResolver_EmptyOrMalformedPrivileges(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	seedNavChain(t, db, "Users", "users", 1)

	assert.Empty(t, resolver.ResolveMenus(context.Background(), nil))
	assert.Empty(t, resolver.ResolveMenus(context.Background(), []string{}))
	// Non-UUID values from legacy records never reach the query.
	assert.Empty(t, resolver.ResolveMenus(context.Background(), []string{"not-a-uuid", "42"}))
}

func TestMenuResolver_DisabledPrivilegeDropsOut(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	fx := seedNavChain(t, db, "Users", "users", 1)

	require.NoError(t, db.Model(fx.privilege).Update("status", false).Error)
	assert.Empty(t, resolver.ResolveMenus(context.Background(), []string{fx.privilege.ID}))
}

func TestMenuResolver_InactiveLinksDropOut(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name       string
		deactivate func(t *testing.T, db *gorm.DB, fx *navFixture)
	}{
		{"menu group", func(t *testing.T, db *gorm.DB, fx *navFixture) {
			require.NoError(t, db.Model(fx.group).Update("status", domain.StatusInactive).Error)
		}},
		{"submenu", func(t *testing.T, db *gorm.DB, fx *navFixture) {
			require.NoError(t, db.Model(fx.submenu).Update("status", domain.StatusInactive).Error)
		}},
		{"main menu", func(t *testing.T, db *gorm.DB, fx *navFixture) {
			require.NoError(t, db.Model(fx.menu).Update("status", domain.StatusInactive).Error)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db := testDB(t)
			resolver := newTestResolver(t, db)
			fx := seedNavChain(t, db, "Users", "users", 1)

			tc.deactivate(t, db, fx)
			assert.Empty(t, resolver.ResolveMenus(ctx, []string{fx.privilege.ID}))
		})
	}
}

// A granted submenu without a path would render as a dead navigation
// link, so it never becomes a child; a menu left with no routable
// children drops out entirely.
func TestMenuResolver_PathlessSubmenuIsSkipped(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	fx := seedNavChain(t, db, "Catalog", "catalog", 1)

	headless := &domain.Submenu{
		Name: "Catalog Internal", Slug: "catalog-internal", Path: "",
		MainMenuID: fx.menu.ID, SortOrder: 2, Status: domain.StatusActive,
	}
	require.NoError(t, db.Create(headless).Error)

	bare := &domain.Menu{Name: "Reports", Slug: "reports", Icon: "bx-bar-chart", SortOrder: 3, Status: domain.StatusActive}
	require.NoError(t, db.Create(bare).Error)
	bareSub := &domain.Submenu{
		Name: "Reports Internal", Slug: "reports-internal", Path: "",
		MainMenuID: bare.ID, SortOrder: 1, Status: domain.StatusActive,
	}
	require.NoError(t, db.Create(bareSub).Error)

	ids := []string{fx.privilege.ID}
	for _, sub := range []*domain.Submenu{headless, bareSub} {
		group := &domain.MenuGroup{SubmenuID: sub.ID, MenuPermissionID: fx.permission.ID, Status: domain.StatusActive}
		require.NoError(t, db.Create(group).Error)
		privilege := &domain.RolePrivilege{RoleID: "role-1", MenuGroupID: group.ID, Status: true}
		require.NoError(t, db.Create(privilege).Error)
		ids = append(ids, privilege.ID)
	}

	menus := resolver.ResolveMenus(context.Background(), ids)
	require.Len(t, menus, 1, "a menu with only pathless submenus never appears")
	assert.Equal(t, "catalog", menus[0].Slug)
	require.Len(t, menus[0].Children, 1)
	assert.Equal(t, "catalog-list", menus[0].Children[0].Slug)
}

func TestMenuResolver_DedupesChildrenAndSortsBySortOrder(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	fx := seedNavChain(t, db, "Catalog", "catalog", 5)

	// A second submenu with the same slug and path must collapse into one
	// child; a third with a lower sort order must come first.
	dup := &domain.Submenu{
		Name: "Catalog List", Slug: fx.submenu.Slug, Path: fx.submenu.Path,
		MainMenuID: fx.menu.ID, SortOrder: 9, Status: domain.StatusActive,
	}
	require.NoError(t, db.Create(dup).Error)
	early := &domain.Submenu{
		Name: "Catalog Stats", Slug: "catalog-stats", Path: "/catalog/stats",
		MainMenuID: fx.menu.ID, SortOrder: 0, Status: domain.StatusActive,
	}
	require.NoError(t, db.Create(early).Error)

	for _, sub := range []*domain.Submenu{dup, early} {
		group := &domain.MenuGroup{SubmenuID: sub.ID, MenuPermissionID: fx.permission.ID, Status: domain.StatusActive}
		require.NoError(t, db.Create(group).Error)
		privilege := &domain.RolePrivilege{RoleID: "role-1", MenuGroupID: group.ID, Status: true}
		require.NoError(t, db.Create(privilege).Error)
	}

	var privileges []*domain.RolePrivilege
	require.NoError(t, db.Find(&privileges).Error)
	ids := make([]string, 0, len(privileges))
	for _, p := range privileges {
		ids = append(ids, p.ID)
	}

	menus := resolver.ResolveMenus(context.Background(), ids)
	require.Len(t, menus, 1)
	require.Len(t, menus[0].Children, 2)
	assert.Equal(t, "catalog-stats", menus[0].Children[0].Slug)
	assert.Equal(t, "catalog-list", menus[0].Children[1].Slug)
}

func TestMenuResolver_EntriesSortedAndIdempotent(t *testing.T) {
	db := testDB(t)
	resolver := newTestResolver(t, db)
	second := seedNavChain(t, db, "Users", "users", 2)
	first := seedNavChain(t, db, "Dashboard", domain.DashboardSlug, 0)

	ids := []string{second.privilege.ID, first.privilege.ID, second.privilege.ID}

	menus := resolver.ResolveMenus(context.Background(), ids)
	require.Len(t, menus, 2)
	assert.Equal(t, domain.DashboardSlug, menus[0].Slug)
	assert.Equal(t, "users", menus[1].Slug)

	again := resolver.ResolveMenus(context.Background(), ids)
	assert.Equal(t, menus, again, "resolution must be deterministic")
}
