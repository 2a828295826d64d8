package bootstrap

import (
	"context"

	"ecom-admin/domain"
	"ecom-admin/pkg/log"

	"github.com/samber/lo"
)

// Repositories are used for existence checks only; all writes go through
// the usecases so seeded records get the same slugs, privilege matrices
// and denormalized fields as records created through the API.
type MenuFinder interface {
	FindOne(ctx context.Context, filter *domain.MenuFilter, option *domain.FindOneOption) (*domain.Menu, error)
}

type SubmenuFinder interface {
	FindOne(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindOneOption) (*domain.Submenu, error)
}

type MenuPermissionFinder interface {
	FindOne(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindOneOption) (*domain.MenuPermission, error)
}

type MenuGroupFinder interface {
	FindMany(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindManyOption) ([]*domain.MenuGroup, error)
}

type RoleFinder interface {
	FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error)
}

type UserFinder interface {
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
}

// SeedConfig carries the default system administrator credentials.
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Seeder creates the minimum records a fresh installation needs to be
// usable: the dashboard navigation chain, a super admin role with every
// menu group granted, and the system administrator account.
type Seeder struct {
	menuRepo       MenuFinder
	submenuRepo    SubmenuFinder
	permissionRepo MenuPermissionFinder
	groupRepo      MenuGroupFinder
	roleRepo       RoleFinder
	userRepo       UserFinder

	menus  domain.MenuUsecase
	roles  domain.RoleUsecase
	users  domain.UserUsecase
	config SeedConfig
	logger log.Logger
}

func NewSeeder(
	menuRepo MenuFinder,
	submenuRepo SubmenuFinder,
	permissionRepo MenuPermissionFinder,
	groupRepo MenuGroupFinder,
	roleRepo RoleFinder,
	userRepo UserFinder,
	menus domain.MenuUsecase,
	roles domain.RoleUsecase,
	users domain.UserUsecase,
	config SeedConfig,
	logger log.Logger,

) *Seeder {
	return &Seeder{
		menuRepo:       menuRepo,
		submenuRepo:    submenuRepo,
		permissionRepo: permissionRepo,
		groupRepo:      groupRepo,
		roleRepo:       roleRepo,
		userRepo:       userRepo,
		menus:          menus,
		roles:          roles,
		users:          users,
		config:         config,
		logger:         logger,
	}
}

const (
	superAdminRoleName = "Super Admin"
	superAdminRoleSlug = "super-admin"
)

// Seed is idempotent: every step checks for an existing record before
// creating one, so restarts never duplicate the defaults.
func (s *Seeder) Seed(ctx context.Context) error {
	menu, err := s.ensureDashboardMenu(ctx)
	if err != nil {
		return err
	}

	submenu, err := s.ensureDashboardSubmenu(ctx, menu.ID)
	if err != nil {
		return err
	}

	permission, err := s.ensureViewPermission(ctx)
	if err != nil {
		return err
	}

	if err := s.ensureDashboardGroup(ctx, submenu.ID, permission.ID); err != nil {
		return err
	}

	role, err := s.ensureSuperAdminRole(ctx)
	if err != nil {
		return err
	}

	return s.ensureAdminUser(ctx, role.ID)
}

func (s *Seeder) ensureDashboardMenu(ctx context.Context) (*domain.Menu, error) {
	existing, err := s.menuRepo.FindOne(ctx, &domain.MenuFilter{
		Slug: lo.ToPtr(domain.DashboardSlug),
	}, nil)
	if err == nil && existing != nil {
		return existing, nil
	}

	menu, err := s.menus.CreateMenu(ctx, &domain.MenuCreateRequest{
		Name: "Dashboard",
		Icon: "bx-home",
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seeded dashboard menu", log.String("id", menu.ID))
	return menu, nil
}

func (s *Seeder) ensureDashboardSubmenu(ctx context.Context, menuID string) (*domain.Submenu, error) {
	existing, err := s.submenuRepo.FindOne(ctx, &domain.SubmenuFilter{
		MainMenuID: &menuID,
	}, nil)
	if err == nil && existing != nil {
		return existing, nil
	}

	submenu, err := s.menus.CreateSubmenu(ctx, &domain.SubmenuCreateRequest{
		Name:       "Overview",
		Path:       "/",
		MainMenuID: menuID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seeded dashboard submenu", log.String("id", submenu.ID))
	return submenu, nil
}

func (s *Seeder) ensureViewPermission(ctx context.Context) (*domain.MenuPermission, error) {
	existing, err := s.permissionRepo.FindOne(ctx, &domain.MenuPermissionFilter{
		Slug: lo.ToPtr("view"),
	}, nil)
	if err == nil && existing != nil {
		return existing, nil
	}

	permission, err := s.menus.CreateMenuPermission(ctx, &domain.MenuPermissionCreateRequest{
		Name: "View",
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seeded view permission", log.String("id", permission.ID))
	return permission, nil
}

func (s *Seeder) ensureDashboardGroup(ctx context.Context, submenuID, permissionID string) error {
	existing, err := s.groupRepo.FindMany(ctx, &domain.MenuGroupFilter{
		SubmenuID: &submenuID,
	}, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	group, err := s.menus.CreateMenuGroup(ctx, &domain.MenuGroupCreateRequest{
		SubmenuID:        submenuID,
		MenuPermissionID: permissionID,
	})
	if err != nil {
		return err
	}

	s.logger.Info("Seeded dashboard menu group", log.String("id", group.ID))
	return nil
}

// ensureSuperAdminRole grants every active menu group, so the seeded role
// always sees the full navigation tree.
func (s *Seeder) ensureSuperAdminRole(ctx context.Context) (*domain.Role, error) {
	existing, err := s.roleRepo.FindOne(ctx, &domain.RoleFilter{
		Slug: lo.ToPtr(superAdminRoleSlug),
	}, nil)
	if err == nil && existing != nil {
		return existing, nil
	}

	groups, err := s.groupRepo.FindMany(ctx, &domain.MenuGroupFilter{
		Status: lo.ToPtr(string(domain.StatusActive)),
	}, nil)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.Create(ctx, &domain.RoleCreateRequest{
		Name: superAdminRoleName,
		MenuGroupIDs: lo.Map(groups, func(g *domain.MenuGroup, _ int) string {
			return g.ID
		}),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seeded super admin role", log.String("id", role.ID))
	return role, nil
}

func (s *Seeder) ensureAdminUser(ctx context.Context, roleID string) error {
	if s.config.AdminEmail == "" || s.config.AdminPassword == "" {
		s.logger.Warn("System admin defaults not configured, skipping admin user seed")
		return nil
	}

	existing, err := s.userRepo.FindOne(ctx, &domain.UserFilter{
		Email: &s.config.AdminEmail,
	}, nil)
	if err == nil && existing != nil {
		return nil
	}

	user, err := s.users.Create(ctx, &domain.UserCreateRequest{
		Name:     s.config.AdminName,
		Email:    s.config.AdminEmail,
		Password: s.config.AdminPassword,
		RoleID:   roleID,
	})
	if err != nil {
		return err
	}

	s.logger.Info("Seeded system admin user", log.String("id", user.ID))
	return nil
}
