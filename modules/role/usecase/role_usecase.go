package usecase

import (
	"context"
	"sort"

	"ecom-admin/common"
	"ecom-admin/domain"

	"github.com/samber/lo"
)

type RoleRepository interface {
	CreateWithPrivileges(ctx context.Context, role *domain.Role, privileges []*domain.RolePrivilege) error
	ReplacePrivileges(ctx context.Context, roleID string, privileges []*domain.RolePrivilege) error
	FindByID(ctx context.Context, roleID string, option *domain.FindOneOption) (*domain.Role, error)
	FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error)
	FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, roleID string) error
	Restore(ctx context.Context, roleID string) error
	DeleteHard(ctx context.Context, roleID string) error
}

type RolePrivilegeRepository interface {
	FindMany(ctx context.Context, filter *domain.RolePrivilegeFilter, option *domain.FindManyOption) ([]*domain.RolePrivilege, error)
}

type MenuGroupRepository interface {
	FindMany(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindManyOption) ([]*domain.MenuGroup, error)
}

type SubmenuRepository interface {
	FindMany(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindManyOption) ([]*domain.Submenu, error)
}

type MenuRepository interface {
	FindMany(ctx context.Context, filter *domain.MenuFilter, option *domain.FindManyOption) ([]*domain.Menu, error)
}

type MenuPermissionRepository interface {
	FindMany(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindManyOption) ([]*domain.MenuPermission, error)
}

type UserRepository interface {
	SyncRolePrivilegeIDs(ctx context.Context, roleID string, privilegeIDs domain.StringSlice) error
}

type roleUsecase struct {
	roleRepo       RoleRepository
	privilegeRepo  RolePrivilegeRepository
	groupRepo      MenuGroupRepository
	submenuRepo    SubmenuRepository
	menuRepo       MenuRepository
	permissionRepo MenuPermissionRepository
	userRepo       UserRepository
}

func NewRoleUsecase(
	roleRepo RoleRepository,
	privilegeRepo RolePrivilegeRepository,
	groupRepo MenuGroupRepository,
	submenuRepo SubmenuRepository,
	menuRepo MenuRepository,
	permissionRepo MenuPermissionRepository,
	userRepo UserRepository,

) domain.RoleUsecase {
	return &roleUsecase{
		roleRepo:       roleRepo,
		privilegeRepo:  privilegeRepo,
		groupRepo:      groupRepo,
		submenuRepo:    submenuRepo,
		menuRepo:       menuRepo,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
	}
}

// buildMatrix produces one privilege row per active menu group. Granted
// groups get an enabled row, every other group a disabled one, so the matrix
// is always complete.
func (u *roleUsecase) buildMatrix(ctx context.Context, grantedGroupIDs []string) ([]*domain.RolePrivilege, error) {
	groups, err := u.groupRepo.FindMany(ctx, &domain.MenuGroupFilter{
		Status: lo.ToPtr(string(domain.StatusActive)),
	}, nil)
	if err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}

	privileges := make([]*domain.RolePrivilege, 0, len(groups))
	for _, group := range groups {
		privileges = append(privileges, &domain.RolePrivilege{
			MenuGroupID: group.ID,
			Status:      lo.Contains(grantedGroupIDs, group.ID),
		})
	}
	return privileges, nil
}

// roleSlug derives the slug for name, suffixing it when another role
// already holds the derived value. excludeRoleID keeps a rename from
// colliding with the role's own current slug.
func (u *roleUsecase) roleSlug(ctx context.Context, name, excludeRoleID string) string {
	slug := common.Slugify(name)
	filter := &domain.RoleFilter{Slug: &slug}
	if excludeRoleID != "" {
		filter.IDNe = &excludeRoleID
	}
	existing, err := u.roleRepo.FindOne(ctx, filter, nil)
	if err == nil && existing != nil {
		return common.DedupeSlug(slug)
	}
	return slug
}

func (u *roleUsecase) Create(ctx context.Context, req *domain.RoleCreateRequest) (*domain.Role, error) {
	existing, err := u.roleRepo.FindOne(ctx, &domain.RoleFilter{Name: &req.Name}, nil)
	if err != nil && !common.IsRecordNotFound(err) {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	if existing != nil {
		return nil, domain.ErrRoleNameExists
	}

	role := &domain.Role{
		Name:   req.Name,
		Slug:   u.roleSlug(ctx, req.Name, ""),
		Status: domain.StatusActive,
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	privileges, err := u.buildMatrix(ctx, req.MenuGroupIDs)
	if err != nil {
		return nil, err
	}
	if err := u.roleRepo.CreateWithPrivileges(ctx, role, privileges); err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return role, nil
}

func (u *roleUsecase) FindByID(ctx context.Context, roleID string) (*domain.RoleDetail, error) {
	role, err := u.roleRepo.FindByID(ctx, roleID, nil)
	if err != nil || role == nil {
		return nil, domain.ErrRoleNotFound.WithWrap(err)
	}
	privileges, err := u.privilegeRepo.FindMany(ctx, &domain.RolePrivilegeFilter{RoleID: &roleID}, nil)
	if err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return &domain.RoleDetail{Role: role, Privileges: privileges}, nil
}

func (u *roleUsecase) FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error) {
	return u.roleRepo.FindPage(ctx, filter, option)
}

func (u *roleUsecase) Update(ctx context.Context, roleID string, req *domain.RoleUpdateRequest) error {
	role, err := u.roleRepo.FindByID(ctx, roleID, nil)
	if err != nil || role == nil {
		return domain.ErrRoleNotFound.WithWrap(err)
	}

	if req.Name != nil && *req.Name != role.Name {
		existing, err := u.roleRepo.FindOne(ctx, &domain.RoleFilter{
			Name: req.Name,
			IDNe: &roleID,
		}, nil)
		if err != nil && !common.IsRecordNotFound(err) {
			return domain.ErrInfrastructure.WithWrap(err)
		}
		if existing != nil {
			return domain.ErrRoleNameExists
		}
		role.Name = *req.Name
		role.Slug = u.roleSlug(ctx, *req.Name, roleID)
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return domain.ErrRoleValidationFailed.WithError("status must be active or inactive")
		}
		role.Status = *req.Status
	}
	if err := u.roleRepo.Update(ctx, role); err != nil {
		return domain.ErrInfrastructure.WithWrap(err)
	}

	if req.MenuGroupIDs == nil {
		return nil
	}

	privileges, err := u.buildMatrix(ctx, req.MenuGroupIDs)
	if err != nil {
		return err
	}
	if err := u.roleRepo.ReplacePrivileges(ctx, roleID, privileges); err != nil {
		return domain.ErrInfrastructure.WithWrap(err)
	}

	// The rewrite minted new privilege row ids; push them into the
	// denormalized copy every user of this role carries.
	ids := lo.Map(privileges, func(p *domain.RolePrivilege, _ int) string { return p.ID })
	if err := u.userRepo.SyncRolePrivilegeIDs(ctx, roleID, domain.NewStringSlice(ids)); err != nil {
		return domain.ErrInfrastructure.WithWrap(err)
	}
	return nil
}

func (u *roleUsecase) ToggleStatus(ctx context.Context, roleID string) error {
	role, err := u.roleRepo.FindByID(ctx, roleID, nil)
	if err != nil || role == nil {
		return domain.ErrRoleNotFound.WithWrap(err)
	}
	role.Status = role.Status.Toggle()
	return u.roleRepo.Update(ctx, role)
}

func (u *roleUsecase) Delete(ctx context.Context, roleID string) error {
	role, err := u.roleRepo.FindByID(ctx, roleID, nil)
	if err != nil || role == nil {
		return domain.ErrRoleNotFound.WithWrap(err)
	}
	return u.roleRepo.Delete(ctx, roleID)
}

func (u *roleUsecase) Restore(ctx context.Context, roleID string) error {
	role, err := u.roleRepo.FindOne(ctx, &domain.RoleFilter{
		ID:          &roleID,
		OnlyDeleted: lo.ToPtr(true),
	}, nil)
	if err != nil || role == nil {
		return domain.ErrRoleNotFound.WithWrap(err)
	}
	return u.roleRepo.Restore(ctx, roleID)
}

func (u *roleUsecase) PermanentDelete(ctx context.Context, roleID string) error {
	role, err := u.roleRepo.FindOne(ctx, &domain.RoleFilter{
		ID:             &roleID,
		IncludeDeleted: lo.ToPtr(true),
	}, nil)
	if err != nil || role == nil {
		return domain.ErrRoleNotFound.WithWrap(err)
	}
	return u.roleRepo.DeleteHard(ctx, roleID)
}

// PrivilegeTable returns the grantable menu groups joined with their submenu,
// main menu and permission, for rendering the role editing matrix.
func (u *roleUsecase) PrivilegeTable(ctx context.Context) ([]*domain.PrivilegeTableRow, error) {
	active := lo.ToPtr(string(domain.StatusActive))

	groups, err := u.groupRepo.FindMany(ctx, &domain.MenuGroupFilter{Status: active}, nil)
	if err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	if len(groups) == 0 {
		return []*domain.PrivilegeTableRow{}, nil
	}

	submenuIDs := lo.Uniq(lo.Map(groups, func(g *domain.MenuGroup, _ int) string { return g.SubmenuID }))
	submenus, err := u.submenuRepo.FindMany(ctx, &domain.SubmenuFilter{IDIn: submenuIDs, Status: active}, nil)
	if err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	submenuByID := lo.KeyBy(submenus, func(s *domain.Submenu) string { return s.ID })

	menuIDs := lo.Uniq(lo.Map(submenus, func(s *domain.Submenu, _ int) string { return s.MainMenuID }))
	menus, err := u.menuRepo.FindMany(ctx, &domain.MenuFilter{IDIn: menuIDs, Status: active}, nil)
	if err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	menuByID := lo.KeyBy(menus, func(m *domain.Menu) string { return m.ID })

	permissionIDs := lo.Uniq(lo.Map(groups, func(g *domain.MenuGroup, _ int) string { return g.MenuPermissionID }))
	permissions, err := u.permissionRepo.FindMany(ctx, &domain.MenuPermissionFilter{IDIn: permissionIDs, Status: active}, nil)
	if err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	permissionByID := lo.KeyBy(permissions, func(p *domain.MenuPermission) string { return p.ID })

	rows := make([]*domain.PrivilegeTableRow, 0, len(groups))
	for _, group := range groups {
		submenu, ok := submenuByID[group.SubmenuID]
		if !ok {
			continue
		}
		menu, ok := menuByID[submenu.MainMenuID]
		if !ok {
			continue
		}
		permission, ok := permissionByID[group.MenuPermissionID]
		if !ok {
			continue
		}
		rows = append(rows, &domain.PrivilegeTableRow{
			MenuGroupID:    group.ID,
			MenuName:       menu.Name,
			MenuSlug:       menu.Slug,
			SubmenuName:    submenu.Name,
			SubmenuSlug:    submenu.Slug,
			SubmenuPath:    submenu.Path,
			PermissionName: permission.Name,
			PermissionSlug: permission.Slug,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MenuSlug != rows[j].MenuSlug {
			return rows[i].MenuSlug < rows[j].MenuSlug
		}
		return rows[i].SubmenuSlug < rows[j].SubmenuSlug
	})
	return rows, nil
}
