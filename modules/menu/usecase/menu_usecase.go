package usecase

import (
	"context"

	"ecom-admin/common"
	"ecom-admin/domain"

	"github.com/samber/lo"
)

type MenuRepository interface {
	MenuReader
	Create(ctx context.Context, menu *domain.Menu) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Menu, error)
	FindOne(ctx context.Context, filter *domain.MenuFilter, option *domain.FindOneOption) (*domain.Menu, error)
	FindPage(ctx context.Context, filter *domain.MenuFilter, option *domain.FindPageOption) ([]*domain.Menu, *domain.Pagination, error)
	Update(ctx context.Context, menu *domain.Menu) error
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	DeleteHard(ctx context.Context, id string) error
}

type SubmenuRepository interface {
	SubmenuReader
	Create(ctx context.Context, submenu *domain.Submenu) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Submenu, error)
	FindOne(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindOneOption) (*domain.Submenu, error)
	FindPage(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindPageOption) ([]*domain.Submenu, *domain.Pagination, error)
	Update(ctx context.Context, submenu *domain.Submenu) error
	Delete(ctx context.Context, id string) error
}

type MenuPermissionRepository interface {
	Create(ctx context.Context, permission *domain.MenuPermission) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.MenuPermission, error)
	FindOne(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindOneOption) (*domain.MenuPermission, error)
	FindPage(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindPageOption) ([]*domain.MenuPermission, *domain.Pagination, error)
	Delete(ctx context.Context, id string) error
}

type MenuGroupRepository interface {
	MenuGroupReader
	Create(ctx context.Context, group *domain.MenuGroup) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.MenuGroup, error)
	FindPage(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindPageOption) ([]*domain.MenuGroup, *domain.Pagination, error)
	Delete(ctx context.Context, id string) error
}

type menuUsecase struct {
	menuRepo       MenuRepository
	submenuRepo    SubmenuRepository
	permissionRepo MenuPermissionRepository
	groupRepo      MenuGroupRepository
}

func NewMenuUsecase(
	menuRepo MenuRepository,
	submenuRepo SubmenuRepository,
	permissionRepo MenuPermissionRepository,
	groupRepo MenuGroupRepository,

) domain.MenuUsecase {
	return &menuUsecase{
		menuRepo:       menuRepo,
		submenuRepo:    submenuRepo,
		permissionRepo: permissionRepo,
		groupRepo:      groupRepo,
	}
}

// menuSlug derives a slug from the name, appending a timestamp when the
// derived slug is already taken.
func (u *menuUsecase) menuSlug(ctx context.Context, name string) string {
	slug := common.Slugify(name)
	existing, err := u.menuRepo.FindOne(ctx, &domain.MenuFilter{Slug: &slug}, nil)
	if err == nil && existing != nil {
		return common.DedupeSlug(slug)
	}
	return slug
}

func (u *menuUsecase) CreateMenu(ctx context.Context, req *domain.MenuCreateRequest) (*domain.Menu, error) {
	menu := &domain.Menu{
		Name:      req.Name,
		Slug:      u.menuSlug(ctx, req.Name),
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		Status:    domain.StatusActive,
	}
	if menu.Icon == "" {
		menu.Icon = domain.DefaultMenuIcon
	}
	if err := u.menuRepo.Create(ctx, menu); err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return menu, nil
}

func (u *menuUsecase) UpdateMenu(ctx context.Context, id string, req *domain.MenuUpdateRequest) error {
	menu, err := u.menuRepo.FindByID(ctx, id, nil)
	if err != nil || menu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Icon != nil {
		menu.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		menu.SortOrder = *req.SortOrder
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return domain.ErrMenuValidationFailed.WithError("status must be active or inactive")
		}
		menu.Status = *req.Status
	}
	return u.menuRepo.Update(ctx, menu)
}

func (u *menuUsecase) FindMenuPage(ctx context.Context, filter *domain.MenuFilter, option *domain.FindPageOption) ([]*domain.Menu, *domain.Pagination, error) {
	return u.menuRepo.FindPage(ctx, filter, option)
}

func (u *menuUsecase) ToggleMenuStatus(ctx context.Context, id string) error {
	menu, err := u.menuRepo.FindByID(ctx, id, nil)
	if err != nil || menu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	menu.Status = menu.Status.Toggle()
	return u.menuRepo.Update(ctx, menu)
}

func (u *menuUsecase) DeleteMenu(ctx context.Context, id string) error {
	menu, err := u.menuRepo.FindByID(ctx, id, nil)
	if err != nil || menu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	return u.menuRepo.Delete(ctx, id)
}

func (u *menuUsecase) RestoreMenu(ctx context.Context, id string) error {
	menu, err := u.menuRepo.FindOne(ctx, &domain.MenuFilter{
		ID:          &id,
		OnlyDeleted: lo.ToPtr(true),
	}, nil)
	if err != nil || menu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	return u.menuRepo.Restore(ctx, id)
}

func (u *menuUsecase) PermanentDeleteMenu(ctx context.Context, id string) error {
	menu, err := u.menuRepo.FindOne(ctx, &domain.MenuFilter{
		ID:             &id,
		IncludeDeleted: lo.ToPtr(true),
	}, nil)
	if err != nil || menu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	return u.menuRepo.DeleteHard(ctx, id)
}

func (u *menuUsecase) CreateSubmenu(ctx context.Context, req *domain.SubmenuCreateRequest) (*domain.Submenu, error) {
	parent, err := u.menuRepo.FindByID(ctx, req.MainMenuID, nil)
	if err != nil || parent == nil {
		return nil, domain.ErrMenuNotFound.WithError("main menu not found")
	}

	slug := common.Slugify(req.Name)
	existing, err := u.submenuRepo.FindOne(ctx, &domain.SubmenuFilter{Slug: &slug}, nil)
	if err == nil && existing != nil {
		slug = common.DedupeSlug(slug)
	}

	submenu := &domain.Submenu{
		Name:       req.Name,
		Slug:       slug,
		Path:       req.Path,
		MainMenuID: req.MainMenuID,
		SortOrder:  req.SortOrder,
		Status:     domain.StatusActive,
	}
	if err := u.submenuRepo.Create(ctx, submenu); err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return submenu, nil
}

func (u *menuUsecase) UpdateSubmenu(ctx context.Context, id string, req *domain.SubmenuUpdateRequest) error {
	submenu, err := u.submenuRepo.FindByID(ctx, id, nil)
	if err != nil || submenu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	if req.Name != nil {
		submenu.Name = *req.Name
	}
	if req.Path != nil {
		submenu.Path = *req.Path
	}
	if req.SortOrder != nil {
		submenu.SortOrder = *req.SortOrder
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return domain.ErrMenuValidationFailed.WithError("status must be active or inactive")
		}
		submenu.Status = *req.Status
	}
	return u.submenuRepo.Update(ctx, submenu)
}

func (u *menuUsecase) FindSubmenuPage(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindPageOption) ([]*domain.Submenu, *domain.Pagination, error) {
	return u.submenuRepo.FindPage(ctx, filter, option)
}

func (u *menuUsecase) DeleteSubmenu(ctx context.Context, id string) error {
	submenu, err := u.submenuRepo.FindByID(ctx, id, nil)
	if err != nil || submenu == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	return u.submenuRepo.Delete(ctx, id)
}

func (u *menuUsecase) CreateMenuPermission(ctx context.Context, req *domain.MenuPermissionCreateRequest) (*domain.MenuPermission, error) {
	slug := common.Slugify(req.Name)
	existing, err := u.permissionRepo.FindOne(ctx, &domain.MenuPermissionFilter{Slug: &slug}, nil)
	if err == nil && existing != nil {
		slug = common.DedupeSlug(slug)
	}

	permission := &domain.MenuPermission{
		Name:   req.Name,
		Slug:   slug,
		Status: domain.StatusActive,
	}
	if err := u.permissionRepo.Create(ctx, permission); err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return permission, nil
}

func (u *menuUsecase) FindMenuPermissionPage(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindPageOption) ([]*domain.MenuPermission, *domain.Pagination, error) {
	return u.permissionRepo.FindPage(ctx, filter, option)
}

func (u *menuUsecase) DeleteMenuPermission(ctx context.Context, id string) error {
	permission, err := u.permissionRepo.FindByID(ctx, id, nil)
	if err != nil || permission == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	return u.permissionRepo.Delete(ctx, id)
}

func (u *menuUsecase) CreateMenuGroup(ctx context.Context, req *domain.MenuGroupCreateRequest) (*domain.MenuGroup, error) {
	submenu, err := u.submenuRepo.FindByID(ctx, req.SubmenuID, nil)
	if err != nil || submenu == nil {
		return nil, domain.ErrMenuNotFound.WithError("submenu not found")
	}
	permission, err := u.permissionRepo.FindByID(ctx, req.MenuPermissionID, nil)
	if err != nil || permission == nil {
		return nil, domain.ErrMenuNotFound.WithError("menu permission not found")
	}

	group := &domain.MenuGroup{
		SubmenuID:        req.SubmenuID,
		MenuPermissionID: req.MenuPermissionID,
		Status:           domain.StatusActive,
	}
	if err := u.groupRepo.Create(ctx, group); err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return group, nil
}

func (u *menuUsecase) FindMenuGroupPage(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindPageOption) ([]*domain.MenuGroup, *domain.Pagination, error) {
	return u.groupRepo.FindPage(ctx, filter, option)
}

func (u *menuUsecase) DeleteMenuGroup(ctx context.Context, id string) error {
	group, err := u.groupRepo.FindByID(ctx, id, nil)
	if err != nil || group == nil {
		return domain.ErrMenuNotFound.WithWrap(err)
	}
	return u.groupRepo.Delete(ctx, id)
}
