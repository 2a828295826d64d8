package usecase

import (
	"context"
	"errors"

	"ecom-admin/domain"

	"github.com/samber/lo"
)

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error)
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
	FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) error
	DeleteHard(ctx context.Context, userID string) error
}

type RoleRepository interface {
	FindByID(ctx context.Context, roleID string, option *domain.FindOneOption) (*domain.Role, error)
}

type RolePrivilegeRepository interface {
	FindMany(ctx context.Context, filter *domain.RolePrivilegeFilter, option *domain.FindManyOption) ([]*domain.RolePrivilege, error)
}

type userUsecase struct {
	repo          UserRepository
	roleRepo      RoleRepository
	privilegeRepo RolePrivilegeRepository
	hasher        Hasher
}

func NewUserUsecase(
	repo UserRepository,
	roleRepo RoleRepository,
	privilegeRepo RolePrivilegeRepository,
	hasher Hasher,

) domain.UserUsecase {
	return &userUsecase{
		repo:          repo,
		roleRepo:      roleRepo,
		privilegeRepo: privilegeRepo,
		hasher:        hasher,
	}
}

// capturePrivileges snapshots the role's privilege row ids onto the user, so
// menu resolution at login never has to touch the role tables.
func (u *userUsecase) capturePrivileges(ctx context.Context, user *domain.User, roleID string) error {
	role, err := u.roleRepo.FindByID(ctx, roleID, nil)
	if err != nil || role == nil {
		return domain.ErrRoleNotFound.WithWrap(err)
	}

	privileges, err := u.privilegeRepo.FindMany(ctx, &domain.RolePrivilegeFilter{RoleID: &roleID}, nil)
	if err != nil {
		return domain.ErrInfrastructure.WithWrap(err)
	}

	user.Role = role.Name
	user.RoleID = role.ID
	user.RolePrivilegeIDs = domain.NewStringSlice(lo.Map(privileges,
		func(p *domain.RolePrivilege, _ int) string { return p.ID }))
	return nil
}

func (u *userUsecase) Create(ctx context.Context, req *domain.UserCreateRequest) (*domain.User, error) {
	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Status:   domain.StatusActive,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingByEmail, err := u.repo.FindOne(ctx, &domain.UserFilter{
		Email: &user.Email,
	}, nil)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	if existingByEmail != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	if err := u.capturePrivileges(ctx, user, req.RoleID); err != nil {
		return nil, err
	}

	hashedPassword, err := u.hasher.Hash(user.Password)
	if err != nil {
		return nil, domain.ErrPasswordHashFailed.WithWrap(err)
	}

	user.Password = hashedPassword
	if err := u.repo.Create(ctx, user); err != nil {
		return nil, domain.ErrInfrastructure.WithWrap(err)
	}
	return user.Sanitize(), nil
}

func (u *userUsecase) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.repo.FindByID(ctx, userID, nil)
	if err != nil || user == nil {
		return nil, domain.ErrUserNotFound.WithWrap(err)
	}
	return user.Sanitize(), nil
}

func (u *userUsecase) FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error) {
	users, pagination, err := u.repo.FindPage(ctx, filter, option)
	if err != nil {
		return nil, nil, err
	}
	return lo.Map(users, func(user *domain.User, _ int) *domain.User {
		return user.Sanitize()
	}), pagination, nil
}

func (u *userUsecase) Update(ctx context.Context, userID string, req *domain.UserUpdateRequest) error {
	user, err := u.repo.FindByID(ctx, userID, nil)
	if err != nil || user == nil {
		return domain.ErrUserNotFound.WithWrap(err)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := u.repo.FindOne(ctx, &domain.UserFilter{
			Email: req.Email,
			IDNe:  &userID,
		}, nil)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrInfrastructure.WithWrap(err)
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := u.hasher.Hash(*req.Password)
		if err != nil {
			return domain.ErrPasswordHashFailed.WithWrap(err)
		}
		user.Password = hashed
	}
	if req.RoleID != nil && *req.RoleID != user.RoleID {
		if err := u.capturePrivileges(ctx, user, *req.RoleID); err != nil {
			return err
		}
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := user.Validate(); err != nil {
		return err
	}
	return u.repo.Update(ctx, user)
}

func (u *userUsecase) ToggleStatus(ctx context.Context, userID string) error {
	user, err := u.repo.FindByID(ctx, userID, nil)
	if err != nil || user == nil {
		return domain.ErrUserNotFound.WithWrap(err)
	}
	user.Status = user.Status.Toggle()
	return u.repo.Update(ctx, user)
}

func (u *userUsecase) Delete(ctx context.Context, userID string) error {
	user, err := u.repo.FindByID(ctx, userID, nil)
	if err != nil || user == nil {
		return domain.ErrUserNotFound.WithWrap(err)
	}
	return u.repo.Delete(ctx, userID)
}

func (u *userUsecase) Restore(ctx context.Context, userID string) error {
	user, err := u.repo.FindOne(ctx, &domain.UserFilter{
		ID:          &userID,
		OnlyDeleted: lo.ToPtr(true),
	}, nil)
	if err != nil || user == nil {
		return domain.ErrUserNotFound.WithWrap(err)
	}
	return u.repo.Restore(ctx, userID)
}

func (u *userUsecase) PermanentDelete(ctx context.Context, userID string) error {
	user, err := u.repo.FindOne(ctx, &domain.UserFilter{
		ID:             &userID,
		IncludeDeleted: lo.ToPtr(true),
	}, nil)
	if err != nil || user == nil {
		return domain.ErrUserNotFound.WithWrap(err)
	}
	return u.repo.DeleteHard(ctx, userID)
}
