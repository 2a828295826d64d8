package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	sqlHandler *database.SQLHandler[domain.User, domain.UserFilter]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	sqlHandler := database.NewSQLHandler[domain.User](db, applyFilter)
	return &UserRepository{
		sqlHandler: sqlHandler,
	}
}

var userSearchableFields = map[string]string{
	"name":  "name",
	"email": "email",
}

func applyFilter(qb *gorm.DB, filter *domain.UserFilter) *gorm.DB {
	if filter == nil {
		return qb.Where("deleted_at = 0")
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if filter.Email != nil {
		// Email identity is case-insensitive; stored casing is preserved.
		qb = qb.Where("LOWER(email) = LOWER(?)", *filter.Email)
	}
	if filter.RoleID != nil {
		qb = qb.Where("role_id = ?", *filter.RoleID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if filter.ResetToken != nil {
		qb = qb.Where("reset_password_token = ?", *filter.ResetToken)
	}
	if filter.SearchTerm != nil {
		qb = database.ApplySearch(qb, *filter.SearchTerm, filter.SearchFields, userSearchableFields)
	}
	if filter.OnlyDeleted != nil && *filter.OnlyDeleted {
		qb = qb.Where("deleted_at > 0")
	} else if filter.IncludeDeleted == nil || !*filter.IncludeDeleted {
		qb = qb.Where("deleted_at = 0")
	}

	return qb
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.sqlHandler.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error) {
	return r.sqlHandler.FindByID(ctx, userID, option)
}

func (r *UserRepository) FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *UserRepository) FindMany(ctx context.Context, filter *domain.UserFilter, option *domain.FindManyOption) ([]*domain.User, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *UserRepository) FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.sqlHandler.Update(ctx, user)
}

func (r *UserRepository) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	return r.sqlHandler.UpdateFields(ctx, userID, fields)
}

// SyncRolePrivilegeIDs rewrites the denormalized privilege list for every
// user holding the role, after the role's matrix changed.
func (r *UserRepository) SyncRolePrivilegeIDs(ctx context.Context, roleID string, privilegeIDs domain.StringSlice) error {
	return r.sqlHandler.UpdateMany(ctx, &domain.UserFilter{RoleID: &roleID}, map[string]any{
		"role_privilege_ids": privilegeIDs,
	})
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	return r.sqlHandler.DeleteByID(ctx, userID)
}

func (r *UserRepository) Restore(ctx context.Context, userID string) error {
	return r.sqlHandler.RestoreByID(ctx, userID)
}

func (r *UserRepository) DeleteHard(ctx context.Context, userID string) error {
	return r.sqlHandler.DeleteHardByID(ctx, userID)
}

func (r *UserRepository) Count(ctx context.Context, filter *domain.UserFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
