package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type MenuPermissionRepository struct {
	sqlHandler *database.SQLHandler[domain.MenuPermission, domain.MenuPermissionFilter]
}

func NewMenuPermissionRepository(db *gorm.DB) *MenuPermissionRepository {
	sqlHandler := database.NewSQLHandler[domain.MenuPermission](db, applyMenuPermissionFilter)
	return &MenuPermissionRepository{
		sqlHandler: sqlHandler,
	}
}

func applyMenuPermissionFilter(qb *gorm.DB, filter *domain.MenuPermissionFilter) *gorm.DB {
	if filter == nil {
		return qb.Where("deleted_at = 0")
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if len(filter.IDIn) > 0 {
		qb = qb.Where("id IN (?)", filter.IDIn)
	}
	if filter.Slug != nil {
		qb = qb.Where("slug = ?", *filter.Slug)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if filter.OnlyDeleted != nil && *filter.OnlyDeleted {
		qb = qb.Where("deleted_at > 0")
	} else if filter.IncludeDeleted == nil || !*filter.IncludeDeleted {
		qb = qb.Where("deleted_at = 0")
	}

	return qb
}

func (r *MenuPermissionRepository) Create(ctx context.Context, permission *domain.MenuPermission) error {
	return r.sqlHandler.Create(ctx, permission)
}

func (r *MenuPermissionRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.MenuPermission, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *MenuPermissionRepository) FindOne(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindOneOption) (*domain.MenuPermission, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *MenuPermissionRepository) FindMany(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindManyOption) ([]*domain.MenuPermission, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *MenuPermissionRepository) FindPage(ctx context.Context, filter *domain.MenuPermissionFilter, option *domain.FindPageOption) ([]*domain.MenuPermission, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *MenuPermissionRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}
