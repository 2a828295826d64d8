package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type MenuGroupRepository struct {
	sqlHandler *database.SQLHandler[domain.MenuGroup, domain.MenuGroupFilter]
}

func NewMenuGroupRepository(db *gorm.DB) *MenuGroupRepository {
	sqlHandler := database.NewSQLHandler[domain.MenuGroup](db, applyMenuGroupFilter)
	return &MenuGroupRepository{
		sqlHandler: sqlHandler,
	}
}

func applyMenuGroupFilter(qb *gorm.DB, filter *domain.MenuGroupFilter) *gorm.DB {
	if filter == nil {
		return qb.Where("deleted_at = 0")
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if len(filter.IDIn) > 0 {
		qb = qb.Where("id IN (?)", filter.IDIn)
	}
	if filter.SubmenuID != nil {
		qb = qb.Where("submenu_id = ?", *filter.SubmenuID)
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

func (r *MenuGroupRepository) Create(ctx context.Context, group *domain.MenuGroup) error {
	return r.sqlHandler.Create(ctx, group)
}

func (r *MenuGroupRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.MenuGroup, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *MenuGroupRepository) FindMany(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindManyOption) ([]*domain.MenuGroup, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *MenuGroupRepository) FindPage(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindPageOption) ([]*domain.MenuGroup, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *MenuGroupRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *MenuGroupRepository) Count(ctx context.Context, filter *domain.MenuGroupFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
