package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type MenuRepository struct {
	sqlHandler *database.SQLHandler[domain.Menu, domain.MenuFilter]
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	sqlHandler := database.NewSQLHandler[domain.Menu](db, applyMenuFilter)
	return &MenuRepository{
		sqlHandler: sqlHandler,
	}
}

func applyMenuFilter(qb *gorm.DB, filter *domain.MenuFilter) *gorm.DB {
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

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	return r.sqlHandler.Create(ctx, menu)
}

func (r *MenuRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Menu, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *MenuRepository) FindOne(ctx context.Context, filter *domain.MenuFilter, option *domain.FindOneOption) (*domain.Menu, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *MenuRepository) FindMany(ctx context.Context, filter *domain.MenuFilter, option *domain.FindManyOption) ([]*domain.Menu, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *MenuRepository) FindPage(ctx context.Context, filter *domain.MenuFilter, option *domain.FindPageOption) ([]*domain.Menu, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *MenuRepository) Update(ctx context.Context, menu *domain.Menu) error {
	return r.sqlHandler.Update(ctx, menu)
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *MenuRepository) Restore(ctx context.Context, id string) error {
	return r.sqlHandler.RestoreByID(ctx, id)
}

func (r *MenuRepository) DeleteHard(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteHardByID(ctx, id)
}
