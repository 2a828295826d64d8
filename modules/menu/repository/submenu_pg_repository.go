package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type SubmenuRepository struct {
	sqlHandler *database.SQLHandler[domain.Submenu, domain.SubmenuFilter]
}

func NewSubmenuRepository(db *gorm.DB) *SubmenuRepository {
	sqlHandler := database.NewSQLHandler[domain.Submenu](db, applySubmenuFilter)
	return &SubmenuRepository{
		sqlHandler: sqlHandler,
	}
}

func applySubmenuFilter(qb *gorm.DB, filter *domain.SubmenuFilter) *gorm.DB {
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
	if filter.MainMenuID != nil {
		qb = qb.Where("main_menu_id = ?", *filter.MainMenuID)
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

func (r *SubmenuRepository) Create(ctx context.Context, submenu *domain.Submenu) error {
	return r.sqlHandler.Create(ctx, submenu)
}

func (r *SubmenuRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Submenu, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *SubmenuRepository) FindOne(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindOneOption) (*domain.Submenu, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *SubmenuRepository) FindMany(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindManyOption) ([]*domain.Submenu, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *SubmenuRepository) FindPage(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindPageOption) ([]*domain.Submenu, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *SubmenuRepository) Update(ctx context.Context, submenu *domain.Submenu) error {
	return r.sqlHandler.Update(ctx, submenu)
}

func (r *SubmenuRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}
