package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type RolePrivilegeRepository struct {
	sqlHandler *database.SQLHandler[domain.RolePrivilege, domain.RolePrivilegeFilter]
}

func NewRolePrivilegeRepository(db *gorm.DB) *RolePrivilegeRepository {
	sqlHandler := database.NewSQLHandler[domain.RolePrivilege](db, applyRolePrivilegeFilter)
	return &RolePrivilegeRepository{
		sqlHandler: sqlHandler,
	}
}

func applyRolePrivilegeFilter(qb *gorm.DB, filter *domain.RolePrivilegeFilter) *gorm.DB {
	if filter == nil {
		return qb.Where("deleted_at = 0")
	}

	if len(filter.IDIn) > 0 {
		qb = qb.Where("id IN (?)", filter.IDIn)
	}
	if filter.RoleID != nil {
		qb = qb.Where("role_id = ?", *filter.RoleID)
	}
	if filter.MenuGroupID != nil {
		qb = qb.Where("menu_group_id = ?", *filter.MenuGroupID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if filter.IncludeDeleted == nil || !*filter.IncludeDeleted {
		qb = qb.Where("deleted_at = 0")
	}

	return qb
}

func (r *RolePrivilegeRepository) FindMany(ctx context.Context, filter *domain.RolePrivilegeFilter, option *domain.FindManyOption) ([]*domain.RolePrivilege, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *RolePrivilegeRepository) Count(ctx context.Context, filter *domain.RolePrivilegeFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
