package repository

import (
	"context"

	"ecom-admin/database"
	"ecom-admin/domain"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db         *gorm.DB
	sqlHandler *database.SQLHandler[domain.Role, domain.RoleFilter]
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	sqlHandler := database.NewSQLHandler[domain.Role](db, applyRoleFilter)
	return &RoleRepository{
		db:         db,
		sqlHandler: sqlHandler,
	}
}

func applyRoleFilter(qb *gorm.DB, filter *domain.RoleFilter) *gorm.DB {
	if filter == nil {
		return qb.Where("deleted_at = 0")
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if filter.Name != nil {
		qb = qb.Where("name = ?", *filter.Name)
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

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.sqlHandler.Create(ctx, role)
}

// CreateWithPrivileges inserts the role and its full privilege matrix in one
// transaction, so a half-created role can never be observed.
func (r *RoleRepository) CreateWithPrivileges(ctx context.Context, role *domain.Role, privileges []*domain.RolePrivilege) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		for _, p := range privileges {
			p.RoleID = role.ID
		}
		if len(privileges) == 0 {
			return nil
		}
		return tx.Create(&privileges).Error
	})
}

// ReplacePrivileges swaps the role's privilege matrix for a new one. The old
// rows are removed outright so no stale grant survives the rewrite.
func (r *RoleRepository) ReplacePrivileges(ctx context.Context, roleID string, privileges []*domain.RolePrivilege) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&domain.RolePrivilege{}).Error; err != nil {
			return err
		}
		for _, p := range privileges {
			p.RoleID = roleID
		}
		if len(privileges) == 0 {
			return nil
		}
		return tx.Create(&privileges).Error
	})
}

func (r *RoleRepository) FindByID(ctx context.Context, roleID string, option *domain.FindOneOption) (*domain.Role, error) {
	return r.sqlHandler.FindByID(ctx, roleID, option)
}

func (r *RoleRepository) FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *RoleRepository) FindMany(ctx context.Context, filter *domain.RoleFilter, option *domain.FindManyOption) ([]*domain.Role, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *RoleRepository) FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	return r.sqlHandler.Update(ctx, role)
}

func (r *RoleRepository) UpdateFields(ctx context.Context, roleID string, fields map[string]any) error {
	return r.sqlHandler.UpdateFields(ctx, roleID, fields)
}

func (r *RoleRepository) Delete(ctx context.Context, roleID string) error {
	return r.sqlHandler.DeleteByID(ctx, roleID)
}

func (r *RoleRepository) Restore(ctx context.Context, roleID string) error {
	return r.sqlHandler.RestoreByID(ctx, roleID)
}

// DeleteHard removes the role row and its privilege rows permanently.
func (r *RoleRepository) DeleteHard(ctx context.Context, roleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&domain.RolePrivilege{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", roleID).Delete(&domain.Role{}).Error
	})
}

func (r *RoleRepository) Count(ctx context.Context, filter *domain.RoleFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
