package database

import (
	"context"
	"errors"
	"fmt"
	"ecom-admin/domain"
	"ecom-admin/pkg/utils"
	"strings"

	"gorm.io/gorm"
)

// SQLHandler carries the query plumbing shared by every repository:
// filters, sorting, pagination and the millisecond soft-delete scheme.
// T is the entity, V its filter type.
type SQLHandler[T any, V any] struct {
	db          *gorm.DB
	applyFilter func(*gorm.DB, *V) *gorm.DB
}

func NewSQLHandler[T any, V any](
	db *gorm.DB,
	applyFilter func(*gorm.DB, *V) *gorm.DB,
) *SQLHandler[T, V] {
	return &SQLHandler[T, V]{applyFilter: applyFilter, db: db}
}

type DBOption func(*gorm.DB) *gorm.DB

func WithOmit(fields ...string) DBOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Omit(fields...)
	}
}

func WithTx(tx *gorm.DB) DBOption {
	return func(db *gorm.DB) *gorm.DB {
		if tx != nil {
			return tx
		}
		return db
	}
}

func (h *SQLHandler[T, V]) applyDBOptions(opts ...DBOption) *gorm.DB {
	qb := h.db
	for _, opt := range opts {
		qb = opt(qb)
	}
	return qb
}

func (h *SQLHandler[T, V]) Create(ctx context.Context, entity *T, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	return execDB.WithContext(ctx).Create(&entity).Error
}

func (h *SQLHandler[T, V]) CreateMany(ctx context.Context, entities []*T, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	return execDB.WithContext(ctx).Create(&entities).Error
}

func (h *SQLHandler[T, V]) applyFindOneOption(db *gorm.DB, option *domain.FindOneOption) *gorm.DB {
	if option == nil {
		return db
	}

	if len(option.Fields) > 0 {
		db = db.Select(option.Fields)
	}

	for _, sortField := range option.Sort {
		db = db.Order(sortField)
	}

	for _, field := range option.Preloads {
		db = db.Preload(field)
	}
	return db
}

func (h *SQLHandler[T, V]) FindByID(ctx context.Context, id any, option *domain.FindOneOption, opts ...DBOption) (*T, error) {
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFindOneOption(execDB, option)

	var entity T
	err := execDB.WithContext(ctx).Where("id = ? AND deleted_at = 0", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (h *SQLHandler[T, V]) FindOne(ctx context.Context, filter *V, option *domain.FindOneOption, opts ...DBOption) (*T, error) {
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFilter(execDB, filter)
	execDB = h.applyFindOneOption(execDB, option)

	var entity T
	err := execDB.WithContext(ctx).First(&entity).Error
	if err == nil {
		return &entity, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	return nil, err
}

func (h *SQLHandler[T, V]) applyFindManyOption(db *gorm.DB, option *domain.FindManyOption) *gorm.DB {
	if option == nil {
		return db
	}

	for _, sortField := range option.Sort {
		db = db.Order(sortField)
	}

	if option.Limit != nil {
		db = db.Limit(*option.Limit)
	}

	if option.Offset != nil {
		db = db.Offset(*option.Offset)
	}

	for _, field := range option.Preloads {
		db = db.Preload(field)
	}

	for _, field := range option.Joins {
		db = db.Joins(field)
	}
	return db
}

func (h *SQLHandler[T, V]) FindMany(ctx context.Context, filter *V, option *domain.FindManyOption, opts ...DBOption) ([]*T, error) {
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFilter(execDB, filter)
	execDB = h.applyFindManyOption(execDB, option)

	var entities []*T
	err := execDB.WithContext(ctx).Find(&entities).Error
	if err != nil {
		return nil, err
	}

	return entities, nil
}

func (h *SQLHandler[T, V]) applyFindPageOption(db *gorm.DB, option *domain.FindPageOption) (outDB *gorm.DB, page, perPage int) {
	outDB = db
	page = 1
	perPage = 10
	if option != nil {
		if len(option.Sort) > 0 {
			for _, sortField := range option.Sort {
				outDB = outDB.Order(sortField)
			}
		}
		if option.Page > 0 {
			page = option.Page
		}

		if option.PerPage > 0 {
			perPage = option.PerPage
		}

		for _, field := range option.Preloads {
			outDB = outDB.Preload(field)
		}
	}
	offset := (page - 1) * perPage
	outDB = outDB.Offset(offset).Limit(perPage)
	return
}

func (h *SQLHandler[T, V]) FindPage(ctx context.Context, filter *V, option *domain.FindPageOption, opts ...DBOption) ([]*T, *domain.Pagination, error) {
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFilter(execDB, filter)

	// Count on a session clone so pagination clauses never leak into it.
	var totalItems int64
	countDB := execDB.Session(&gorm.Session{})
	err := countDB.WithContext(ctx).Model(new(T)).Count(&totalItems).Error
	if err != nil {
		return nil, nil, err
	}

	execDB, page, perPage := h.applyFindPageOption(execDB, option)

	var entities []*T
	err = execDB.WithContext(ctx).Find(&entities).Error
	if err != nil {
		return nil, nil, err
	}

	return entities, domain.NewPagination(page, perPage, totalItems), nil
}

func (h *SQLHandler[T, V]) Update(ctx context.Context, entity *T, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	return execDB.WithContext(ctx).Save(&entity).Error
}

func (h *SQLHandler[T, V]) UpdateFields(ctx context.Context, id any, fields map[string]any, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	var entity T
	return execDB.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(fields).Error
}

func (h *SQLHandler[T, V]) DeleteByID(ctx context.Context, id any, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	var entity T
	return execDB.WithContext(ctx).
		Model(&entity).
		Where("id = ? AND deleted_at = 0", id).
		Updates(map[string]any{
			"deleted_at": utils.NowUnixMillis(),
		}).Error
}

func (h *SQLHandler[T, V]) UpdateMany(ctx context.Context, filter *V, fields map[string]any, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFilter(execDB, filter)
	var entity T
	return execDB.WithContext(ctx).Model(&entity).Updates(fields).Error
}

func (h *SQLHandler[T, V]) RestoreByID(ctx context.Context, id any, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	var entity T
	return execDB.WithContext(ctx).
		Model(&entity).
		Where("id = ? AND deleted_at > 0", id).
		Updates(map[string]any{
			"deleted_at": 0,
		}).Error
}

// DeleteHardByID removes the row itself, bypassing soft delete.
func (h *SQLHandler[T, V]) DeleteHardByID(ctx context.Context, id any, opts ...DBOption) error {
	execDB := h.applyDBOptions(opts...)
	var entity T
	return execDB.WithContext(ctx).Where("id = ?", id).Delete(&entity).Error
}

func (h *SQLHandler[T, V]) DeleteMany(ctx context.Context, filter *V, opts ...DBOption) (int64, error) {
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFilter(execDB, filter)
	var entity T
	res := execDB.WithContext(ctx).Delete(&entity)
	return res.RowsAffected, res.Error
}

func (h *SQLHandler[T, V]) Count(ctx context.Context, filter *V, opts ...DBOption) (int64, error) {
	var count int64
	execDB := h.applyDBOptions(opts...)
	execDB = h.applyFilter(execDB, filter)
	err := execDB.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}

// ApplySearch adds case-insensitive partial matching over the requested
// columns. searchableFields maps the aliases accepted from the request
// onto real column names, so callers can never inject a column.
func ApplySearch(
	db *gorm.DB,
	searchTerm string,
	searchFields []string,
	searchableFields map[string]string,
) *gorm.DB {
	if searchTerm == "" {
		return db
	}

	columns := resolveSearchColumns(searchFields, searchableFields)
	if len(columns) == 0 {
		return db
	}

	conditions := make([]string, len(columns))
	args := make([]any, len(columns))
	pattern := "%" + searchTerm + "%"
	for i, column := range columns {
		conditions[i] = fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", column)
		args[i] = pattern
	}

	return db.Where(strings.Join(conditions, " OR "), args...)
}

// resolveSearchColumns maps requested aliases to columns, dropping
// anything not whitelisted. No requested fields means search them all.
func resolveSearchColumns(requested []string, searchableFields map[string]string) []string {
	if len(requested) == 0 {
		columns := make([]string, 0, len(searchableFields))
		for _, column := range searchableFields {
			columns = append(columns, column)
		}
		return columns
	}

	var columns []string
	for _, alias := range requested {
		if column, ok := searchableFields[alias]; ok {
			columns = append(columns, column)
		}
	}
	return columns
}
