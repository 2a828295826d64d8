package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
)

func (s EntityStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Toggle flips active to inactive and back.
func (s EntityStatus) Toggle() EntityStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

type SQLModel struct {
	ID        string `json:"id" gorm:"type:varchar(36);primary_key"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt int64  `json:"deleted_at" gorm:"index"`
}

func (m *SQLModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *SQLModel) IsDeleted() bool {
	return m.DeletedAt > 0
}

type FindOneOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
	Fields   []string `json:"fields" form:"fields"`
}

type FindManyOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Joins    []string `json:"joins" form:"joins"`
	Sort     []string `json:"sort" form:"sort"`
	Limit    *int     `json:"limit" form:"limit" default:"10"`
	Offset   *int     `json:"offset" form:"offset" default:"0"`
}

type FindPageOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
	Page     int      `json:"page" form:"page" default:"1"`
	PerPage  int      `json:"per_page" form:"per_page" default:"10"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

func NewPagination(page, perPage int, totalItems int64) *Pagination {
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}

type StringSlice []string

func NewStringSlice(s []string) StringSlice {
	return StringSlice(s)
}

func (s StringSlice) Value() (driver.Value, error) {
	val, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(val), nil
}

func (s *StringSlice) Scan(input interface{}) error {
	switch v := input.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice scan")
	}
}
