package domain

import (
	"context"
	"net/http"
)

/****************************
*        Role errors        *
****************************/
var (
	ErrRoleNotFound = &DetailedError{
		IDField:         "ROLE_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Role not found",
		StatusCodeField: http.StatusNotFound,
	}
	ErrRoleNameExists = &DetailedError{
		IDField:         "ROLE_NAME_EXISTS",
		StatusDescField: http.StatusText(http.StatusConflict),
		ErrorField:      "Role with this name already exists",
		StatusCodeField: http.StatusConflict,
	}
	ErrRoleValidationFailed = &DetailedError{
		IDField:         "ROLE_VALIDATION_FAILED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Role validation failed",
		StatusCodeField: http.StatusBadRequest,
	}
)

/***************************************
*       Role entities and types       *
***************************************/

type Role struct {
	SQLModel
	Name   string       `json:"name" gorm:"type:varchar(100);not null"`
	Slug   string       `json:"slug" gorm:"type:varchar(120);index"`
	Status EntityStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
}

func (r *Role) Validate() error {
	if r.Name == "" {
		return ErrRoleValidationFailed.WithError("name must be not empty")
	}
	if !r.Status.IsValid() {
		return ErrRoleValidationFailed.WithError("status must be active or inactive")
	}
	return nil
}

// RolePrivilege is the per-role enable flag for one menu group. A row with
// Status=false is present but disabled, which is different from absent: every
// role owns a complete matrix over the active menu groups.
type RolePrivilege struct {
	SQLModel
	RoleID      string `json:"role_id" gorm:"type:varchar(36);index;not null"`
	MenuGroupID string `json:"menu_group_id" gorm:"type:varchar(36);index;not null"`
	Status      bool   `json:"status"`
}

type RoleFilter struct {
	ID             *string `json:"id" form:"id"`
	IDNe           *string `json:"id_ne" form:"id_ne"`
	Name           *string `json:"name" form:"name"`
	Slug           *string `json:"slug" form:"slug"`
	Status         *string `json:"status" form:"status"`
	IncludeDeleted *bool   `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    *bool   `json:"only_deleted" form:"only_deleted"`
}

type RolePrivilegeFilter struct {
	IDIn           []string `json:"id_in" form:"id_in"`
	RoleID         *string  `json:"role_id" form:"role_id"`
	MenuGroupID    *string  `json:"menu_group_id" form:"menu_group_id"`
	Status         *bool    `json:"status" form:"status"`
	IncludeDeleted *bool    `json:"include_deleted" form:"include_deleted"`
}

/**********************************************
*       Role usecase interfaces and types      *
**********************************************/

type RoleUsecase interface {
	Create(ctx context.Context, req *RoleCreateRequest) (*Role, error)
	FindByID(ctx context.Context, roleID string) (*RoleDetail, error)
	FindPage(ctx context.Context, filter *RoleFilter, option *FindPageOption) ([]*Role, *Pagination, error)
	Update(ctx context.Context, roleID string, req *RoleUpdateRequest) error
	ToggleStatus(ctx context.Context, roleID string) error
	Delete(ctx context.Context, roleID string) error
	Restore(ctx context.Context, roleID string) error
	PermanentDelete(ctx context.Context, roleID string) error
	PrivilegeTable(ctx context.Context) ([]*PrivilegeTableRow, error)
}

type RoleCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	// MenuGroupIDs are the menu groups granted at creation; every other
	// active group still gets a disabled privilege row.
	MenuGroupIDs []string `json:"menu_group_ids"`
}

type RoleUpdateRequest struct {
	Name   *string       `json:"name,omitempty"`
	Status *EntityStatus `json:"status,omitempty"`
	// MenuGroupIDs, when non-nil, triggers a full replacement of the
	// role's privilege matrix.
	MenuGroupIDs []string `json:"menu_group_ids,omitempty"`
}

type RoleDetail struct {
	Role       *Role            `json:"role"`
	Privileges []*RolePrivilege `json:"privileges"`
}

// PrivilegeTableRow is one entry of the role-editing view: a grantable menu
// group joined with the submenu, main menu and permission it exposes.
type PrivilegeTableRow struct {
	MenuGroupID    string `json:"menu_group_id"`
	MenuName       string `json:"menu_name"`
	MenuSlug       string `json:"menu_slug"`
	SubmenuName    string `json:"submenu_name"`
	SubmenuSlug    string `json:"submenu_slug"`
	SubmenuPath    string `json:"submenu_path"`
	PermissionName string `json:"permission_name"`
	PermissionSlug string `json:"permission_slug"`
}
