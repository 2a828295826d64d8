package domain

import (
	"context"
	"net/http"
)

/****************************
*        Menu errors        *
****************************/
var (
	ErrMenuNotFound = &DetailedError{
		IDField:         "MENU_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Menu not found",
		StatusCodeField: http.StatusNotFound,
	}
	ErrMenuValidationFailed = &DetailedError{
		IDField:         "MENU_VALIDATION_FAILED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Menu validation failed",
		StatusCodeField: http.StatusBadRequest,
	}
)

// DefaultMenuIcon is used when a main menu has no icon configured.
const DefaultMenuIcon = "bx-radio-circle"

// DashboardSlug marks the special top-level entry whose path defaults to "/".
const DashboardSlug = "dashboard"

/***************************************
*       Menu entities and types       *
***************************************/

// Menu is a top-level navigation node.
type Menu struct {
	SQLModel
	Name      string       `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string       `json:"slug" gorm:"type:varchar(120);index"`
	Icon      string       `json:"icon" gorm:"type:varchar(50)"`
	SortOrder int          `json:"sort_order" gorm:"default:0;index"`
	Status    EntityStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
}

// Submenu is a child navigation node owned by one Menu.
type Submenu struct {
	SQLModel
	Name       string       `json:"name" gorm:"type:varchar(100);not null"`
	Slug       string       `json:"slug" gorm:"type:varchar(120);index"`
	Path       string       `json:"path" gorm:"type:varchar(200)"`
	MainMenuID string       `json:"main_menu_id" gorm:"type:varchar(36);index;not null"`
	SortOrder  int          `json:"sort_order" gorm:"default:0"`
	Status     EntityStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
}

// MenuPermission is a named capability referenced by menu groups.
type MenuPermission struct {
	SQLModel
	Name   string       `json:"name" gorm:"type:varchar(100);not null"`
	Slug   string       `json:"slug" gorm:"type:varchar(120);index"`
	Status EntityStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
}

// MenuGroup links a submenu to a permission, forming one grantable unit.
// A group whose submenu or permission is missing or inactive is not
// resolvable into a menu.
type MenuGroup struct {
	SQLModel
	SubmenuID        string       `json:"submenu_id" gorm:"type:varchar(36);index"`
	MenuPermissionID string       `json:"menu_permission_id" gorm:"type:varchar(36);index"`
	Status           EntityStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
}

type MenuFilter struct {
	ID             *string `json:"id" form:"id"`
	Slug           *string `json:"slug" form:"slug"`
	Status         *string `json:"status" form:"status"`
	IncludeDeleted *bool   `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    *bool   `json:"only_deleted" form:"only_deleted"`
	IDIn           []string `json:"id_in" form:"id_in"`
}

type SubmenuFilter struct {
	ID             *string  `json:"id" form:"id"`
	Slug           *string  `json:"slug" form:"slug"`
	MainMenuID     *string  `json:"main_menu_id" form:"main_menu_id"`
	Status         *string  `json:"status" form:"status"`
	IncludeDeleted *bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    *bool    `json:"only_deleted" form:"only_deleted"`
	IDIn           []string `json:"id_in" form:"id_in"`
}

type MenuPermissionFilter struct {
	ID             *string  `json:"id" form:"id"`
	Slug           *string  `json:"slug" form:"slug"`
	Status         *string  `json:"status" form:"status"`
	IncludeDeleted *bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    *bool    `json:"only_deleted" form:"only_deleted"`
	IDIn           []string `json:"id_in" form:"id_in"`
}

type MenuGroupFilter struct {
	ID             *string  `json:"id" form:"id"`
	SubmenuID      *string  `json:"submenu_id" form:"submenu_id"`
	Status         *string  `json:"status" form:"status"`
	IncludeDeleted *bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    *bool    `json:"only_deleted" form:"only_deleted"`
	IDIn           []string `json:"id_in" form:"id_in"`
}

/***************************************
*       Resolved navigation tree       *
***************************************/

// MenuEntry is one resolved top-level navigation item.
type MenuEntry struct {
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Icon      string       `json:"icon"`
	Path      string       `json:"path,omitempty"`
	SortOrder int          `json:"sort_order"`
	Special   bool         `json:"special"`
	Children  []*MenuChild `json:"children"`
}

// MenuChild is one resolved submenu item under a MenuEntry.
type MenuChild struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Path      string `json:"path"`
	SortOrder int    `json:"sort_order"`
}

/**********************************************
*       Menu usecase interfaces and types      *
**********************************************/

// MenuResolver turns a user's granted privilege-record ids into a
// deterministic navigation tree.
type MenuResolver interface {
	ResolveMenus(ctx context.Context, privilegeIDs []string) []*MenuEntry
}

type MenuUsecase interface {
	CreateMenu(ctx context.Context, req *MenuCreateRequest) (*Menu, error)
	UpdateMenu(ctx context.Context, id string, req *MenuUpdateRequest) error
	FindMenuPage(ctx context.Context, filter *MenuFilter, option *FindPageOption) ([]*Menu, *Pagination, error)
	ToggleMenuStatus(ctx context.Context, id string) error
	DeleteMenu(ctx context.Context, id string) error
	RestoreMenu(ctx context.Context, id string) error
	PermanentDeleteMenu(ctx context.Context, id string) error

	CreateSubmenu(ctx context.Context, req *SubmenuCreateRequest) (*Submenu, error)
	UpdateSubmenu(ctx context.Context, id string, req *SubmenuUpdateRequest) error
	FindSubmenuPage(ctx context.Context, filter *SubmenuFilter, option *FindPageOption) ([]*Submenu, *Pagination, error)
	DeleteSubmenu(ctx context.Context, id string) error

	CreateMenuPermission(ctx context.Context, req *MenuPermissionCreateRequest) (*MenuPermission, error)
	FindMenuPermissionPage(ctx context.Context, filter *MenuPermissionFilter, option *FindPageOption) ([]*MenuPermission, *Pagination, error)
	DeleteMenuPermission(ctx context.Context, id string) error

	CreateMenuGroup(ctx context.Context, req *MenuGroupCreateRequest) (*MenuGroup, error)
	FindMenuGroupPage(ctx context.Context, filter *MenuGroupFilter, option *FindPageOption) ([]*MenuGroup, *Pagination, error)
	DeleteMenuGroup(ctx context.Context, id string) error
}

type MenuCreateRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

type MenuUpdateRequest struct {
	Name      *string       `json:"name,omitempty"`
	Icon      *string       `json:"icon,omitempty"`
	SortOrder *int          `json:"sort_order,omitempty"`
	Status    *EntityStatus `json:"status,omitempty"`
}

type SubmenuCreateRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Path       string `json:"path"`
	MainMenuID string `json:"main_menu_id" binding:"required"`
	SortOrder  int    `json:"sort_order"`
}

type SubmenuUpdateRequest struct {
	Name      *string       `json:"name,omitempty"`
	Path      *string       `json:"path,omitempty"`
	SortOrder *int          `json:"sort_order,omitempty"`
	Status    *EntityStatus `json:"status,omitempty"`
}

type MenuPermissionCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type MenuGroupCreateRequest struct {
	SubmenuID        string `json:"submenu_id" binding:"required"`
	MenuPermissionID string `json:"menu_permission_id" binding:"required"`
}
