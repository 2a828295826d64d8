package domain

import (
	"context"
	"net/http"
)

/****************************
*        User errors        *
****************************/
var (
	ErrUserNotFound = &DetailedError{
		IDField:         "USER_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "User not found, please contact admin",
		StatusCodeField: http.StatusForbidden,
	}
	ErrEmailAlreadyExists = &DetailedError{
		IDField:         "EMAIL_ALREADY_EXISTS",
		StatusDescField: http.StatusText(http.StatusConflict),
		ErrorField:      "User with this email already exists",
		StatusCodeField: http.StatusConflict,
	}
	ErrUserValidationFailed = &DetailedError{
		IDField:         "USER_VALIDATION_FAILED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "User validation failed",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrPasswordHashFailed = &DetailedError{
		IDField:         "PASSWORD_HASH_FAILED",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "Failed to hash password",
		StatusCodeField: http.StatusInternalServerError,
	}
	ErrAccountDeleted = &DetailedError{
		IDField:         "ACCOUNT_DELETED",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "Account has been deleted",
		StatusCodeField: http.StatusForbidden,
	}
	ErrAccountBlocked = &DetailedError{
		IDField:         "ACCOUNT_BLOCKED",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "Account has been blocked",
		StatusCodeField: http.StatusForbidden,
	}
	ErrResetTokenInvalid = &DetailedError{
		IDField:         "RESET_TOKEN_INVALID",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Password reset token is invalid or has expired",
		StatusCodeField: http.StatusBadRequest,
	}
)

/***************************************
*       User entities and types       *
***************************************/

// User is an administrative account. RolePrivilegeIDs is the denormalized set
// of RolePrivilege record ids captured when the account is created or its role
// changes; the privilege resolver works from this list.
type User struct {
	SQLModel
	Name                 string       `json:"name" gorm:"type:varchar(100);not null"`
	Email                string       `json:"email" gorm:"type:varchar(100);unique;not null"`
	Password             string       `json:"-" gorm:"type:varchar(60);not null"`
	Role                 string       `json:"role" gorm:"type:varchar(50)"`
	RoleID               string       `json:"role_id" gorm:"type:varchar(36);index"`
	RolePrivilegeIDs     StringSlice  `json:"role_privilege_ids" gorm:"type:text"`
	Status               EntityStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	LastLoginAt          int64        `json:"last_login_at"`
	ResetPasswordToken   string       `json:"-" gorm:"type:varchar(64);index"`
	ResetPasswordExpires int64        `json:"-"`
}

func (u *User) Validate() error {
	if u.Name == "" {
		return ErrUserValidationFailed.WithError("name must be not empty")
	}
	if u.Email == "" {
		return ErrUserValidationFailed.WithError("email must be not empty")
	}
	if !u.Status.IsValid() {
		return ErrUserValidationFailed.WithError("status must be active or inactive")
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Sanitize clears secret material before the user is returned to a client.
func (u *User) Sanitize() *User {
	clean := *u
	clean.Password = ""
	clean.ResetPasswordToken = ""
	clean.ResetPasswordExpires = 0
	return &clean
}

type UserFilter struct {
	ID             *string  `json:"id" form:"id"`
	IDNe           *string  `json:"id_ne" form:"id_ne"`
	Email          *string  `json:"email" form:"email"`
	RoleID         *string  `json:"role_id" form:"role_id"`
	Status         *string  `json:"status" form:"status"`
	ResetToken     *string  `json:"-" form:"-"`
	SearchTerm     *string  `json:"search_term" form:"search_term"`
	SearchFields   []string `json:"search_fields" form:"search_fields"`
	IncludeDeleted *bool    `json:"include_deleted" form:"include_deleted"`
	OnlyDeleted    *bool    `json:"only_deleted" form:"only_deleted"`
}

/**********************************************
*       User usecase interfaces and types      *
**********************************************/
type UserUsecase interface {
	Create(ctx context.Context, req *UserCreateRequest) (*User, error)
	FindByID(ctx context.Context, userID string) (*User, error)
	FindPage(ctx context.Context, filter *UserFilter, option *FindPageOption) ([]*User, *Pagination, error)
	Update(ctx context.Context, userID string, req *UserUpdateRequest) error
	ToggleStatus(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) error
	PermanentDelete(ctx context.Context, userID string) error
}

type UserCreateRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	RoleID   string `json:"role_id" binding:"required"`
}

type UserUpdateRequest struct {
	Name     *string       `json:"name,omitempty"`
	Email    *string       `json:"email,omitempty"`
	Password *string       `json:"password,omitempty"`
	RoleID   *string       `json:"role_id,omitempty"`
	Status   *EntityStatus `json:"status,omitempty"`
}
