package domain

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

/****************************
*        Auth errors        *
****************************/
var (
	ErrEmailNotExist = &DetailedError{
		IDField:         "EMAIL_NOT_EXIST",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Email does not exist",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrInvalidPassword = &DetailedError{
		IDField:         "INVALID_PASSWORD",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Invalid password",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrAccountInactive = &DetailedError{
		IDField:         "ACCOUNT_INACTIVE",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Account is not active",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrTokenMissing = &DetailedError{
		IDField:         "TOKEN_MISSING",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Bearer token missing",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrInvalidToken = &DetailedError{
		IDField:         "INVALID_TOKEN",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Invalid or expired token",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrRefreshRejected = &DetailedError{
		IDField:         "REFRESH_REJECTED",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "Token could not be refreshed",
		StatusCodeField: http.StatusForbidden,
	}
	ErrTooManyLoginAttempts = &DetailedError{
		IDField:         "TOO_MANY_LOGIN_ATTEMPTS",
		StatusDescField: http.StatusText(http.StatusTooManyRequests),
		ErrorField:      "Too many failed login attempts, please try again later",
		StatusCodeField: http.StatusTooManyRequests,
	}
)

/***************************************
*       Auth entities and types       *
***************************************/

// JwtClaims carries the session identity. LegacyUID is a read-only
// compatibility shim for tokens minted before the claim was renamed to the
// registered "sub" field; new tokens never set it.
type JwtClaims struct {
	Email     string `json:"email"`
	RoleID    string `json:"role_id"`
	LegacyUID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the canonical subject, falling back to the legacy claim.
func (c *JwtClaims) SubjectID() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.LegacyUID
}

// AuthIdentity is the resolved caller attached to the request context by the
// access guard.
type AuthIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

/*************************************
*  Auth usecase interfaces and types *
**************************************/
type AuthUsecase interface {
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, token string) (*AuthResponse, error)
	Me(ctx context.Context, userID string) (*User, error)
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	IPAddress string `json:"-"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	Data      *User        `json:"data"`
	ExpiresIn int64        `json:"expiresIn"`
	Menus     []*MenuEntry `json:"menus"`
}
