package middleware

import (
	"context"
	"strings"

	"ecom-admin/common"
	"ecom-admin/domain"
	"ecom-admin/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type JwtProvider interface {
	Verify(tokenStr string) (*domain.JwtClaims, error)
}

type UserRepository interface {
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
}

type RoleRepository interface {
	FindByID(ctx context.Context, roleID string, option *domain.FindOneOption) (*domain.Role, error)
}

// guardSkipPaths are the endpoints callable without a token. Refresh is here
// because its whole purpose is trading an expired token for a fresh one.
var guardSkipPaths = map[string]struct{}{
	"/api/v1/auth/login":           {},
	"/api/v1/auth/refresh":         {},
	"/api/v1/auth/forgot-password": {},
	"/api/v1/auth/reset-password":  {},
}

// identityFields is the projection loaded per request; the password hash and
// reset-token columns never leave the database here.
var identityFields = []string{"id", "name", "email", "role_id", "status", "deleted_at"}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AccessGuard authenticates every request outside the skip list: it verifies
// the bearer token, re-checks the account against the database (a token alone
// never proves liveness) and attaches the resolved identity to the context.
func (m *middlewares) AccessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := guardSkipPaths[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		tokenStr := extractBearerToken(c)
		if tokenStr == "" {
			common.ResponseError(c, domain.ErrTokenMissing)
			return
		}

		claims, err := m.jwtProvider.Verify(tokenStr)
		if err != nil {
			common.ResponseError(c, domain.ErrInvalidToken.WithWrap(err))
			return
		}

		user, err := m.userRepo.FindOne(c.Request.Context(), &domain.UserFilter{
			ID:             lo.ToPtr(claims.SubjectID()),
			IncludeDeleted: lo.ToPtr(true),
		}, &domain.FindOneOption{Fields: identityFields})
		if err != nil && !common.IsRecordNotFound(err) {
			common.ResponseError(c, domain.ErrInfrastructure.WithWrap(err))
			return
		}
		if user == nil || common.IsRecordNotFound(err) {
			common.ResponseError(c, domain.ErrUserNotFound)
			return
		}

		if user.IsDeleted() {
			common.ResponseError(c, domain.ErrAccountDeleted)
			return
		}
		if !user.IsActive() {
			common.ResponseError(c, domain.ErrAccountBlocked)
			return
		}

		c.Set(common.IdentityContextKey, &domain.AuthIdentity{
			ID:    user.ID,
			Email: user.Email,
			Role:  m.resolveRoleName(c.Request.Context(), user.RoleID),
		})
		c.Next()
	}
}

// resolveRoleName is best effort: a missing or unreadable role downgrades the
// identity to an unknown role instead of failing the request.
func (m *middlewares) resolveRoleName(ctx context.Context, roleID string) string {
	if roleID == "" {
		return common.UnknownRoleName
	}
	role, err := m.roleRepo.FindByID(ctx, roleID, nil)
	if err != nil || role == nil {
		m.logger.WarnContext(ctx, "Could not resolve role for authenticated user",
			log.String("role_id", roleID), log.Error(err))
		return common.UnknownRoleName
	}
	return role.Name
}
