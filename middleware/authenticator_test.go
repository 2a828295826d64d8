package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecom-admin/common"
	"ecom-admin/domain"
	roleRepository "ecom-admin/modules/role/repository"
	userRepository "ecom-admin/modules/user/repository"
	"ecom-admin/pkg/cache"
	"ecom-admin/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type jwtTestConfig struct{}

func (jwtTestConfig) TokenExpiresIn() string { return "1h" }
func (jwtTestConfig) TokenSecret() string    { return "test-secret" }
func (jwtTestConfig) TokenIssuer() string    { return "ecom-admin" }

type guardFixture struct {
	db       *gorm.DB
	userRepo *userRepository.UserRepository
	roleRepo *roleRepository.RoleRepository
	jwt      *common.JWTProvider
	router   *gin.Engine
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
	), "failed to migrate test database")

	logger := log.MustNewDevelopmentLogger()
	adapter := common.NewLoggerAdapter(logger)
	userRepo := userRepository.NewUserRepository(db)
	roleRepo := roleRepository.NewRoleRepository(db)
	jwtProvider := common.NewJWTProvider(jwtTestConfig{})

	middlewares := NewMiddlewares(Dependencies{
		Cache:       cache.NewMemoryCache(&cache.Config{DefaultTTL: time.Minute}, adapter),
		Logger:      logger,
		JwtProvider: jwtProvider,
		UserRepo:    userRepo,
		RoleRepo:    roleRepo,
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middlewares.AccessGuard())
	api.POST("/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"open": true})
	})
	api.GET("/users", func(c *gin.Context) {
		identity := common.GetIdentityFromCtx(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})

	return &guardFixture{db: db, userRepo: userRepo, roleRepo: roleRepo, jwt: jwtProvider, router: router}
}

func (f *guardFixture) seedUser(t *testing.T, status domain.EntityStatus, roleID string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:     "Guard User",
		Email:    "guard@example.com",
		Password: "hashed",
		RoleID:   roleID,
		Status:   status,
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *guardFixture) request(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	method := http.MethodGet
	if path == "/api/v1/auth/login" {
		method = http.MethodPost
	}
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAccessGuard_SkipsAuthEndpoints(t *testing.T) {
	f := newGuardFixture(t)
	w := f.request(t, "/api/v1/auth/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessGuard_RejectsMissingAndInvalidTokens(t *testing.T) {
	f := newGuardFixture(t)

	w := f.request(t, "/api/v1/users", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, "/api/v1/users", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessGuard_RejectsUnknownUser(t *testing.T) {
	f := newGuardFixture(t)

	ghost := &domain.User{
		SQLModel: domain.SQLModel{ID: "ghost-id"},
		Email:    "ghost@example.com",
	}
	token, _, err := f.jwt.Generate(ghost)
	require.NoError(t, err)

	w := f.request(t, "/api/v1/users", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccessGuard_RejectsDeletedAccountDespiteValidToken(t *testing.T) {
	f := newGuardFixture(t)
	user := f.seedUser(t, domain.StatusActive, "")

	token, _, err := f.jwt.Generate(user)
	require.NoError(t, err)

	require.NoError(t, f.userRepo.Delete(context.Background(), user.ID))

	w := f.request(t, "/api/v1/users", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_DELETED")
}

func TestAccessGuard_RejectsBlockedAccountDespiteValidToken(t *testing.T) {
	f := newGuardFixture(t)
	user := f.seedUser(t, domain.StatusInactive, "")

	token, _, err := f.jwt.Generate(user)
	require.NoError(t, err)

	w := f.request(t, "/api/v1/users", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_BLOCKED")
}

func TestAccessGuard_AttachesIdentityWithRoleName(t *testing.T) {
	f := newGuardFixture(t)

	role := &domain.Role{Name: "Editor", Slug: "editor", Status: domain.StatusActive}
	require.NoError(t, f.db.Create(role).Error)
	user := f.seedUser(t, domain.StatusActive, role.ID)

	token, _, err := f.jwt.Generate(user)
	require.NoError(t, err)

	w := f.request(t, "/api/v1/users", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
	assert.Contains(t, w.Body.String(), "Editor")
}

func TestAccessGuard_UnresolvableRoleDowngradesToUnknown(t *testing.T) {
	f := newGuardFixture(t)
	user := f.seedUser(t, domain.StatusActive, "no-such-role")

	token, _, err := f.jwt.Generate(user)
	require.NoError(t, err)

	w := f.request(t, "/api/v1/users", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), common.UnknownRoleName)
}
