package usecase

import (
	"context"
	"testing"
	"time"

	"ecom-admin/common"
	"ecom-admin/domain"
	menuRepository "ecom-admin/modules/menu/repository"
	menuUC "ecom-admin/modules/menu/usecase"
	roleRepository "ecom-admin/modules/role/repository"
	userRepository "ecom-admin/modules/user/repository"
	"ecom-admin/pkg/cache"
	"ecom-admin/pkg/email"
	"ecom-admin/pkg/log"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type jwtTestConfig struct{}

func (jwtTestConfig) TokenExpiresIn() string { return "1h" }
func (jwtTestConfig) TokenSecret() string    { return testSecret }
func (jwtTestConfig) TokenIssuer() string    { return "ecom-admin" }

type authTestConfig struct {
	maxAttempts int
	lockout     time.Duration
	resetTTL    time.Duration
}

func (c authTestConfig) MaxLoginAttempts() int        { return c.maxAttempts }
func (c authTestConfig) LoginLockout() time.Duration  { return c.lockout }
func (c authTestConfig) ResetTokenTTL() time.Duration { return c.resetTTL }
func (c authTestConfig) ResetPasswordURL() string {
	return "https://admin.example.com/reset-password"
}

type testMailer struct {
	client email.Client
}

func (m *testMailer) From() string         { return "noreply@example.com" }
func (m *testMailer) Client() email.Client { return m.client }

type authFixture struct {
	db      *gorm.DB
	repo    *userRepository.UserRepository
	usecase domain.AuthUsecase
	hasher  *common.BcryptHasher
	outbox  *email.MockClient
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.RolePrivilege{},
		&domain.Menu{},
		&domain.Submenu{},
		&domain.MenuPermission{},
		&domain.MenuGroup{},
	), "failed to migrate test database")

	logger := log.MustNewDevelopmentLogger()
	adapter := common.NewLoggerAdapter(logger)
	repo := userRepository.NewUserRepository(db)
	hasher := common.NewBcryptHasher()
	resolver := menuUC.NewMenuResolver(
		roleRepository.NewRolePrivilegeRepository(db),
		menuRepository.NewMenuGroupRepository(db),
		menuRepository.NewSubmenuRepository(db),
		menuRepository.NewMenuRepository(db),
		logger,
	)
	memCache := cache.NewMemoryCache(&cache.Config{DefaultTTL: time.Minute}, adapter)
	outbox := email.NewMockClient(&email.Config{DefaultFrom: "noreply@example.com"}, adapter)
	mailer := &testMailer{client: outbox}

	usecase := NewAuthUsecase(
		repo,
		common.NewJWTProvider(jwtTestConfig{}),
		hasher,
		resolver,
		memCache,
		mailer,
		authTestConfig{maxAttempts: 3, lockout: time.Minute, resetTTL: time.Hour},
		logger,
	)

	return &authFixture{db: db, repo: repo, usecase: usecase, hasher: hasher, outbox: outbox}
}

func (f *authFixture) seedUser(t *testing.T, emailAddr, password string, status domain.EntityStatus) *domain.User {
	t.Helper()
	hashed, err := f.hasher.Hash(password)
	require.NoError(t, err)

	user := &domain.User{
		Name:     "Test User",
		Email:    emailAddr,
		Password: hashed,
		Role:     "Editor",
		RoleID:   "role-1",
		Status:   status,
	}
	require.NoError(t, f.repo.Create(context.Background(), user))
	return user
}

func TestAuthUsecase_LoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "admin@example.com", "secret123", domain.StatusActive)

	resp, err := f.usecase.Login(ctx, &domain.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Empty(t, resp.Data.Password, "response must never carry the password hash")
	assert.NotNil(t, resp.Menus)

	got, err := f.repo.FindByID(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Positive(t, got.LastLoginAt, "successful login records the timestamp")
}

func TestAuthUsecase_LoginEmailIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "Admin@Example.com", "secret123", domain.StatusActive)

	resp, err := f.usecase.Login(ctx, &domain.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	// Stored casing is preserved in the response.
	assert.Equal(t, "Admin@Example.com", resp.Data.Email)
}

func TestAuthUsecase_LoginFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "admin@example.com", "secret123", domain.StatusActive)
	f.seedUser(t, "blocked@example.com", "secret123", domain.StatusInactive)

	_, err := f.usecase.Login(ctx, &domain.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailNotExist)

	_, err = f.usecase.Login(ctx, &domain.LoginRequest{Email: "blocked@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	_, err = f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestAuthUsecase_LoginLockoutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "admin@example.com", "secret123", domain.StatusActive)

	for i := 0; i < 3; i++ {
		_, err := f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	}

	// Even the right password is refused once the counter hits the cap.
	_, err := f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrTooManyLoginAttempts)
}

func TestAuthUsecase_SuccessfulLoginClearsCounter(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "admin@example.com", "secret123", domain.StatusActive)

	for i := 0; i < 2; i++ {
		_, err := f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	}

	_, err := f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Counter was reset, so two fresh failures do not lock the account.
	for i := 0; i < 2; i++ {
		_, err := f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	}
}

func expiredTokenFor(t *testing.T, userID string) string {
	t.Helper()
	claims := domain.JwtClaims{
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthUsecase_RefreshTokenAcceptsExpired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "admin@example.com", "secret123", domain.StatusActive)

	resp, err := f.usecase.RefreshToken(ctx, expiredTokenFor(t, user.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.Data.ID)
}

func TestAuthUsecase_RefreshTokenRejections(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.usecase.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrRefreshRejected)

	inactive := f.seedUser(t, "blocked@example.com", "secret123", domain.StatusInactive)
	_, err = f.usecase.RefreshToken(ctx, expiredTokenFor(t, inactive.ID))
	assert.ErrorIs(t, err, domain.ErrRefreshRejected)

	deleted := f.seedUser(t, "gone@example.com", "secret123", domain.StatusActive)
	require.NoError(t, f.repo.Delete(ctx, deleted.ID))
	_, err = f.usecase.RefreshToken(ctx, expiredTokenFor(t, deleted.ID))
	assert.ErrorIs(t, err, domain.ErrRefreshRejected)
}

func TestAuthUsecase_Me(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "admin@example.com", "secret123", domain.StatusActive)

	got, err := f.usecase.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.Password)

	_, err = f.usecase.Me(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthUsecase_PasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "admin@example.com", "old-password", domain.StatusActive)

	require.NoError(t, f.usecase.ForgotPassword(ctx, &domain.ForgotPasswordRequest{
		Email: "admin@example.com",
	}))

	stored, err := f.repo.FindOne(ctx, &domain.UserFilter{ID: &user.ID}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetPasswordToken)
	assert.Greater(t, stored.ResetPasswordExpires, time.Now().UnixMilli())

	require.NoError(t, f.usecase.ResetPassword(ctx, &domain.ResetPasswordRequest{
		Token:    stored.ResetPasswordToken,
		Password: "new-password",
	}))

	// Old credentials stop working, new ones take over.
	_, err = f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "old-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = f.usecase.Login(ctx, &domain.LoginRequest{Email: "admin@example.com", Password: "new-password"})
	assert.NoError(t, err)

	// The token is single-use.
	err = f.usecase.ResetPassword(ctx, &domain.ResetPasswordRequest{
		Token:    stored.ResetPasswordToken,
		Password: "another",
	})
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}

func TestAuthUsecase_ResetPasswordRejectsExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "admin@example.com", "old-password", domain.StatusActive)

	require.NoError(t, f.repo.UpdateFields(ctx, user.ID, map[string]any{
		"reset_password_token":   "stale-token",
		"reset_password_expires": time.Now().Add(-time.Minute).UnixMilli(),
	}))

	err := f.usecase.ResetPassword(ctx, &domain.ResetPasswordRequest{
		Token:    "stale-token",
		Password: "new-password",
	})
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}

// ForgotPassword must answer an unknown address exactly like a known one,
// without sending anything.
func TestAuthUsecase_ForgotPasswordUnknownEmailStaysSilent(t *testing.T) {
	f := newAuthFixture(t)

	err := f.usecase.ForgotPassword(context.Background(), &domain.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})
	assert.NoError(t, err)
	assert.Empty(t, f.outbox.SentEmails(), "no reset email for an unknown address")
}
