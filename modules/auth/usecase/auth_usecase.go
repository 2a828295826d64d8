package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecom-admin/common"
	"ecom-admin/domain"
	"ecom-admin/pkg/cache"
	"ecom-admin/pkg/email"
	"ecom-admin/pkg/log"
	"ecom-admin/pkg/utils"

	"github.com/google/uuid"
)

const loginAttemptsKeyPrefix = "login_attempts:"

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

type JwtProvider interface {
	Generate(user *domain.User) (string, int64, error)
	Decode(tokenStr string) (*domain.JwtClaims, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error)
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
	UpdateFields(ctx context.Context, userID string, fields map[string]any) error
}

// Config carries the login throttling and password reset knobs.
type Config interface {
	MaxLoginAttempts() int
	LoginLockout() time.Duration
	ResetTokenTTL() time.Duration
	ResetPasswordURL() string
}

type Mailer interface {
	From() string
	Client() email.Client
}

type authUsecase struct {
	userRepo     UserRepository
	jwtProvider  JwtProvider
	hasher       Hasher
	menuResolver domain.MenuResolver
	cache        cache.Client
	mailer       Mailer
	cfg          Config
	logger       log.Logger
}

func NewAuthUsecase(
	userRepo UserRepository,
	jwtProvider JwtProvider,
	hasher Hasher,
	menuResolver domain.MenuResolver,
	cacheClient cache.Client,
	mailer Mailer,
	cfg Config,
	logger log.Logger,

) domain.AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		jwtProvider:  jwtProvider,
		hasher:       hasher,
		menuResolver: menuResolver,
		cache:        cacheClient,
		mailer:       mailer,
		cfg:          cfg,
		logger:       logger,
	}
}

// attemptsKey lowercases the address so mixed-case login attempts share
// one counter.
func attemptsKey(emailAddr string) string {
	return loginAttemptsKeyPrefix + strings.ToLower(emailAddr)
}

// failedAttempts reads the counter; cache trouble counts as zero so an
// unavailable cache can never lock everyone out.
func (u *authUsecase) failedAttempts(ctx context.Context, emailAddr string) int {
	raw, err := u.cache.Get(ctx, attemptsKey(emailAddr))
	if err != nil || raw == nil {
		return 0
	}
	count, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0
	}
	return count
}

func (u *authUsecase) recordFailedAttempt(ctx context.Context, emailAddr string) {
	if _, err := u.cache.Increment(ctx, attemptsKey(emailAddr), 1, u.cfg.LoginLockout()); err != nil {
		u.logger.WarnContext(ctx, "Could not record failed login attempt",
			log.String("email", utils.MaskEmail(&emailAddr)), log.Error(err))
	}
}

func (u *authUsecase) clearFailedAttempts(ctx context.Context, emailAddr string) {
	if err := u.cache.Delete(ctx, attemptsKey(emailAddr)); err != nil {
		u.logger.WarnContext(ctx, "Could not clear failed login attempts",
			log.String("email", utils.MaskEmail(&emailAddr)), log.Error(err))
	}
}

func (u *authUsecase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	if u.failedAttempts(ctx, req.Email) >= u.cfg.MaxLoginAttempts() {
		return nil, domain.ErrTooManyLoginAttempts
	}

	user, err := u.userRepo.FindOne(ctx, &domain.UserFilter{Email: &req.Email}, nil)
	if err != nil || user == nil {
		return nil, domain.ErrEmailNotExist
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	if !u.hasher.Compare(user.Password, req.Password) {
		u.recordFailedAttempt(ctx, req.Email)
		return nil, domain.ErrInvalidPassword
	}
	u.clearFailedAttempts(ctx, req.Email)

	if err := u.userRepo.UpdateFields(ctx, user.ID, map[string]any{
		"last_login_at": utils.NowUnixMillis(),
	}); err != nil {
		u.logger.WarnContext(ctx, "Could not record last login time",
			log.UserID(user.ID), log.Error(err))
	}

	return u.buildAuthResponse(ctx, user)
}

// RefreshToken trades a signature-valid but possibly expired token for a
// fresh one. The account is re-checked against the database first; a token
// alone never outlives a blocked or deleted account.
func (u *authUsecase) RefreshToken(ctx context.Context, token string) (*domain.AuthResponse, error) {
	claims, err := u.jwtProvider.Decode(token)
	if err != nil {
		return nil, domain.ErrRefreshRejected.WithWrap(err)
	}

	user, err := u.userRepo.FindByID(ctx, claims.SubjectID(), nil)
	if err != nil || user == nil {
		return nil, domain.ErrRefreshRejected.WithWrap(err)
	}
	if !user.IsActive() {
		return nil, domain.ErrRefreshRejected
	}

	return u.buildAuthResponse(ctx, user)
}

func (u *authUsecase) buildAuthResponse(ctx context.Context, user *domain.User) (*domain.AuthResponse, error) {
	token, expiresIn, err := u.jwtProvider.Generate(user)
	if err != nil {
		return nil, domain.ErrInternalServerError.WithWrap(err)
	}

	menus := u.menuResolver.ResolveMenus(ctx, user.RolePrivilegeIDs)

	return &domain.AuthResponse{
		Token:     token,
		Data:      user.Sanitize(),
		ExpiresIn: expiresIn,
		Menus:     menus,
	}, nil
}

func (u *authUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID, nil)
	if err != nil || user == nil {
		return nil, domain.ErrUserNotFound.WithWrap(err)
	}
	return user.Sanitize(), nil
}

// ForgotPassword answers success for unknown addresses too, so the
// endpoint cannot be used to enumerate registered emails.
func (u *authUsecase) ForgotPassword(ctx context.Context, req *domain.ForgotPasswordRequest) error {
	user, err := u.userRepo.FindOne(ctx, &domain.UserFilter{Email: &req.Email}, nil)
	if err != nil && !common.IsRecordNotFound(err) {
		return domain.ErrInfrastructure.WithWrap(err)
	}
	if user == nil {
		u.logger.InfoContext(ctx, "Password reset requested for unknown email",
			log.String("email", utils.MaskEmail(&req.Email)))
		return nil
	}

	token := uuid.NewString()
	expires := time.Now().Add(u.cfg.ResetTokenTTL()).UnixMilli()
	if err := u.userRepo.UpdateFields(ctx, user.ID, map[string]any{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}); err != nil {
		return domain.ErrInfrastructure.WithWrap(err)
	}

	resetLink := fmt.Sprintf("%s?token=%s", u.cfg.ResetPasswordURL(), token)
	msg := email.NewPasswordResetMessage(u.mailer.From(), user.Email, user.Name, resetLink, u.cfg.ResetTokenTTL())
	if err := u.mailer.Client().Send(ctx, msg); err != nil {
		u.logger.ErrorContext(ctx, "Could not send password reset email",
			log.UserID(user.ID), log.Error(err))
		return domain.ErrInternalServerError.WithWrap(err)
	}
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error {
	user, err := u.userRepo.FindOne(ctx, &domain.UserFilter{ResetToken: &req.Token}, nil)
	if err != nil || user == nil {
		return domain.ErrResetTokenInvalid
	}
	if user.ResetPasswordExpires < time.Now().UnixMilli() {
		return domain.ErrResetTokenInvalid
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		return domain.ErrPasswordHashFailed.WithWrap(err)
	}
	if err := u.userRepo.UpdateFields(ctx, user.ID, map[string]any{
		"password":               hashed,
		"reset_password_token":   "",
		"reset_password_expires": 0,
	}); err != nil {
		return domain.ErrInfrastructure.WithWrap(err)
	}

	u.clearFailedAttempts(ctx, user.Email)
	return nil
}
