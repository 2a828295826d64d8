package middleware

import (
	"ecom-admin/pkg/cache"
	"ecom-admin/pkg/log"

	"github.com/gin-gonic/gin"
)

// Middlewares is the http cross-cutting layer: correlation, logging,
// CORS, throttling and the access guard.
type Middlewares interface {
	RateLimitWithLogger(config ...RateLimitConfig) gin.HandlerFunc
	AuthRateLimits() gin.HandlerFunc
	AdminRateLimits() gin.HandlerFunc

	LoggingMiddleware(config ...LoggerConfig) gin.HandlerFunc
	RequestIDMiddleware() gin.HandlerFunc

	CORSWithLogger(config ...CORSConfig) gin.HandlerFunc

	AccessGuard() gin.HandlerFunc
}

// Dependencies holds everything the middleware layer needs.
type Dependencies struct {
	Cache       cache.Client
	Logger      log.Logger
	JwtProvider JwtProvider
	UserRepo    UserRepository
	RoleRepo    RoleRepository
}

func NewMiddlewares(deps Dependencies) Middlewares {
	return &middlewares{
		cache:       deps.Cache,
		logger:      deps.Logger,
		jwtProvider: deps.JwtProvider,
		userRepo:    deps.UserRepo,
		roleRepo:    deps.RoleRepo,
	}
}

type middlewares struct {
	cache       cache.Client
	logger      log.Logger
	jwtProvider JwtProvider
	userRepo    UserRepository
	roleRepo    RoleRepository
}
