package api

import (
	"strings"
	"time"

	"ecom-admin/common"
	"ecom-admin/domain"
	"ecom-admin/middleware"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	usecase     domain.AuthUsecase
	middlewares middleware.Middlewares
}

func NewAuthHandler(
	usecase domain.AuthUsecase,
	middlewares middleware.Middlewares,
) *AuthHandler {
	return &AuthHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/login", h.middlewares.AuthRateLimits(), h.Login)
	auth.POST("/refresh", h.refreshRateLimit(), h.Refresh)
	auth.POST("/forgot-password", h.middlewares.AuthRateLimits(), h.ForgotPassword)
	auth.POST("/reset-password", h.middlewares.AuthRateLimits(), h.ResetPassword)

	auth.GET("/me", h.Me)
}

// refreshRateLimit throttles token refresh per client.
func (h *AuthHandler) refreshRateLimit() gin.HandlerFunc {
	return h.middlewares.RateLimitWithLogger(middleware.RateLimitConfig{
		WindowSize:  1 * time.Minute,
		MaxRequests: 5,
		KeyPrefix:   "refresh_token:",
		KeyGenerator: func(c *gin.Context) string {
			return c.ClientIP()
		},
		HeaderRemainingRequests: "X-RateLimit-Remaining",
		HeaderRetryAfter:        "X-RateLimit-Retry-After",
		HeaderRateLimit:         "X-RateLimit-Limit",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	req.IPAddress = common.GetClientIP(c)

	resp, err := h.usecase.Login(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, resp, "Login successful")
}

type refreshRequest struct {
	Token string `json:"token"`
}

// Refresh accepts the expired token either in the body or as the usual
// bearer header.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.Token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			req.Token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if req.Token == "" {
		common.ResponseError(c, domain.ErrTokenMissing)
		return
	}

	resp, err := h.usecase.RefreshToken(c.Request.Context(), req.Token)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, resp, "Token refreshed")
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity := common.GetIdentityFromCtx(c)
	if identity == nil {
		common.ResponseError(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.usecase.Me(c.Request.Context(), identity.ID)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "User found")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req domain.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	if err := h.usecase.ForgotPassword(c.Request.Context(), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Password reset email sent")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req domain.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	if err := h.usecase.ResetPassword(c.Request.Context(), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Password has been reset")
}
