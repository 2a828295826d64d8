package api

import (
	"ecom-admin/common"
	"ecom-admin/domain"
	"ecom-admin/middleware"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	usecase     domain.UserUsecase
	middlewares middleware.Middlewares
}

func NewUserHandler(usecase domain.UserUsecase, middlewares middleware.Middlewares) *UserHandler {
	return &UserHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/users")
	user.Use(h.middlewares.AdminRateLimits())

	user.POST("", h.Create)
	user.GET("", h.List)
	user.GET("/:id", h.GetByID)
	user.PUT("/:id", h.Update)
	user.PATCH("/togglestatus/:id", h.ToggleStatus)
	user.DELETE("/:id", h.Delete)
	user.PATCH("/restore/:id", h.Restore)
	user.DELETE("/permanent/:id", h.PermanentDelete)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req domain.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	user, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, user, "User created successfully")
}

func (h *UserHandler) List(c *gin.Context) {
	var filter domain.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	var option domain.FindPageOption
	if err := c.ShouldBindQuery(&option); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	users, pagination, err := h.usecase.FindPage(c.Request.Context(), &filter, &option)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOKWithPagination(c, users, pagination, "Users found")
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "User found")
}

func (h *UserHandler) Update(c *gin.Context) {
	var req domain.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	if err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User updated successfully")
}

func (h *UserHandler) ToggleStatus(c *gin.Context) {
	if err := h.usecase.ToggleStatus(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User status toggled")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User deleted")
}

func (h *UserHandler) Restore(c *gin.Context) {
	if err := h.usecase.Restore(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User restored")
}

func (h *UserHandler) PermanentDelete(c *gin.Context) {
	if err := h.usecase.PermanentDelete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User permanently deleted")
}
