package api

import (
	"ecom-admin/common"
	"ecom-admin/domain"
	"ecom-admin/middleware"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	usecase     domain.RoleUsecase
	middlewares middleware.Middlewares
}

func NewRoleHandler(usecase domain.RoleUsecase, middlewares middleware.Middlewares) *RoleHandler {
	return &RoleHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	role := rg.Group("/roles")
	role.Use(h.middlewares.AdminRateLimits())

	role.POST("", h.Create)
	role.GET("", h.List)
	role.GET("/privilege-table", h.PrivilegeTable)
	role.GET("/:id", h.GetByID)
	role.PUT("/:id", h.Update)
	role.PATCH("/togglestatus/:id", h.ToggleStatus)
	role.DELETE("/:id", h.Delete)
	role.PATCH("/restore/:id", h.Restore)
	role.DELETE("/permanent/:id", h.PermanentDelete)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req domain.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	role, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, role, "Role created successfully")
}

func (h *RoleHandler) List(c *gin.Context) {
	var filter domain.RoleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	var option domain.FindPageOption
	if err := c.ShouldBindQuery(&option); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	roles, pagination, err := h.usecase.FindPage(c.Request.Context(), &filter, &option)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOKWithPagination(c, roles, pagination, "Roles found")
}

// PrivilegeTable returns the grantable menu groups for the role editing view.
func (h *RoleHandler) PrivilegeTable(c *gin.Context) {
	rows, err := h.usecase.PrivilegeTable(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, rows, "Privilege table found")
}

func (h *RoleHandler) GetByID(c *gin.Context) {
	detail, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, detail, "Role found")
}

func (h *RoleHandler) Update(c *gin.Context) {
	var req domain.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	if err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role updated successfully")
}

func (h *RoleHandler) ToggleStatus(c *gin.Context) {
	if err := h.usecase.ToggleStatus(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role status toggled")
}

func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role deleted")
}

func (h *RoleHandler) Restore(c *gin.Context) {
	if err := h.usecase.Restore(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role restored")
}

func (h *RoleHandler) PermanentDelete(c *gin.Context) {
	if err := h.usecase.PermanentDelete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role permanently deleted")
}
