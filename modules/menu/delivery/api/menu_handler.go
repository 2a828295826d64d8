package api

import (
	"ecom-admin/common"
	"ecom-admin/domain"
	"ecom-admin/middleware"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	usecase     domain.MenuUsecase
	middlewares middleware.Middlewares
}

func NewMenuHandler(usecase domain.MenuUsecase, middlewares middleware.Middlewares) *MenuHandler {
	return &MenuHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	menu := rg.Group("/menus")
	menu.Use(h.middlewares.AdminRateLimits())

	menu.POST("", h.CreateMenu)
	menu.GET("", h.ListMenus)
	menu.PUT("/:id", h.UpdateMenu)
	menu.PATCH("/togglestatus/:id", h.ToggleMenuStatus)
	menu.DELETE("/:id", h.DeleteMenu)
	menu.PATCH("/restore/:id", h.RestoreMenu)
	menu.DELETE("/permanent/:id", h.PermanentDeleteMenu)

	submenu := rg.Group("/submenus")
	submenu.Use(h.middlewares.AdminRateLimits())

	submenu.POST("", h.CreateSubmenu)
	submenu.GET("", h.ListSubmenus)
	submenu.PUT("/:id", h.UpdateSubmenu)
	submenu.DELETE("/:id", h.DeleteSubmenu)

	permission := rg.Group("/menu-permissions")
	permission.Use(h.middlewares.AdminRateLimits())

	permission.POST("", h.CreateMenuPermission)
	permission.GET("", h.ListMenuPermissions)
	permission.DELETE("/:id", h.DeleteMenuPermission)

	group := rg.Group("/menu-groups")
	group.Use(h.middlewares.AdminRateLimits())

	group.POST("", h.CreateMenuGroup)
	group.GET("", h.ListMenuGroups)
	group.DELETE("/:id", h.DeleteMenuGroup)
}

func (h *MenuHandler) CreateMenu(c *gin.Context) {
	var req domain.MenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	menu, err := h.usecase.CreateMenu(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, menu, "Menu created successfully")
}

func (h *MenuHandler) ListMenus(c *gin.Context) {
	var filter domain.MenuFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	var option domain.FindPageOption
	if err := c.ShouldBindQuery(&option); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	menus, pagination, err := h.usecase.FindMenuPage(c.Request.Context(), &filter, &option)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOKWithPagination(c, menus, pagination, "Menus found")
}

func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	var req domain.MenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	if err := h.usecase.UpdateMenu(c.Request.Context(), c.Param("id"), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu updated successfully")
}

func (h *MenuHandler) ToggleMenuStatus(c *gin.Context) {
	if err := h.usecase.ToggleMenuStatus(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu status toggled")
}

func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	if err := h.usecase.DeleteMenu(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu deleted")
}

func (h *MenuHandler) RestoreMenu(c *gin.Context) {
	if err := h.usecase.RestoreMenu(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu restored")
}

func (h *MenuHandler) PermanentDeleteMenu(c *gin.Context) {
	if err := h.usecase.PermanentDeleteMenu(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu permanently deleted")
}

func (h *MenuHandler) CreateSubmenu(c *gin.Context) {
	var req domain.SubmenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	submenu, err := h.usecase.CreateSubmenu(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, submenu, "Submenu created successfully")
}

func (h *MenuHandler) ListSubmenus(c *gin.Context) {
	var filter domain.SubmenuFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	var option domain.FindPageOption
	if err := c.ShouldBindQuery(&option); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	submenus, pagination, err := h.usecase.FindSubmenuPage(c.Request.Context(), &filter, &option)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOKWithPagination(c, submenus, pagination, "Submenus found")
}

func (h *MenuHandler) UpdateSubmenu(c *gin.Context) {
	var req domain.SubmenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	if err := h.usecase.UpdateSubmenu(c.Request.Context(), c.Param("id"), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Submenu updated successfully")
}

func (h *MenuHandler) DeleteSubmenu(c *gin.Context) {
	if err := h.usecase.DeleteSubmenu(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Submenu deleted")
}

func (h *MenuHandler) CreateMenuPermission(c *gin.Context) {
	var req domain.MenuPermissionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	permission, err := h.usecase.CreateMenuPermission(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, permission, "Menu permission created successfully")
}

func (h *MenuHandler) ListMenuPermissions(c *gin.Context) {
	var filter domain.MenuPermissionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	var option domain.FindPageOption
	if err := c.ShouldBindQuery(&option); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	permissions, pagination, err := h.usecase.FindMenuPermissionPage(c.Request.Context(), &filter, &option)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOKWithPagination(c, permissions, pagination, "Menu permissions found")
}

func (h *MenuHandler) DeleteMenuPermission(c *gin.Context) {
	if err := h.usecase.DeleteMenuPermission(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu permission deleted")
}

func (h *MenuHandler) CreateMenuGroup(c *gin.Context) {
	var req domain.MenuGroupCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	group, err := h.usecase.CreateMenuGroup(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, group, "Menu group created successfully")
}

func (h *MenuHandler) ListMenuGroups(c *gin.Context) {
	var filter domain.MenuGroupFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	var option domain.FindPageOption
	if err := c.ShouldBindQuery(&option); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	groups, pagination, err := h.usecase.FindMenuGroupPage(c.Request.Context(), &filter, &option)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOKWithPagination(c, groups, pagination, "Menu groups found")
}

func (h *MenuHandler) DeleteMenuGroup(c *gin.Context) {
	if err := h.usecase.DeleteMenuGroup(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu group deleted")
}
