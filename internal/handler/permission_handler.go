package handler

import (
	"net/http"

	"autoquote/internal/authz"
	"autoquote/internal/middleware"
	"autoquote/internal/service"
	"autoquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	permissionService service.PermissionService
	resolver          *authz.Resolver
}

func NewPermissionHandler(permissionService service.PermissionService, resolver *authz.Resolver) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService, resolver: resolver}
}

func (h *PermissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	perms := router.Group("/api/permissions")
	perms.Use(middleware.Authenticate())
	{
		// Every signed-in user may ask what they can reach; it drives the menu.
		perms.GET("/me", h.MyAccess)
		perms.GET("/check", h.Check)

		admin := perms.Group("")
		admin.Use(middleware.RequireAccess(h.resolver, authz.PathPermissions))
		{
			admin.GET("/matrix", h.Matrix)
			admin.GET("/overrides", h.ListOverrides)
			admin.PUT("/overrides", h.SetOverride)
			admin.DELETE("/overrides", h.RemoveOverride)
		}
	}
}

// MyAccess lists the default-table entries the caller's role can reach.
func (h *PermissionHandler) MyAccess(c *gin.Context) {
	actions := h.permissionService.AccessibleActions(c.Request.Context(), middleware.UserRole(c))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, actions))
}

// Check answers a single can-I question for the caller's role.
func (h *PermissionHandler) Check(c *gin.Context) {
	actionKey := c.Query("action")
	if actionKey == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "action query parameter is required"))
		return
	}

	allowed := h.permissionService.CheckAccess(c.Request.Context(), actionKey, middleware.UserRole(c))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"action": actionKey, "allowed": allowed}))
}

func (h *PermissionHandler) Matrix(c *gin.Context) {
	matrix, err := h.permissionService.EffectiveMatrix(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, matrix))
}

func (h *PermissionHandler) ListOverrides(c *gin.Context) {
	overrides, err := h.permissionService.ListOverrides(c.Request.Context(), c.Query("role"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, overrides))
}

func (h *PermissionHandler) SetOverride(c *gin.Context) {
	var req service.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	override, err := h.permissionService.SetOverride(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, override))
}

func (h *PermissionHandler) RemoveOverride(c *gin.Context) {
	roleName := c.Query("role")
	permissionKey := c.Query("key")
	if roleName == "" || permissionKey == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "role and key query parameters are required"))
		return
	}

	if err := h.permissionService.RemoveOverride(c.Request.Context(), roleName, permissionKey, middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Override removed"}))
}
