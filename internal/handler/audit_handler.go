package handler

import (
	"net/http"

	"autoquote/internal/authz"
	"autoquote/internal/middleware"
	"autoquote/internal/service"
	"autoquote/pkg/pagination"
	"autoquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	resolver     *authz.Resolver
}

func NewAuditHandler(auditService service.AuditService, resolver *authz.Resolver) *AuditHandler {
	return &AuditHandler{auditService: auditService, resolver: resolver}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit")
	audit.Use(middleware.Authenticate(), middleware.RequireAccess(h.resolver, "/audit"))
	{
		audit.GET("", h.List)
	}
}

func (h *AuditHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	logs, total, err := h.auditService.List(c.Request.Context(), c.Query("action"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessList(http.StatusOK, logs, p.Page, p.Limit, total))
}
