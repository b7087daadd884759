package handler

import (
	"errors"
	"net/http"

	"autoquote/internal/authz"
	"autoquote/internal/middleware"
	"autoquote/internal/model"
	"autoquote/internal/service"
	"autoquote/pkg/pagination"
	"autoquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService service.QuoteService
	resolver     *authz.Resolver
}

func NewQuoteHandler(quoteService service.QuoteService, resolver *authz.Resolver) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, resolver: resolver}
}

func (h *QuoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotes := router.Group("/api/quotes")
	quotes.Use(middleware.Authenticate(), middleware.RequireAccess(h.resolver, "/quotes"))
	{
		quotes.POST("", h.Issue)
		quotes.GET("", h.List)
		quotes.GET("/:id", h.Get)
	}
}

// Issue freezes a configurator session into a numbered quote.
func (h *QuoteHandler) Issue(c *gin.Context) {
	var req service.IssueQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quote, err := h.quoteService.Issue(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, quote))
}

func (h *QuoteHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	// Non-administrators only see their own quotes.
	userFilter := c.Query("user_id")
	if middleware.UserRole(c) != model.RoleAdministrator {
		userFilter = middleware.UserID(c)
	}

	quotes, total, err := h.quoteService.List(c.Request.Context(), userFilter, c.Query("status"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessList(http.StatusOK, quotes, p.Page, p.Limit, total))
}

func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.quoteService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	// Same ownership rule as List.
	if middleware.UserRole(c) != model.RoleAdministrator &&
		quote.UserID != "" && quote.UserID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}
