package handler

import (
	"net/http"

	"autoquote/internal/authz"
	"autoquote/internal/middleware"
	"autoquote/internal/service"
	"autoquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type DirectSaleHandler struct {
	directSaleService service.DirectSaleService
	resolver          *authz.Resolver
}

func NewDirectSaleHandler(directSaleService service.DirectSaleService, resolver *authz.Resolver) *DirectSaleHandler {
	return &DirectSaleHandler{directSaleService: directSaleService, resolver: resolver}
}

func (h *DirectSaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/direct-sales")
	sales.Use(middleware.Authenticate())
	{
		// Reads stay open so the configurator can offer the programs.
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)

		writes := sales.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/direct-sales"))
		{
			writes.POST("", h.Create)
			writes.PUT("/:id", h.Update)
			writes.DELETE("/:id", h.Delete)
		}
	}
}

func (h *DirectSaleHandler) List(c *gin.Context) {
	sales, err := h.directSaleService.ListForBrand(c.Request.Context(), c.Query("brand_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sales))
}

func (h *DirectSaleHandler) Get(c *gin.Context) {
	sale, err := h.directSaleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

func (h *DirectSaleHandler) Create(c *gin.Context) {
	var req service.DirectSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.directSaleService.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

func (h *DirectSaleHandler) Update(c *gin.Context) {
	var req service.DirectSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.directSaleService.Update(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

func (h *DirectSaleHandler) Delete(c *gin.Context) {
	if err := h.directSaleService.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Direct sale deleted"}))
}
