package handler

import (
	"errors"
	"net/http"

	"autoquote/internal/authz"
	"autoquote/internal/middleware"
	"autoquote/internal/service"
	"autoquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type ConfiguratorHandler struct {
	configuratorService service.ConfiguratorService
	resolver            *authz.Resolver
}

func NewConfiguratorHandler(configuratorService service.ConfiguratorService, resolver *authz.Resolver) *ConfiguratorHandler {
	return &ConfiguratorHandler{configuratorService: configuratorService, resolver: resolver}
}

func (h *ConfiguratorHandler) RegisterRoutes(router *gin.RouterGroup) {
	cfg := router.Group("/api/configurator")
	cfg.Use(middleware.Authenticate(), middleware.RequireAccess(h.resolver, authz.PathConfigurator))
	{
		cfg.POST("/sessions", h.StartSession)
		cfg.GET("/sessions/:id", h.GetSession)
		cfg.DELETE("/sessions/:id", h.EndSession)

		cfg.PUT("/sessions/:id/brand/:brandId", h.SelectBrand)
		cfg.PUT("/sessions/:id/model/:modelId", h.SelectModel)
		cfg.PUT("/sessions/:id/version/:versionId", h.SelectVersion)
		cfg.PUT("/sessions/:id/color/:colorId", h.SelectColor)
		cfg.POST("/sessions/:id/optionals", h.ToggleOptional)
		cfg.PUT("/sessions/:id/discount", h.SetDiscount)
		cfg.PUT("/sessions/:id/markup", h.SetMarkup)
		cfg.PUT("/sessions/:id/quantity", h.SetQuantity)
		cfg.PUT("/sessions/:id/tier", h.SelectTier)
		cfg.PUT("/sessions/:id/direct-sale", h.SelectDirectSale)
	}
}

func (h *ConfiguratorHandler) StartSession(c *gin.Context) {
	state, err := h.configuratorService.StartSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, state))
}

func (h *ConfiguratorHandler) GetSession(c *gin.Context) {
	state, err := h.configuratorService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) EndSession(c *gin.Context) {
	if err := h.configuratorService.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Session closed"}))
}

func (h *ConfiguratorHandler) SelectBrand(c *gin.Context) {
	state, err := h.configuratorService.SelectBrand(c.Request.Context(), c.Param("id"), c.Param("brandId"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SelectModel(c *gin.Context) {
	state, err := h.configuratorService.SelectModel(c.Request.Context(), c.Param("id"), c.Param("modelId"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SelectVersion(c *gin.Context) {
	state, err := h.configuratorService.SelectVersion(c.Request.Context(), c.Param("id"), c.Param("versionId"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SelectColor(c *gin.Context) {
	state, err := h.configuratorService.SelectColor(c.Request.Context(), c.Param("id"), c.Param("colorId"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) ToggleOptional(c *gin.Context) {
	var req service.SelectOptionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	state, err := h.configuratorService.ToggleOptional(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SetDiscount(c *gin.Context) {
	var req service.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	state, err := h.configuratorService.SetDiscount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SetMarkup(c *gin.Context) {
	var req service.MarkupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	state, err := h.configuratorService.SetMarkup(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SetQuantity(c *gin.Context) {
	var req service.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	state, err := h.configuratorService.SetQuantity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SelectTier(c *gin.Context) {
	var req service.TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	state, err := h.configuratorService.SelectTier(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) SelectDirectSale(c *gin.Context) {
	var req service.DirectSaleSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	state, err := h.configuratorService.SelectDirectSale(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, state))
}

func (h *ConfiguratorHandler) sessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}
