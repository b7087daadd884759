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

type VehicleHandler struct {
	vehicleService service.VehicleService
	resolver       *authz.Resolver
}

func NewVehicleHandler(vehicleService service.VehicleService, resolver *authz.Resolver) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, resolver: resolver}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	vehicles := router.Group("/api/vehicles")
	vehicles.Use(middleware.Authenticate())
	{
		vehicles.GET("", h.List)
		vehicles.GET("/:id", h.Get)

		writes := vehicles.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/vehicles"))
		{
			writes.POST("", h.Create)
			writes.PUT("/:id", h.Update)
			writes.DELETE("/:id", h.Delete)
		}
	}

	// Per-version pricing associations live under the version they price.
	versions := router.Group("/api/versions/:id")
	versions.Use(middleware.Authenticate())
	{
		versions.GET("/colors", h.ListVersionColors)
		versions.GET("/optionals", h.ListVersionOptionals)

		writes := versions.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/vehicles"))
		{
			writes.PUT("/colors", h.SetVersionColor)
			writes.DELETE("/colors/:colorId", h.RemoveVersionColor)
			writes.PUT("/optionals", h.SetVersionOptional)
			writes.DELETE("/optionals/:optionalId", h.RemoveVersionOptional)
		}
	}
}

func (h *VehicleHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	vehicles, total, err := h.vehicleService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessList(http.StatusOK, vehicles, p.Page, p.Limit, total))
}

func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req service.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vehicle))
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var req service.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleService.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Vehicle deleted"}))
}

func (h *VehicleHandler) ListVersionColors(c *gin.Context) {
	colors, err := h.vehicleService.ListVersionColors(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, colors))
}

func (h *VehicleHandler) SetVersionColor(c *gin.Context) {
	var req service.VersionColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vc, err := h.vehicleService.SetVersionColor(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vc))
}

func (h *VehicleHandler) RemoveVersionColor(c *gin.Context) {
	err := h.vehicleService.RemoveVersionColor(c.Request.Context(), c.Param("id"), c.Param("colorId"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Color pricing removed"}))
}

func (h *VehicleHandler) ListVersionOptionals(c *gin.Context) {
	optionals, err := h.vehicleService.ListVersionOptionals(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, optionals))
}

func (h *VehicleHandler) SetVersionOptional(c *gin.Context) {
	var req service.VersionOptionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vo, err := h.vehicleService.SetVersionOptional(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vo))
}

func (h *VehicleHandler) RemoveVersionOptional(c *gin.Context) {
	err := h.vehicleService.RemoveVersionOptional(c.Request.Context(), c.Param("id"), c.Param("optionalId"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Optional pricing removed"}))
}
