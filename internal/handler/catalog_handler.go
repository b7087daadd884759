package handler

import (
	"net/http"

	"autoquote/internal/authz"
	"autoquote/internal/middleware"
	"autoquote/internal/service"
	"autoquote/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	resolver       *authz.Resolver
}

func NewCatalogHandler(catalogService service.CatalogService, resolver *authz.Resolver) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, resolver: resolver}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	brands := router.Group("/api/brands")
	brands.Use(middleware.Authenticate())
	{
		// Reads are open to any authenticated role so the configurator can
		// drive its pick lists.
		brands.GET("", h.ListBrands)
		writes := brands.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/brands"))
		{
			writes.POST("", h.CreateBrand)
			writes.PUT("/:id", h.UpdateBrand)
			writes.DELETE("/:id", h.DeleteBrand)
		}
	}

	models := router.Group("/api/models")
	models.Use(middleware.Authenticate())
	{
		models.GET("", h.ListModels)
		writes := models.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/models"))
		{
			writes.POST("", h.CreateModel)
			writes.PUT("/:id", h.UpdateModel)
			writes.DELETE("/:id", h.DeleteModel)
		}
	}

	versions := router.Group("/api/versions")
	versions.Use(middleware.Authenticate())
	{
		versions.GET("", h.ListVersions)
		writes := versions.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/versions"))
		{
			writes.POST("", h.CreateVersion)
			writes.PUT("/:id", h.UpdateVersion)
			writes.DELETE("/:id", h.DeleteVersion)
		}
	}

	colors := router.Group("/api/colors")
	colors.Use(middleware.Authenticate())
	{
		colors.GET("", h.ListColors)
		writes := colors.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/colors"))
		{
			writes.POST("", h.CreateColor)
			writes.PUT("/:id", h.UpdateColor)
			writes.DELETE("/:id", h.DeleteColor)
		}
	}

	optionals := router.Group("/api/optionals")
	optionals.Use(middleware.Authenticate())
	{
		optionals.GET("", h.ListOptionals)
		writes := optionals.Group("")
		writes.Use(middleware.RequireAccess(h.resolver, "/optionals"))
		{
			writes.POST("", h.CreateOptional)
			writes.PUT("/:id", h.UpdateOptional)
			writes.DELETE("/:id", h.DeleteOptional)
		}
	}
}

// --- Brands ---

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, brands))
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req service.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	brand, err := h.catalogService.CreateBrand(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, brand))
}

func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	var req service.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	brand, err := h.catalogService.UpdateBrand(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, brand))
}

func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	if err := h.catalogService.DeleteBrand(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Brand deleted"}))
}

// --- Models ---

func (h *CatalogHandler) ListModels(c *gin.Context) {
	models, err := h.catalogService.ListModels(c.Request.Context(), c.Query("brand_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, models))
}

func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var req service.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	m, err := h.catalogService.CreateModel(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, m))
}

func (h *CatalogHandler) UpdateModel(c *gin.Context) {
	var req service.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	m, err := h.catalogService.UpdateModel(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, m))
}

func (h *CatalogHandler) DeleteModel(c *gin.Context) {
	if err := h.catalogService.DeleteModel(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Model deleted"}))
}

// --- Versions ---

func (h *CatalogHandler) ListVersions(c *gin.Context) {
	versions, err := h.catalogService.ListVersions(c.Request.Context(), c.Query("model_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, versions))
}

func (h *CatalogHandler) CreateVersion(c *gin.Context) {
	var req service.VersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	v, err := h.catalogService.CreateVersion(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, v))
}

func (h *CatalogHandler) UpdateVersion(c *gin.Context) {
	var req service.VersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	v, err := h.catalogService.UpdateVersion(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, v))
}

func (h *CatalogHandler) DeleteVersion(c *gin.Context) {
	if err := h.catalogService.DeleteVersion(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Version deleted"}))
}

// --- Colors ---

func (h *CatalogHandler) ListColors(c *gin.Context) {
	colors, err := h.catalogService.ListColors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, colors))
}

func (h *CatalogHandler) CreateColor(c *gin.Context) {
	var req service.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	color, err := h.catalogService.CreateColor(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, color))
}

func (h *CatalogHandler) UpdateColor(c *gin.Context) {
	var req service.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	color, err := h.catalogService.UpdateColor(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, color))
}

func (h *CatalogHandler) DeleteColor(c *gin.Context) {
	if err := h.catalogService.DeleteColor(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Color deleted"}))
}

// --- Optionals ---

func (h *CatalogHandler) ListOptionals(c *gin.Context) {
	optionals, err := h.catalogService.ListOptionals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, optionals))
}

func (h *CatalogHandler) CreateOptional(c *gin.Context) {
	var req service.OptionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	o, err := h.catalogService.CreateOptional(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, o))
}

func (h *CatalogHandler) UpdateOptional(c *gin.Context) {
	var req service.OptionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	o, err := h.catalogService.UpdateOptional(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, o))
}

func (h *CatalogHandler) DeleteOptional(c *gin.Context) {
	if err := h.catalogService.DeleteOptional(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Optional deleted"}))
}
