package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homeshine-platform/service-booking/internal/application"
	"github.com/homeshine-platform/service-booking/internal/auth"
	"github.com/homeshine-platform/service-booking/internal/domain/booking"
	"github.com/homeshine-platform/service-booking/internal/middleware"
	"github.com/homeshine-platform/service-booking/internal/response"
)

// CatalogHandler handles HTTP requests for the bookable service catalog.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes. Reads are open to any authenticated
// user; writes are admin only.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminMW := middleware.RequireRole(booking.RoleAdmin)

	services := r.Group("/api/v1/services")
	services.Use(authMW)
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.POST("", adminMW, h.CreateService)
		services.PUT("/:id", adminMW, h.UpdateService)
		services.DELETE("/:id", adminMW, h.ArchiveService)
	}
}

// ListServices handles GET /api/v1/services. Admins see archived services too
// with ?all=true.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	if c.Query("all") == "true" {
		role, _ := middleware.GetUserRole(c)
		if role == booking.RoleAdmin {
			items, err := h.service.ListAllServices(c.Request.Context())
			if err != nil {
				response.Error(c, err)
				return
			}
			response.Success(c, items)
			return
		}
	}

	items, err := h.service.ListActiveServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// GetService handles GET /api/v1/services/:id.
func (h *CatalogHandler) GetService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}

	result, err := h.service.GetService(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateService handles POST /api/v1/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req application.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateService handles PUT /api/v1/services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}

	var req application.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateService(c.Request.Context(), serviceID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ArchiveService handles DELETE /api/v1/services/:id.
func (h *CatalogHandler) ArchiveService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}

	if err := h.service.ArchiveService(c.Request.Context(), serviceID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"archived": true})
}
