package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/services"
)

// DeliveryHandler handles product shipment requests
type DeliveryHandler struct {
	deliveries *services.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveries *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// RegisterRoutes registers the handler's routes
func (h *DeliveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deliveries := rg.Group("/deliveries")
	deliveries.GET("", h.List)
	deliveries.GET("/:id", h.Get)
	deliveries.POST("", RequireCapability(domain.CapAddDeliveries), h.Create)
	deliveries.PUT("/:id", h.Update)
	deliveries.DELETE("/:id", h.Delete)
}

// List returns every delivery
func (h *DeliveryHandler) List(c *gin.Context) {
	deliveries, err := h.deliveries.All(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// Get returns one delivery
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	delivery, err := h.deliveries.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// Create records a delivery
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req domain.DeliveryInput
	if !bindJSON(c, &req) {
		return
	}

	delivery, err := h.deliveries.Create(c.Request.Context(), CurrentUser(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

// Update replaces a delivery's fields
func (h *DeliveryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req domain.DeliveryInput
	if !bindJSON(c, &req) {
		return
	}

	delivery, err := h.deliveries.Update(c.Request.Context(), CurrentUser(c), id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// Delete removes a delivery
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deliveries.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
