package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/services"
)

// PaymentHandler handles payment confirmation requests
type PaymentHandler struct {
	payments *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes registers the handler's routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.GET("", h.List)
	payments.POST("", RequireCapability(domain.CapManagePayments), h.Confirm)
	payments.DELETE("/:id", RequireCapability(domain.CapManagePayments), h.Delete)
}

// List returns every payment confirmation
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.payments.All(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Confirm records a payment
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req domain.PaymentInput
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.payments.Confirm(c.Request.Context(), CurrentUser(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// Delete removes a payment confirmation
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.payments.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
