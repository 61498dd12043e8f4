package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"example.com/backstage/services/campaign/internal/services"
)

// ExportHandler serves CSV downloads
type ExportHandler struct {
	exports *services.ExportService
	now     func() time.Time
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports *services.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports, now: time.Now}
}

// RegisterRoutes registers the handler's routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	export := rg.Group("/export")
	export.GET("/members.csv", h.Members)
	export.GET("/deliveries.csv", h.Deliveries)
	export.GET("/payments.csv", h.Payments)
}

// Members exports the members matching q
func (h *ExportHandler) Members(c *gin.Context) {
	term := c.Query("q")
	h.send(c, "team_members", func(ctx context.Context, w io.Writer) error {
		return h.exports.Members(ctx, w, term)
	})
}

// Deliveries exports every delivery
func (h *ExportHandler) Deliveries(c *gin.Context) {
	h.send(c, "deliveries", h.exports.Deliveries)
}

// Payments exports every payment confirmation
func (h *ExportHandler) Payments(c *gin.Context) {
	h.send(c, "payments", h.exports.Payments)
}

// send renders the whole file before writing so a failure still yields a JSON error
func (h *ExportHandler) send(c *gin.Context, name string, write func(ctx context.Context, w io.Writer) error) {
	var buf bytes.Buffer
	if err := write(c.Request.Context(), &buf); err != nil {
		WriteError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", name, h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
