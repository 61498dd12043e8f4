package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/services"
)

// MemberHandler handles advertiser requests
type MemberHandler struct {
	team *services.TeamService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(team *services.TeamService) *MemberHandler {
	return &MemberHandler{team: team}
}

// ProgressRequest replaces the whole progress array of a member
type ProgressRequest struct {
	ProgressChecks []bool `json:"progress_checks"`
}

// RegisterRoutes registers the handler's routes
func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	members.GET("", h.List)
	members.GET("/search", h.Search)
	members.GET("/:id", h.Get)
	members.POST("", RequireCapability(domain.CapRegisterMembers), h.Register)
	members.PUT("/:id", h.Update)
	members.DELETE("/:id", RequireCapability(domain.CapRegisterMembers), h.Delete)
	members.POST("/:id/progress/:index/toggle", h.ToggleProgress)
	members.PUT("/:id/progress", h.SetProgress)
	members.POST("/:id/progress/reset", h.ResetProgress)
}

// List returns the members whose description or ad types contain q
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.team.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// Search queries the search index for q
func (h *MemberHandler) Search(c *gin.Context) {
	members, err := h.team.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// Get returns one member
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	member, err := h.team.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// Register creates a member
func (h *MemberHandler) Register(c *gin.Context) {
	var req domain.Registration
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.team.Register(c.Request.Context(), CurrentUser(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// Update edits a member's descriptive fields
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req domain.MemberUpdate
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.team.Update(c.Request.Context(), CurrentUser(c), id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// Delete removes a member
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.team.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleProgress flips one video
func (h *MemberHandler) ToggleProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		WriteError(c, invalidRequest("index must be an integer"))
		return
	}

	member, err := h.team.ToggleProgress(c.Request.Context(), CurrentUser(c), id, index)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// SetProgress replaces the progress array
func (h *MemberHandler) SetProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.team.SetProgress(c.Request.Context(), CurrentUser(c), id, req.ProgressChecks)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// ResetProgress unchecks every video
func (h *MemberHandler) ResetProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	member, err := h.team.ResetProgress(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// pathID parses the :id parameter, writing a 400 when it is not a UUID
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		WriteError(c, invalidRequest("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, writing a 400 when it is malformed
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		WriteError(c, invalidRequest("Invalid request body: "+err.Error()))
		return false
	}
	return true
}
