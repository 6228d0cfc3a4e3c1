package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feralclo/release-engine/internal/domain"
	"github.com/feralclo/release-engine/internal/dto"
	"github.com/feralclo/release-engine/internal/service"
	"github.com/feralclo/release-engine/pkg/response"
)

// TierHandler handles ticket tier HTTP requests
type TierHandler struct {
	tierService service.TierService
}

// NewTierHandler creates a new TierHandler
func NewTierHandler(tierService service.TierService) *TierHandler {
	return &TierHandler{
		tierService: tierService,
	}
}

// List handles GET /events/:id/tiers - lists the event's tiers with
// derived gating state
func (h *TierHandler) List(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	tiers, err := h.tierService.ListTiers(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list tiers"))
		return
	}

	c.JSON(http.StatusOK, response.Success(tiers))
}

// Create handles POST /events/:id/tiers - creates a new tier
func (h *TierHandler) Create(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	var req dto.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	tier, err := h.tierService.CreateTier(c.Request.Context(), eventID, &req)
	if err != nil {
		writeTierError(c, err, "Failed to create tier")
		return
	}

	c.JSON(http.StatusCreated, response.Success(tier))
}

// Update handles PATCH /events/:id/tiers/:tierID - updates a tier's details
func (h *TierHandler) Update(c *gin.Context) {
	eventID := c.Param("id")
	tierID := c.Param("tierID")
	if eventID == "" || tierID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and tier ID are required"))
		return
	}

	var req dto.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	tier, err := h.tierService.UpdateTier(c.Request.Context(), eventID, tierID, &req)
	if err != nil {
		writeTierError(c, err, "Failed to update tier")
		return
	}

	c.JSON(http.StatusOK, response.Success(tier))
}

// SetStatus handles PUT /events/:id/tiers/:tierID/status - applies an
// operator status edit
func (h *TierHandler) SetStatus(c *gin.Context) {
	eventID := c.Param("id")
	tierID := c.Param("tierID")
	if eventID == "" || tierID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and tier ID are required"))
		return
	}

	var req dto.SetTierStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	tier, err := h.tierService.SetTierStatus(c.Request.Context(), eventID, tierID, req.Status)
	if err != nil {
		writeTierError(c, err, "Failed to set tier status")
		return
	}

	c.JSON(http.StatusOK, response.Success(tier))
}

// AssignGroup handles PUT /events/:id/tiers/:tierID/group - reassigns a
// tier's group. A null group sends the tier back to the ungrouped pool.
func (h *TierHandler) AssignGroup(c *gin.Context) {
	eventID := c.Param("id")
	tierID := c.Param("tierID")
	if eventID == "" || tierID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and tier ID are required"))
		return
	}

	var req dto.AssignGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if err := h.tierService.AssignTierGroup(c.Request.Context(), eventID, tierID, req.Group); err != nil {
		writeTierError(c, err, "Failed to assign tier group")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]interface{}{"tier_id": tierID, "group": req.Group}))
}

// Delete handles DELETE /events/:id/tiers/:tierID - removes a tier.
// Tiers with recorded sales require ?confirm=true.
func (h *TierHandler) Delete(c *gin.Context) {
	eventID := c.Param("id")
	tierID := c.Param("tierID")
	if eventID == "" || tierID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and tier ID are required"))
		return
	}

	confirmed := c.Query("confirm") == "true"

	if err := h.tierService.RemoveTier(c.Request.Context(), eventID, tierID, confirmed); err != nil {
		writeTierError(c, err, "Failed to delete tier")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Tier deleted successfully"}))
}

// Reorder handles POST /events/:id/tiers/reorder - moves a tier within
// the flattened list
func (h *TierHandler) Reorder(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	var req dto.ReorderTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.tierService.ReorderTier(c.Request.Context(), eventID, req.From, req.To); err != nil {
		writeTierError(c, err, "Failed to reorder tier")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]int{"from": req.From, "to": req.To}))
}

// GetAvailability handles GET /events/:id/availability - the public
// buyer-facing payload
func (h *TierHandler) GetAvailability(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	availability, err := h.tierService.GetAvailability(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to get availability"))
		return
	}

	c.JSON(http.StatusOK, response.Success(availability))
}

// writeTierError maps domain errors to HTTP responses
func writeTierError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrTierNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Tier not found"))
	case errors.Is(err, domain.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Group not found"))
	case errors.Is(err, domain.ErrConfirmRequired):
		c.JSON(http.StatusConflict, response.ConfirmRequired("Tier has recorded sales; pass confirm=true to delete"))
	case errors.Is(err, domain.ErrInvalidTierStatus):
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid tier status"))
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid tier status transition"))
	case errors.Is(err, domain.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, response.BadRequest("Tier index out of range"))
	default:
		c.JSON(http.StatusInternalServerError, response.InternalError(fallback))
	}
}
