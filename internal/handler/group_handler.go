package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feralclo/release-engine/internal/domain"
	"github.com/feralclo/release-engine/internal/dto"
	"github.com/feralclo/release-engine/internal/release"
	"github.com/feralclo/release-engine/internal/service"
	"github.com/feralclo/release-engine/pkg/response"
)

// GroupHandler handles ticket group HTTP requests
type GroupHandler struct {
	groupService service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// List handles GET /events/:id/groups - lists the event's group registry
func (h *GroupHandler) List(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	groups, err := h.groupService.ListGroups(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list groups"))
		return
	}

	c.JSON(http.StatusOK, response.Success(groups))
}

// Create handles POST /events/:id/groups - creates a new ticket group
func (h *GroupHandler) Create(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.groupService.CreateGroup(c.Request.Context(), eventID, req.Name); err != nil {
		writeGroupError(c, err, "Failed to create group")
		return
	}

	c.JSON(http.StatusCreated, response.Success(map[string]string{"name": req.Name}))
}

// Rename handles PATCH /events/:id/groups/:name - renames a group
func (h *GroupHandler) Rename(c *gin.Context) {
	eventID := c.Param("id")
	name := c.Param("name")
	if eventID == "" || name == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and group name are required"))
		return
	}

	var req dto.RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.groupService.RenameGroup(c.Request.Context(), eventID, name, req.Name); err != nil {
		writeGroupError(c, err, "Failed to rename group")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]string{"name": req.Name}))
}

// Delete handles DELETE /events/:id/groups/:name - deletes a group.
// Tiers in the group are sent back to the ungrouped pool.
func (h *GroupHandler) Delete(c *gin.Context) {
	eventID := c.Param("id")
	name := c.Param("name")
	if eventID == "" || name == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and group name are required"))
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), eventID, name); err != nil {
		writeGroupError(c, err, "Failed to delete group")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Group deleted successfully"}))
}

// Move handles POST /events/:id/groups/:name/move - moves a group up or down
func (h *GroupHandler) Move(c *gin.Context) {
	eventID := c.Param("id")
	name := c.Param("name")
	if eventID == "" || name == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and group name are required"))
		return
	}

	var req dto.MoveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.groupService.MoveGroup(c.Request.Context(), eventID, name, release.Direction(req.Direction)); err != nil {
		writeGroupError(c, err, "Failed to move group")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]string{"name": name, "direction": req.Direction}))
}

// SetReleaseMode handles PUT /events/:id/groups/:name/release-mode.
// The reserved name "ungrouped" targets the ungrouped pool.
func (h *GroupHandler) SetReleaseMode(c *gin.Context) {
	eventID := c.Param("id")
	name := c.Param("name")
	if eventID == "" || name == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID and group name are required"))
		return
	}

	var req dto.SetReleaseModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.groupService.SetReleaseMode(c.Request.Context(), eventID, name, req.Mode); err != nil {
		writeGroupError(c, err, "Failed to set release mode")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]string{"name": name, "release_mode": req.Mode}))
}

// writeGroupError maps domain errors to HTTP responses
func writeGroupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrGroupNameRequired):
		c.JSON(http.StatusBadRequest, response.BadRequest("Group name is required"))
	case errors.Is(err, domain.ErrReservedGroupName):
		c.JSON(http.StatusBadRequest, response.BadRequest("Group name is reserved"))
	case errors.Is(err, domain.ErrGroupExists):
		c.JSON(http.StatusConflict, response.DuplicateEntry("Group with this name already exists"))
	case errors.Is(err, domain.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Group not found"))
	case errors.Is(err, domain.ErrInvalidReleaseMode):
		c.JSON(http.StatusBadRequest, response.BadRequest("Release mode must be 'all' or 'sequential'"))
	default:
		c.JSON(http.StatusInternalServerError, response.InternalError(fallback))
	}
}
