package dto

// CreateGroupRequest represents the request to create a ticket group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Validate validates the CreateGroupRequest
func (r *CreateGroupRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Group name is required"
	}
	return true, ""
}

// RenameGroupRequest represents the request to rename a ticket group
type RenameGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Validate validates the RenameGroupRequest
func (r *RenameGroupRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "New group name is required"
	}
	return true, ""
}

// MoveGroupRequest represents the request to move a group up or down
type MoveGroupRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// Validate validates the MoveGroupRequest
func (r *MoveGroupRequest) Validate() (bool, string) {
	if r.Direction != "up" && r.Direction != "down" {
		return false, "Direction must be 'up' or 'down'"
	}
	return true, ""
}

// SetReleaseModeRequest represents the request to change a scope's release mode
type SetReleaseModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=all sequential"`
}

// Validate validates the SetReleaseModeRequest
func (r *SetReleaseModeRequest) Validate() (bool, string) {
	if r.Mode != "all" && r.Mode != "sequential" {
		return false, "Mode must be 'all' or 'sequential'"
	}
	return true, ""
}

// GroupResponse represents one ticket group in responses
type GroupResponse struct {
	Name        string `json:"name"`
	Position    int    `json:"position"`
	ReleaseMode string `json:"release_mode"`
	TierCount   int    `json:"tier_count"`
}

// GroupListResponse represents the ordered group registry for an event
type GroupListResponse struct {
	Groups []*GroupResponse `json:"groups"`
	// UngroupedMode is the release mode of the ungrouped pool
	UngroupedMode string `json:"ungrouped_release_mode"`
}
