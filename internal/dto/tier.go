package dto

// CreateTierRequest represents the request to create a ticket tier
type CreateTierRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"gte=0"`
	Capacity    *int    `json:"capacity"`
	Status      string  `json:"status" binding:"omitempty,oneof=active hidden"`
	MerchID     *string `json:"merch_id"`
}

// Validate validates the CreateTierRequest
func (r *CreateTierRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Tier name is required"
	}
	if r.Price < 0 {
		return false, "Price must not be negative"
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		return false, "Capacity must not be negative"
	}
	return true, ""
}

// UpdateTierRequest represents the request to update a tier's details.
// Absent fields are left unchanged; capacity uses a double pointer semantic
// through ClearCapacity to distinguish "no change" from "unlimited".
type UpdateTierRequest struct {
	Name          string   `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Capacity      *int     `json:"capacity"`
	ClearCapacity bool     `json:"clear_capacity"`
	MerchID       *string  `json:"merch_id"`
}

// Validate validates the UpdateTierRequest
func (r *UpdateTierRequest) Validate() (bool, string) {
	if r.Name == "" && r.Description == nil && r.Price == nil && r.Capacity == nil && !r.ClearCapacity && r.MerchID == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Price != nil && *r.Price < 0 {
		return false, "Price must not be negative"
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		return false, "Capacity must not be negative"
	}
	if r.Capacity != nil && r.ClearCapacity {
		return false, "Capacity and clear_capacity are mutually exclusive"
	}
	return true, ""
}

// SetTierStatusRequest represents an operator status edit
type SetTierStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active hidden sold_out archived"`
}

// Validate validates the SetTierStatusRequest
func (r *SetTierStatusRequest) Validate() (bool, string) {
	switch r.Status {
	case "active", "hidden", "sold_out", "archived":
		return true, ""
	}
	return false, "Invalid tier status"
}

// AssignGroupRequest represents the request to reassign a tier's group.
// A null group sends the tier back to the ungrouped pool.
type AssignGroupRequest struct {
	Group *string `json:"group"`
}

// ReorderTierRequest represents a drag-style reorder over the flattened list
type ReorderTierRequest struct {
	From int `json:"from" binding:"gte=0"`
	To   int `json:"to" binding:"gte=0"`
}

// Validate validates the ReorderTierRequest
func (r *ReorderTierRequest) Validate() (bool, string) {
	if r.From < 0 || r.To < 0 {
		return false, "Indices must not be negative"
	}
	return true, ""
}

// TierResponse represents a tier in admin responses, including the derived
// gating state
type TierResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Capacity    *int    `json:"capacity,omitempty"`
	Sold        int     `json:"sold"`
	Status      string  `json:"status"`
	SortOrder   int     `json:"sort_order"`
	Group       *string `json:"group"`
	MerchID     *string `json:"merch_id,omitempty"`
	WaitingOn   *string `json:"waiting_on,omitempty"`
}

// TierListResponse represents an event's tiers plus the group registry
type TierListResponse struct {
	EventID string          `json:"event_id"`
	Tiers   []*TierResponse `json:"tiers"`
	Groups  []string        `json:"ticket_groups"`
}

// AvailableTierResponse represents one buyer-visible tier
type AvailableTierResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"` // -1 when unlimited
	Group     *string `json:"group,omitempty"`
	WaitingOn *string `json:"waiting_on,omitempty"`
}

// AvailabilityResponse represents the buyer-facing availability payload
type AvailabilityResponse struct {
	EventID string                   `json:"event_id"`
	Tiers   []*AvailableTierResponse `json:"tiers"`
}
