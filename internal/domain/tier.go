package domain

import "time"

// Tier represents one purchasable ticket type within an event
type Tier struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Capacity    *int       `json:"capacity,omitempty"` // nil = unlimited
	Sold        int        `json:"sold"`
	Status      string     `json:"status"` // active, hidden, sold_out, archived
	SortOrder   int        `json:"sort_order"`
	MerchID     *string    `json:"merch_id,omitempty"` // linked merchandise, managed elsewhere
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// TierStatus constants
const (
	TierStatusActive   = "active"
	TierStatusHidden   = "hidden"
	TierStatusSoldOut  = "sold_out"
	TierStatusArchived = "archived"
)

// ValidTierStatus reports whether s is a known tier status
func ValidTierStatus(s string) bool {
	switch s {
	case TierStatusActive, TierStatusHidden, TierStatusSoldOut, TierStatusArchived:
		return true
	}
	return false
}

// CanTransition reports whether an operator edit may move a tier from one
// status to another. hidden and active are interchangeable, active can be
// marked sold_out, and archived is reachable from anywhere but terminal.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if to == TierStatusArchived {
		return from != TierStatusArchived
	}
	switch from {
	case TierStatusHidden:
		return to == TierStatusActive
	case TierStatusActive:
		return to == TierStatusHidden || to == TierStatusSoldOut
	}
	return false
}

// SoldOut reports whether the tier's gate is open for a sequential successor.
// Only actual sell-through counts; the operator-set Status field is ignored
// because it can lag behind (or disagree with) real sales data.
func (t *Tier) SoldOut() bool {
	return t.Capacity != nil && *t.Capacity > 0 && t.Sold >= *t.Capacity
}

// Remaining returns the number of units still sellable, or -1 when the tier
// has no capacity bound.
func (t *Tier) Remaining() int {
	if t.Capacity == nil {
		return -1
	}
	if r := *t.Capacity - t.Sold; r > 0 {
		return r
	}
	return 0
}
