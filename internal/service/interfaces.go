package service

import (
	"context"

	"github.com/feralclo/release-engine/internal/domain"
	"github.com/feralclo/release-engine/internal/dto"
	"github.com/feralclo/release-engine/internal/release"
)

// TierService defines the interface for ticket tier business logic
type TierService interface {
	// ListTiers lists an event's tiers with derived gating state
	ListTiers(ctx context.Context, eventID string) (*dto.TierListResponse, error)
	// CreateTier creates a new tier for an event
	CreateTier(ctx context.Context, eventID string, req *dto.CreateTierRequest) (*domain.Tier, error)
	// UpdateTier updates a tier's details
	UpdateTier(ctx context.Context, eventID, tierID string, req *dto.UpdateTierRequest) (*domain.Tier, error)
	// SetTierStatus applies an operator status edit
	SetTierStatus(ctx context.Context, eventID, tierID, status string) (*domain.Tier, error)
	// AssignTierGroup reassigns a tier to a group, or nil for ungrouped
	AssignTierGroup(ctx context.Context, eventID, tierID string, group *string) error
	// RemoveTier deletes a tier; tiers with sales require confirmation
	RemoveTier(ctx context.Context, eventID, tierID string, confirmed bool) error
	// ReorderTier moves a tier within the flattened list
	ReorderTier(ctx context.Context, eventID string, from, to int) error
	// GetAvailability returns the buyer-facing availability payload
	GetAvailability(ctx context.Context, eventID string) (*dto.AvailabilityResponse, error)
}

// GroupService defines the interface for ticket group lifecycle logic
type GroupService interface {
	// ListGroups lists an event's group registry in order
	ListGroups(ctx context.Context, eventID string) (*dto.GroupListResponse, error)
	// CreateGroup appends a new group with the default release mode
	CreateGroup(ctx context.Context, eventID, name string) error
	// RenameGroup renames a group and propagates the change everywhere
	RenameGroup(ctx context.Context, eventID, oldName, newName string) error
	// DeleteGroup removes a group, sending its tiers back to ungrouped
	DeleteGroup(ctx context.Context, eventID, name string) error
	// MoveGroup swaps a group with its neighbor in the given direction
	MoveGroup(ctx context.Context, eventID, name string, dir release.Direction) error
	// SetReleaseMode sets the release mode for a group or the ungrouped pool
	SetReleaseMode(ctx context.Context, eventID, scopeKey, mode string) error
}

// AvailabilityCache caches the computed buyer-facing availability payload.
// Implementations are expected to fail soft: a cache error never blocks the
// underlying computation.
type AvailabilityCache interface {
	Get(ctx context.Context, eventID string) (*dto.AvailabilityResponse, error)
	Set(ctx context.Context, eventID string, payload *dto.AvailabilityResponse) error
	Invalidate(ctx context.Context, eventID string) error
}
