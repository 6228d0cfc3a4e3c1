package repository

import (
	"context"

	"github.com/feralclo/release-engine/internal/domain"
)

// TierRepository defines the persistence interface for ticket tiers
type TierRepository interface {
	// GetByEventID retrieves all live tiers for an event in sort order
	GetByEventID(ctx context.Context, eventID string) ([]domain.Tier, error)
	// GetByID retrieves a tier by ID, nil when not found
	GetByID(ctx context.Context, id string) (*domain.Tier, error)
	// SaveAll upserts the full tier list for an event in one transaction.
	// Sort orders and statuses are session-derived, so the whole list is
	// written back after every mutating command.
	SaveAll(ctx context.Context, eventID string, tiers []domain.Tier) error
	// Delete soft deletes a tier
	Delete(ctx context.Context, id string) error
}

// SettingsRepository defines the persistence interface for the per-event
// release settings bundle (group registry, group map, release mode map)
type SettingsRepository interface {
	// Get retrieves an event's settings bundle, nil when none is stored yet
	Get(ctx context.Context, eventID string) (*domain.Settings, error)
	// Save upserts an event's settings bundle
	Save(ctx context.Context, eventID string, settings *domain.Settings) error
}
