package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/feralclo/release-engine/internal/domain"
)

// MemoryTierRepository is an in-memory implementation of TierRepository for
// testing and local development
type MemoryTierRepository struct {
	mu    sync.RWMutex
	tiers map[string]domain.Tier // tier id -> record
}

// NewMemoryTierRepository creates a new in-memory tier repository
func NewMemoryTierRepository() *MemoryTierRepository {
	return &MemoryTierRepository{tiers: make(map[string]domain.Tier)}
}

// GetByEventID retrieves all live tiers for an event in sort order
func (r *MemoryTierRepository) GetByEventID(ctx context.Context, eventID string) ([]domain.Tier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tiers []domain.Tier
	for _, t := range r.tiers {
		if t.EventID == eventID && t.DeletedAt == nil {
			tiers = append(tiers, t)
		}
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].SortOrder < tiers[j].SortOrder })
	return tiers, nil
}

// GetByID retrieves a tier by ID
func (r *MemoryTierRepository) GetByID(ctx context.Context, id string) (*domain.Tier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tiers[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	return &t, nil
}

// SaveAll upserts the full tier list for an event
func (r *MemoryTierRepository) SaveAll(ctx context.Context, eventID string, tiers []domain.Tier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, t := range tiers {
		t.EventID = eventID
		if existing, ok := r.tiers[t.ID]; ok {
			t.CreatedAt = existing.CreatedAt
		} else if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
		r.tiers[t.ID] = t
	}
	return nil
}

// Delete soft deletes a tier
func (r *MemoryTierRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tiers[id]
	if !ok {
		return nil
	}
	now := time.Now()
	t.DeletedAt = &now
	r.tiers[id] = t
	return nil
}

// MemorySettingsRepository is an in-memory implementation of
// SettingsRepository for testing and local development
type MemorySettingsRepository struct {
	mu       sync.RWMutex
	settings map[string]*domain.Settings // event id -> bundle
}

// NewMemorySettingsRepository creates a new in-memory settings repository
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{settings: make(map[string]*domain.Settings)}
}

// Get retrieves an event's settings bundle
func (r *MemorySettingsRepository) Get(ctx context.Context, eventID string) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[eventID]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

// Save upserts an event's settings bundle
func (r *MemorySettingsRepository) Save(ctx context.Context, eventID string, settings *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[eventID] = settings.Clone()
	return nil
}
