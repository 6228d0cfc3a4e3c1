package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feralclo/release-engine/internal/domain"
)

// tierColumns defines the columns to select for tiers
const tierColumns = `id, event_id, name, COALESCE(description, '') as description,
	price, capacity, sold, status, sort_order, merch_id,
	created_at, updated_at, deleted_at`

// PostgresTierRepository implements TierRepository using PostgreSQL
type PostgresTierRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTierRepository creates a new PostgresTierRepository
func NewPostgresTierRepository(pool *pgxpool.Pool) *PostgresTierRepository {
	return &PostgresTierRepository{pool: pool}
}

// scanTier scans a row into a Tier struct
func (r *PostgresTierRepository) scanTier(row pgx.Row) (*domain.Tier, error) {
	tier := &domain.Tier{}
	err := row.Scan(
		&tier.ID,
		&tier.EventID,
		&tier.Name,
		&tier.Description,
		&tier.Price,
		&tier.Capacity,
		&tier.Sold,
		&tier.Status,
		&tier.SortOrder,
		&tier.MerchID,
		&tier.CreatedAt,
		&tier.UpdatedAt,
		&tier.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tier, nil
}

// GetByEventID retrieves all live tiers for an event in sort order
func (r *PostgresTierRepository) GetByEventID(ctx context.Context, eventID string) ([]domain.Tier, error) {
	query := `
		SELECT ` + tierColumns + `
		FROM ticket_tiers
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY sort_order ASC
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.Tier
	for rows.Next() {
		tier, err := r.scanTier(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, *tier)
	}
	return tiers, rows.Err()
}

// GetByID retrieves a tier by ID
func (r *PostgresTierRepository) GetByID(ctx context.Context, id string) (*domain.Tier, error) {
	query := `
		SELECT ` + tierColumns + `
		FROM ticket_tiers
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanTier(r.pool.QueryRow(ctx, query, id))
}

// SaveAll upserts the full tier list for an event in one transaction
func (r *PostgresTierRepository) SaveAll(ctx context.Context, eventID string, tiers []domain.Tier) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO ticket_tiers (id, event_id, name, description, price, capacity,
			sold, status, sort_order, merch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			capacity = EXCLUDED.capacity,
			status = EXCLUDED.status,
			sort_order = EXCLUDED.sort_order,
			merch_id = EXCLUDED.merch_id,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	for _, tier := range tiers {
		createdAt := tier.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		_, err := tx.Exec(ctx, query,
			tier.ID,
			eventID,
			tier.Name,
			tier.Description,
			tier.Price,
			tier.Capacity,
			tier.Sold,
			tier.Status,
			tier.SortOrder,
			tier.MerchID,
			createdAt,
			now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete soft deletes a tier
func (r *PostgresTierRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE ticket_tiers SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.pool.Exec(ctx, query, id, time.Now())
	return err
}
