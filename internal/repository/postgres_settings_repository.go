package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feralclo/release-engine/internal/domain"
)

// PostgresSettingsRepository implements SettingsRepository using PostgreSQL.
// The three settings structures are stored as jsonb columns with the same
// keys the editor exchanges over the wire.
type PostgresSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSettingsRepository creates a new PostgresSettingsRepository
func NewPostgresSettingsRepository(pool *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{pool: pool}
}

// Get retrieves an event's settings bundle
func (r *PostgresSettingsRepository) Get(ctx context.Context, eventID string) (*domain.Settings, error) {
	query := `
		SELECT ticket_groups, ticket_group_map, ticket_group_release_mode
		FROM event_release_settings
		WHERE event_id = $1
	`
	settings := domain.NewSettings()
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&settings.TicketGroups,
		&settings.TicketGroupMap,
		&settings.ReleaseModes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return settings, nil
}

// Save upserts an event's settings bundle
func (r *PostgresSettingsRepository) Save(ctx context.Context, eventID string, settings *domain.Settings) error {
	query := `
		INSERT INTO event_release_settings (event_id, ticket_groups, ticket_group_map,
			ticket_group_release_mode, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO UPDATE SET
			ticket_groups = EXCLUDED.ticket_groups,
			ticket_group_map = EXCLUDED.ticket_group_map,
			ticket_group_release_mode = EXCLUDED.ticket_group_release_mode,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		eventID,
		settings.TicketGroups,
		settings.TicketGroupMap,
		settings.ReleaseModes,
		time.Now(),
	)
	return err
}
