package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
	audit "github.com/chiboi241-boop/EduScience/pkg/platform/audit"
)

// Store implements audit.Store on the audit_events table.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a PostgreSQL audit store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open builds a pgx pool for connString and verifies it with a ping.
func Open(ctx context.Context, connString string, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Append inserts an event. Replays of the same event ID are ignored.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var contributionID *int64
	if event.ContributionID != nil {
		id := int64(*event.ContributionID)
		contributionID = &id
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_events (
			id, category, timestamp, action, actor, height,
			contribution_id, detail, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`,
		event.ID,
		string(event.Category),
		event.Timestamp,
		string(event.Action),
		string(event.Actor),
		int64(event.Height),
		contributionID,
		event.Detail,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByActor returns every event recorded for actor, oldest first.
func (s *Store) ListByActor(ctx context.Context, actor domain.Principal) ([]audit.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, category, timestamp, action, actor, height,
		       contribution_id, detail, request_id
		FROM audit_events
		WHERE actor = $1
		ORDER BY seq ASC
	`, string(actor))
	if err != nil {
		return nil, fmt.Errorf("query audit events by actor: %w", err)
	}
	return scanEvents(rows)
}

// ListRecent returns up to limit events, most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT id, category, timestamp, action, actor, height,
		       contribution_id, detail, request_id
		FROM audit_events
		ORDER BY seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent audit events: %w", err)
	}
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]audit.Event, error) {
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			e              audit.Event
			category       string
			action         string
			actor          string
			height         int64
			contributionID *int64
		)
		if err := rows.Scan(
			&e.ID, &category, &e.Timestamp, &action, &actor, &height,
			&contributionID, &e.Detail, &e.RequestID,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		e.Action = audit.Action(action)
		e.Actor = domain.Principal(actor)
		e.Height = domain.Height(height)
		if contributionID != nil {
			cid := domain.ContributionID(*contributionID)
			e.ContributionID = &cid
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
