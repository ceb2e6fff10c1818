// Package postgres persists the registry in PostgreSQL via lib/pq.
//
// RunInTx locks the singleton registry_config row (SELECT ... FOR UPDATE)
// before running the callback, which serializes every mutating operation
// across processes. The UNIQUE(data_hash) constraint backs the hash index.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore implements ports.Store.
type PostgresStore struct {
	db *sql.DB
}

// New returns a store over db and seeds the config row with seed if the
// registry has never been initialised. An existing row is left untouched.
func New(ctx context.Context, db *sql.DB, seed models.RegistryConfig) (*PostgresStore, error) {
	_, err := db.ExecContext(ctx, `
		INSERT INTO registry_config (
			id, next_id, max_contributions, submission_fee,
			authority, reward_rate, validation_threshold
		)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`,
		int64(seed.NextID),
		int64(seed.MaxContributions),
		seed.SubmissionFee,
		nullPrincipal(seed.Authority),
		seed.RewardRate,
		seed.ValidationThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("seed registry config: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx ports.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	cfg, err := loadConfig(ctx, sqlTx, true)
	if err != nil {
		return err
	}

	if err = fn(&pgTx{q: sqlTx, cfg: cfg}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadConfig(ctx context.Context) (models.RegistryConfig, error) {
	return loadConfig(ctx, s.db, false)
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ContributionID) (*models.Contribution, error) {
	return findByID(ctx, s.db, id)
}

func (s *PostgresStore) FindUpdate(ctx context.Context, id domain.ContributionID) (*models.ContributionUpdate, error) {
	u := models.ContributionUpdate{ContributionID: id}
	var ts int64
	var updater string
	err := s.db.QueryRowContext(ctx, `
		SELECT update_metadata, update_description, update_timestamp, updater
		FROM contribution_updates
		WHERE contribution_id = $1
	`, int64(id)).Scan(&u.UpdateMetadata, &u.UpdateDescription, &ts, &updater)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contribution update: %w", err)
	}
	u.UpdateTimestamp = domain.Height(ts)
	u.Updater = domain.Principal(updater)
	return &u, nil
}

func (s *PostgresStore) HashExists(ctx context.Context, hash domain.DataHash) (bool, error) {
	return hashExists(ctx, s.db, hash)
}

// pgTx is the transactional view handed to RunInTx callbacks.
type pgTx struct {
	q   *sql.Tx
	cfg models.RegistryConfig
}

// LoadConfig returns the row locked at the start of the transaction, as
// modified by any SaveConfig since.
func (t *pgTx) LoadConfig(_ context.Context) (models.RegistryConfig, error) {
	return t.cfg.Clone(), nil
}

func (t *pgTx) SaveConfig(ctx context.Context, cfg models.RegistryConfig) error {
	_, err := t.q.ExecContext(ctx, `
		UPDATE registry_config
		SET next_id = $1, max_contributions = $2, submission_fee = $3,
		    authority = $4, reward_rate = $5, validation_threshold = $6
		WHERE id = 1
	`,
		int64(cfg.NextID),
		int64(cfg.MaxContributions),
		cfg.SubmissionFee,
		nullPrincipal(cfg.Authority),
		cfg.RewardRate,
		cfg.ValidationThreshold,
	)
	if err != nil {
		return fmt.Errorf("save registry config: %w", err)
	}
	t.cfg = cfg.Clone()
	return nil
}

func (t *pgTx) FindByID(ctx context.Context, id domain.ContributionID) (*models.Contribution, error) {
	return findByID(ctx, t.q, id)
}

func (t *pgTx) HashExists(ctx context.Context, hash domain.DataHash) (bool, error) {
	return hashExists(ctx, t.q, hash)
}

func (t *pgTx) Insert(ctx context.Context, c *models.Contribution) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO contributions (
			id, data_hash, metadata, category, data_type, description,
			location, submitter, timestamp, expiry, points_awarded, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		int64(c.ID),
		c.DataHash[:],
		c.Metadata,
		string(c.Category),
		string(c.DataType),
		c.Description,
		c.Location,
		string(c.Submitter),
		int64(c.Timestamp),
		int64(c.Expiry),
		c.PointsAwarded,
		string(c.Status),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if pqErr.Constraint == "contributions_data_hash_key" {
				return fmt.Errorf("hash %s: %w", c.DataHash, sentinel.ErrHashIndexed)
			}
			return fmt.Errorf("contribution %s: %w", c.ID, sentinel.ErrIDConflict)
		}
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (t *pgTx) Update(ctx context.Context, c *models.Contribution) error {
	res, err := t.q.ExecContext(ctx, `
		UPDATE contributions
		SET metadata = $2, description = $3, timestamp = $4, status = $5
		WHERE id = $1
	`, int64(c.ID), c.Metadata, c.Description, int64(c.Timestamp), string(c.Status))
	if err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (t *pgTx) SaveUpdate(ctx context.Context, u models.ContributionUpdate) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO contribution_updates (
			contribution_id, update_metadata, update_description, update_timestamp, updater
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (contribution_id) DO UPDATE
		SET update_metadata = EXCLUDED.update_metadata,
		    update_description = EXCLUDED.update_description,
		    update_timestamp = EXCLUDED.update_timestamp,
		    updater = EXCLUDED.updater
	`,
		int64(u.ContributionID),
		u.UpdateMetadata,
		u.UpdateDescription,
		int64(u.UpdateTimestamp),
		string(u.Updater),
	)
	if err != nil {
		return fmt.Errorf("save contribution update: %w", err)
	}
	return nil
}

func loadConfig(ctx context.Context, q queryer, forUpdate bool) (models.RegistryConfig, error) {
	query := `
		SELECT next_id, max_contributions, submission_fee,
		       authority, reward_rate, validation_threshold
		FROM registry_config
		WHERE id = 1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var (
		cfg       models.RegistryConfig
		nextID    int64
		maxCount  int64
		authority sql.NullString
	)
	err := q.QueryRowContext(ctx, query).Scan(
		&nextID, &maxCount, &cfg.SubmissionFee,
		&authority, &cfg.RewardRate, &cfg.ValidationThreshold,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegistryConfig{}, fmt.Errorf("registry config row missing: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return models.RegistryConfig{}, fmt.Errorf("load registry config: %w", err)
	}
	cfg.NextID = uint64(nextID)
	cfg.MaxContributions = uint64(maxCount)
	if authority.Valid {
		cfg.ApplyAuthority(domain.Principal(authority.String))
	}
	return cfg, nil
}

func findByID(ctx context.Context, q queryer, id domain.ContributionID) (*models.Contribution, error) {
	var (
		c                  models.Contribution
		hash               []byte
		category, dataType string
		submitter, status  string
		timestamp, expiry  int64
	)
	err := q.QueryRowContext(ctx, `
		SELECT data_hash, metadata, category, data_type, description, location,
		       submitter, timestamp, expiry, points_awarded, status
		FROM contributions
		WHERE id = $1
	`, int64(id)).Scan(
		&hash, &c.Metadata, &category, &dataType, &c.Description, &c.Location,
		&submitter, &timestamp, &expiry, &c.PointsAwarded, &status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contribution: %w", err)
	}
	dh, ok := domain.DataHashFromBytes(hash)
	if !ok {
		return nil, fmt.Errorf("contribution %s: stored hash has %d bytes", id, len(hash))
	}
	c.ID = id
	c.DataHash = dh
	c.Category = models.Category(category)
	c.DataType = models.DataType(dataType)
	c.Submitter = domain.Principal(submitter)
	c.Timestamp = domain.Height(timestamp)
	c.Expiry = domain.Height(expiry)
	c.Status = models.Status(status)
	return &c, nil
}

func hashExists(ctx context.Context, q queryer, hash domain.DataHash) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM contributions WHERE data_hash = $1)`,
		hash[:],
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check hash: %w", err)
	}
	return exists, nil
}

func nullPrincipal(p *domain.Principal) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}
