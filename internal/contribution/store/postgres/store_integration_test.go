//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/internal/contribution/store/postgres"
	platformpg "github.com/chiboi241-boop/EduScience/internal/platform/postgres"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
	"github.com/chiboi241-boop/EduScience/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.PostgresStore
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(platformpg.Migrate(s.postgres.DB))
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(s.ctx, "contribution_updates", "contributions", "registry_config")
	s.Require().NoError(err)

	store, err := postgres.New(s.ctx, s.postgres.DB, models.DefaultRegistryConfig())
	s.Require().NoError(err)
	s.store = store
}

func hashOf(b byte) domain.DataHash {
	var h domain.DataHash
	for i := range h {
		h[i] = b
	}
	return h
}

func newContribution(id domain.ContributionID, b byte) *models.Contribution {
	return &models.Contribution{
		ID:            id,
		DataHash:      hashOf(b),
		Metadata:      "Meta",
		Category:      models.CategoryAstronomy,
		DataType:      models.DataTypePhoto,
		Description:   "Desc",
		Location:      "LocX",
		Submitter:     "ST1SUBMITTER",
		Timestamp:     3,
		Expiry:        100,
		PointsAwarded: 50,
		Status:        models.StatusPending,
	}
}

// submit mirrors the service's id allocation so tests exercise the same
// read-modify-write under the config row lock.
func (s *PostgresStoreSuite) submit(b byte) (domain.ContributionID, error) {
	var id domain.ContributionID
	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(s.ctx)
		if err != nil {
			return err
		}
		exists, err := tx.HashExists(s.ctx, hashOf(b))
		if err != nil {
			return err
		}
		if exists {
			return sentinel.ErrHashIndexed
		}
		id = domain.ContributionID(cfg.NextID)
		if err := tx.Insert(s.ctx, newContribution(id, b)); err != nil {
			return err
		}
		cfg.NextID++
		return tx.SaveConfig(s.ctx, cfg)
	})
	return id, err
}

func (s *PostgresStoreSuite) TestSeedIsIdempotent() {
	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(s.ctx)
		if err != nil {
			return err
		}
		cfg.SubmissionFee = 42
		cfg.ApplyAuthority("ST1AUTHORITY")
		return tx.SaveConfig(s.ctx, cfg)
	})
	s.Require().NoError(err)

	_, err = postgres.New(s.ctx, s.postgres.DB, models.DefaultRegistryConfig())
	s.Require().NoError(err)

	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(42), cfg.SubmissionFee)
	s.Require().NotNil(cfg.Authority)
	s.Equal(domain.Principal("ST1AUTHORITY"), *cfg.Authority)
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	id, err := s.submit(0x01)
	s.Require().NoError(err)
	s.Equal(domain.ContributionID(0), id)

	c, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	want := newContribution(0, 0x01)
	s.Equal(*want, *c)

	exists, err := s.store.HashExists(s.ctx, hashOf(0x01))
	s.Require().NoError(err)
	s.True(exists)

	_, err = s.store.FindByID(s.ctx, 7)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUniqueHashConstraint() {
	s.Require().NoError(s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		return tx.Insert(s.ctx, newContribution(0, 0x01))
	}))

	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		return tx.Insert(s.ctx, newContribution(1, 0x01))
	})
	s.ErrorIs(err, sentinel.ErrHashIndexed)
}

func (s *PostgresStoreSuite) TestRollbackLeavesNoState() {
	boom := errors.New("payment declined")
	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(s.ctx)
		s.Require().NoError(err)
		s.Require().NoError(tx.Insert(s.ctx, newContribution(domain.ContributionID(cfg.NextID), 0x01)))
		cfg.NextID++
		s.Require().NoError(tx.SaveConfig(s.ctx, cfg))
		return boom
	})
	s.ErrorIs(err, boom)

	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), cfg.NextID)
	exists, err := s.store.HashExists(s.ctx, hashOf(0x01))
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PostgresStoreSuite) TestUpdateRecordOverwrites() {
	_, err := s.submit(0x01)
	s.Require().NoError(err)

	for _, meta := range []string{"first", "second"} {
		err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
			c, err := tx.FindByID(s.ctx, 0)
			if err != nil {
				return err
			}
			u := c.ApplyUpdate(c.Submitter, meta, "new desc", 9)
			if err := tx.Update(s.ctx, c); err != nil {
				return err
			}
			return tx.SaveUpdate(s.ctx, u)
		})
		s.Require().NoError(err)
	}

	u, err := s.store.FindUpdate(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal("second", u.UpdateMetadata)
	s.Equal(domain.Height(9), u.UpdateTimestamp)

	c, err := s.store.FindByID(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal("second", c.Metadata)
	s.Equal(domain.Height(9), c.Timestamp)
}

// TestConcurrentDuplicateSubmissions checks that the config row lock lets
// exactly one of many racing submissions with the same hash succeed.
func (s *PostgresStoreSuite) TestConcurrentDuplicateSubmissions() {
	const workers = 50
	var wg sync.WaitGroup
	var wins, dups atomic.Int32

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.submit(0xAB)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrHashIndexed):
				dups.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(workers-1), dups.Load())

	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), cfg.NextID)
}

func (s *PostgresStoreSuite) TestDenseIDsUnderConcurrency() {
	const workers = 20
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(b byte) {
			defer wg.Done()
			_, err := s.submit(b)
			s.NoError(err)
		}(byte(i + 1))
	}
	wg.Wait()

	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(workers), cfg.NextID)
	for i := range workers {
		_, err := s.store.FindByID(s.ctx, domain.ContributionID(i))
		s.NoError(err, "id %d should exist", i)
	}
}

func (s *PostgresStoreSuite) TestClosedPoolIsUnavailable() {
	db, err := sql.Open("postgres", s.postgres.DSN)
	s.Require().NoError(err)
	store, err := postgres.New(s.ctx, db, models.DefaultRegistryConfig())
	s.Require().NoError(err)
	s.Require().NoError(db.Close())

	err = store.RunInTx(s.ctx, func(ports.Tx) error { return nil })
	s.ErrorIs(err, sentinel.ErrUnavailable)
}
