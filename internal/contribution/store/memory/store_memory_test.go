package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
)

type RegistryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestRegistryStoreSuite(t *testing.T) {
	suite.Run(t, new(RegistryStoreSuite))
}

func (s *RegistryStoreSuite) SetupTest() {
	s.store = New(models.DefaultRegistryConfig())
	s.ctx = context.Background()
}

func hashOf(b byte) domain.DataHash {
	var h domain.DataHash
	for i := range h {
		h[i] = b
	}
	return h
}

func (s *RegistryStoreSuite) newContribution(id domain.ContributionID, b byte) *models.Contribution {
	return &models.Contribution{
		ID:          id,
		DataHash:    hashOf(b),
		Metadata:    "Meta",
		Category:    models.CategoryEnvironment,
		DataType:    models.DataTypeObservation,
		Description: "Desc",
		Submitter:   "ST1SUBMITTER",
		Expiry:      100,
		Status:      models.StatusPending,
	}
}

func (s *RegistryStoreSuite) insert(c *models.Contribution) error {
	return s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		return tx.Insert(s.ctx, c)
	})
}

func (s *RegistryStoreSuite) TestInsertAndLookups() {
	c := s.newContribution(0, 0x01)
	s.Require().NoError(s.insert(c))

	found, err := s.store.FindByID(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(c.Metadata, found.Metadata)
	s.Equal(c.DataHash, found.DataHash)

	exists, err := s.store.HashExists(s.ctx, hashOf(0x01))
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.HashExists(s.ctx, hashOf(0x02))
	s.Require().NoError(err)
	s.False(exists)

	_, err = s.store.FindByID(s.ctx, 99)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindUpdate(s.ctx, 0)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RegistryStoreSuite) TestDuplicateHashRejected() {
	s.Require().NoError(s.insert(s.newContribution(0, 0x01)))

	err := s.insert(s.newContribution(1, 0x01))
	s.ErrorIs(err, sentinel.ErrHashIndexed)

	s.Run("within a single transaction", func() {
		err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
			if err := tx.Insert(s.ctx, s.newContribution(1, 0x05)); err != nil {
				return err
			}
			return tx.Insert(s.ctx, s.newContribution(2, 0x05))
		})
		s.ErrorIs(err, sentinel.ErrHashIndexed)

		exists, err := s.store.HashExists(s.ctx, hashOf(0x05))
		s.Require().NoError(err)
		s.False(exists, "failed transaction must not leak staged writes")
	})
}

func (s *RegistryStoreSuite) TestRollbackDiscardsAllWrites() {
	boom := errors.New("payment declined")
	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(s.ctx)
		s.Require().NoError(err)
		cfg.NextID++
		s.Require().NoError(tx.SaveConfig(s.ctx, cfg))
		s.Require().NoError(tx.Insert(s.ctx, s.newContribution(0, 0x01)))

		// Reads inside the tx see staged writes.
		staged, err := tx.LoadConfig(s.ctx)
		s.Require().NoError(err)
		s.Equal(uint64(1), staged.NextID)
		exists, err := tx.HashExists(s.ctx, hashOf(0x01))
		s.Require().NoError(err)
		s.True(exists)
		return boom
	})
	s.ErrorIs(err, boom)

	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), cfg.NextID)
	_, err = s.store.FindByID(s.ctx, 0)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RegistryStoreSuite) TestUpdateOverwritesLatest() {
	s.Require().NoError(s.insert(s.newContribution(0, 0x01)))

	for _, meta := range []string{"first", "second"} {
		err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
			c, err := tx.FindByID(s.ctx, 0)
			if err != nil {
				return err
			}
			u := c.ApplyUpdate("ST1SUBMITTER", meta, "d", 5)
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

	c, err := s.store.FindByID(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal("second", c.Metadata)
	s.Equal(domain.Height(5), c.Timestamp)
}

func (s *RegistryStoreSuite) TestUpdateUnknownContribution() {
	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		return tx.Update(s.ctx, s.newContribution(3, 0x09))
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RegistryStoreSuite) TestConfigIsolation() {
	err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(s.ctx)
		if err != nil {
			return err
		}
		cfg.ApplyAuthority("ST1AUTHORITY")
		return tx.SaveConfig(s.ctx, cfg)
	})
	s.Require().NoError(err)

	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(cfg.Authority)
	*cfg.Authority = "ST1MUTATED"

	again, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.Principal("ST1AUTHORITY"), *again.Authority)
}

func (s *RegistryStoreSuite) TestConcurrentSameHashOnlyOneWins() {
	const workers = 50
	var wg sync.WaitGroup
	var wins, dups atomic.Int32

	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.store.RunInTx(s.ctx, func(tx ports.Tx) error {
				cfg, err := tx.LoadConfig(s.ctx)
				if err != nil {
					return err
				}
				c := s.newContribution(domain.ContributionID(cfg.NextID), 0xAA)
				if err := tx.Insert(s.ctx, c); err != nil {
					return err
				}
				cfg.NextID++
				return tx.SaveConfig(s.ctx, cfg)
			})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrHashIndexed):
				dups.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(workers-1), dups.Load())
	cfg, err := s.store.LoadConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), cfg.NextID)
}

func (s *RegistryStoreSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	called := false
	err := s.store.RunInTx(ctx, func(ports.Tx) error {
		called = true
		return nil
	})
	s.ErrorIs(err, context.Canceled)
	s.False(called)
}
