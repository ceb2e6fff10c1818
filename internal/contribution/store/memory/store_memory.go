// Package memory is the in-process registry store.
//
// Transactions are serialized by a single writer lock. Writes inside a
// transaction are staged and applied to the live maps only when the callback
// returns nil, so readers never observe a half-applied operation.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
)

type InMemoryStore struct {
	writer sync.Mutex

	mu            sync.RWMutex
	cfg           models.RegistryConfig
	contributions map[domain.ContributionID]models.Contribution
	hashes        map[domain.DataHash]domain.ContributionID
	updates       map[domain.ContributionID]models.ContributionUpdate
}

// New returns an empty registry seeded with cfg.
func New(cfg models.RegistryConfig) *InMemoryStore {
	return &InMemoryStore{
		cfg:           cfg.Clone(),
		contributions: make(map[domain.ContributionID]models.Contribution),
		hashes:        make(map[domain.DataHash]domain.ContributionID),
		updates:       make(map[domain.ContributionID]models.ContributionUpdate),
	}
}

func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		store:         s,
		contributions: make(map[domain.ContributionID]models.Contribution),
		hashes:        make(map[domain.DataHash]domain.ContributionID),
		updates:       make(map[domain.ContributionID]models.ContributionUpdate),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *InMemoryStore) LoadConfig(_ context.Context) (models.RegistryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone(), nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.ContributionID) (*models.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contributions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryStore) FindUpdate(_ context.Context, id domain.ContributionID) (*models.ContributionUpdate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.updates[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}

func (s *InMemoryStore) HashExists(_ context.Context, hash domain.DataHash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hashes[hash]
	return ok, nil
}

// memTx stages writes on top of the committed state.
type memTx struct {
	store *InMemoryStore

	cfg           *models.RegistryConfig
	contributions map[domain.ContributionID]models.Contribution
	hashes        map[domain.DataHash]domain.ContributionID
	updates       map[domain.ContributionID]models.ContributionUpdate
}

func (t *memTx) LoadConfig(ctx context.Context) (models.RegistryConfig, error) {
	if t.cfg != nil {
		return t.cfg.Clone(), nil
	}
	return t.store.LoadConfig(ctx)
}

func (t *memTx) SaveConfig(_ context.Context, cfg models.RegistryConfig) error {
	staged := cfg.Clone()
	t.cfg = &staged
	return nil
}

func (t *memTx) FindByID(ctx context.Context, id domain.ContributionID) (*models.Contribution, error) {
	if c, ok := t.contributions[id]; ok {
		return &c, nil
	}
	return t.store.FindByID(ctx, id)
}

func (t *memTx) HashExists(ctx context.Context, hash domain.DataHash) (bool, error) {
	if _, ok := t.hashes[hash]; ok {
		return true, nil
	}
	return t.store.HashExists(ctx, hash)
}

func (t *memTx) Insert(ctx context.Context, c *models.Contribution) error {
	exists, err := t.HashExists(ctx, c.DataHash)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("hash %s: %w", c.DataHash, sentinel.ErrHashIndexed)
	}
	if _, err := t.FindByID(ctx, c.ID); err == nil {
		return fmt.Errorf("contribution %s: %w", c.ID, sentinel.ErrIDConflict)
	}
	t.contributions[c.ID] = *c
	t.hashes[c.DataHash] = c.ID
	return nil
}

func (t *memTx) Update(ctx context.Context, c *models.Contribution) error {
	if _, err := t.FindByID(ctx, c.ID); err != nil {
		return err
	}
	t.contributions[c.ID] = *c
	return nil
}

func (t *memTx) SaveUpdate(_ context.Context, u models.ContributionUpdate) error {
	t.updates[u.ContributionID] = u
	return nil
}

func (t *memTx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.cfg != nil {
		s.cfg = t.cfg.Clone()
	}
	for id, c := range t.contributions {
		s.contributions[id] = c
	}
	for h, id := range t.hashes {
		s.hashes[h] = id
	}
	for id, u := range t.updates {
		s.updates[id] = u
	}
}
