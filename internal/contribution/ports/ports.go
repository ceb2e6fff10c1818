// Package ports defines the collaborators the contribution service depends on.
// Stores, settlement, caches, and audit sinks implement these so the service
// never imports a concrete backend.
package ports

import (
	"context"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
)

// Store is the registry's persistence boundary.
//
// All mutations happen inside RunInTx. Implementations serialize transactions
// against each other (one writer at a time) and commit only when fn returns nil,
// so a failed operation leaves no partial state.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	// Read-only lookups outside a transaction. Missing records return
	// sentinel.ErrNotFound.
	LoadConfig(ctx context.Context) (models.RegistryConfig, error)
	FindByID(ctx context.Context, id domain.ContributionID) (*models.Contribution, error)
	FindUpdate(ctx context.Context, id domain.ContributionID) (*models.ContributionUpdate, error)
	HashExists(ctx context.Context, hash domain.DataHash) (bool, error)
}

// Tx is the view of the store inside RunInTx.
type Tx interface {
	LoadConfig(ctx context.Context) (models.RegistryConfig, error)
	SaveConfig(ctx context.Context, cfg models.RegistryConfig) error

	FindByID(ctx context.Context, id domain.ContributionID) (*models.Contribution, error)
	HashExists(ctx context.Context, hash domain.DataHash) (bool, error)

	// Insert writes the contribution and its hash index entry together.
	// Returns sentinel.ErrHashIndexed if the hash is already indexed.
	Insert(ctx context.Context, c *models.Contribution) error
	Update(ctx context.Context, c *models.Contribution) error
	// SaveUpdate replaces the latest update record for the contribution.
	SaveUpdate(ctx context.Context, u models.ContributionUpdate) error
}

// Settlement moves the submission fee between principals. A returned error
// aborts the submission.
type Settlement interface {
	Transfer(ctx context.Context, amount int64, from, to domain.Principal) error
}

// Funding credits and reports fee balances when settlement is metered.
type Funding interface {
	Credit(ctx context.Context, p domain.Principal, amount int64) error
	Balance(p domain.Principal) int64
}

// ExistenceCache is an optional cache of registered hashes. It can outlive the
// store it mirrors (a restarted memory backend, a reset database), so entries
// are hints and the store's hash index always decides membership.
type ExistenceCache interface {
	Known(ctx context.Context, hash domain.DataHash) (bool, error)
	Remember(ctx context.Context, hash domain.DataHash) error
	Forget(ctx context.Context, hash domain.DataHash) error
}

// AuditPublisher records lifecycle events after a successful commit.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
