package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryGovernance covers changes to registry parameters and authority.
	// These are rare, high-value events and are never sampled.
	CategoryGovernance EventCategory = "governance"

	// CategoryLifecycle covers contribution state changes.
	CategoryLifecycle EventCategory = "lifecycle"
)

// Action names a recorded registry action.
type Action string

const (
	ActionAuthoritySet          Action = "authority_set"
	ActionParameterChanged      Action = "parameter_changed"
	ActionContributionSubmitted Action = "contribution_submitted"
	ActionContributionUpdated   Action = "contribution_updated"
	ActionContributionApproved  Action = "contribution_approved"
	ActionBalanceCredited       Action = "balance_credited"
)

var actionCategories = map[Action]EventCategory{
	ActionAuthoritySet:          CategoryGovernance,
	ActionParameterChanged:      CategoryGovernance,
	ActionContributionSubmitted: CategoryLifecycle,
	ActionContributionUpdated:   CategoryLifecycle,
	ActionContributionApproved:  CategoryLifecycle,
	ActionBalanceCredited:       CategoryGovernance,
}

// Category returns the EventCategory for this action.
// Unknown actions default to CategoryLifecycle.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryLifecycle
}

// Event is emitted from domain logic after a committed state change. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID        `json:"id"`
	Category  EventCategory    `json:"category"`
	Timestamp time.Time        `json:"timestamp"`
	Action    Action           `json:"action"`
	Actor     domain.Principal `json:"actor"`
	// Height is the caller-supplied block height the action was applied at.
	Height domain.Height `json:"height"`
	// ContributionID is set for lifecycle events only.
	ContributionID *domain.ContributionID `json:"contribution_id,omitempty"`
	// Detail is a short free-form description, e.g. "submission_fee=250".
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Normalize fills ID, Category and Timestamp when the emitter left them zero.
func (e *Event) Normalize(now time.Time) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Category == "" {
		e.Category = e.Action.Category()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
}

// Store persists audit events for operator queries.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	ListByActor(ctx context.Context, actor domain.Principal) ([]Event, error)
}
