package models

import (
	"unicode/utf8"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

// Field bounds, counted in characters.
const (
	MaxMetadataLength    = 256
	MaxDescriptionLength = 512
	MaxLocationLength    = 100
)

// Status is the approval state of a contribution.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// CanTransitionTo reports whether the one-way lifecycle permits moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusApproved
	case StatusApproved:
		return false
	default:
		return false
	}
}

// Contribution is the aggregate root for one submitted data record.
//
// Invariants:
//   - DataHash is unique across the registry
//   - Submitter never changes after creation
//   - Status moves pending -> approved only, and approved is terminal
//   - Expiry was strictly greater than the height at submission
type Contribution struct {
	ID            domain.ContributionID `json:"id"`
	DataHash      domain.DataHash       `json:"-"`
	Metadata      string                `json:"metadata"`
	Category      Category              `json:"category"`
	DataType      DataType              `json:"data_type"`
	Description   string                `json:"description"`
	Location      string                `json:"location"`
	Submitter     domain.Principal      `json:"submitter"`
	Timestamp     domain.Height         `json:"timestamp"`
	Expiry        domain.Height         `json:"expiry"`
	PointsAwarded int64                 `json:"points_awarded"`
	Status        Status                `json:"status"`
}

func (c *Contribution) IsPending() bool {
	return c.Status == StatusPending
}

// CanUpdate checks that caller may edit the contribution and that the new
// field values are in bounds.
func (c *Contribution) CanUpdate(caller domain.Principal, metadata, description string) error {
	if c.Submitter != caller {
		return Fail(ReasonNotAuthorized, "only the submitter may update a contribution")
	}
	if !c.IsPending() {
		return Fail(ReasonUpdateNotAllowed, "approved contributions cannot be edited")
	}
	if !validText(metadata, MaxMetadataLength) {
		return Fail(ReasonInvalidUpdateParam, "metadata must be 1-256 characters")
	}
	if !validText(description, MaxDescriptionLength) {
		return Fail(ReasonInvalidUpdateParam, "description must be 1-512 characters")
	}
	return nil
}

// ApplyUpdate overwrites the editable fields and returns the audit record that
// replaces any earlier one. Call CanUpdate first.
func (c *Contribution) ApplyUpdate(caller domain.Principal, metadata, description string, at domain.Height) ContributionUpdate {
	c.Metadata = metadata
	c.Description = description
	c.Timestamp = at
	return ContributionUpdate{
		ContributionID:    c.ID,
		UpdateMetadata:    metadata,
		UpdateDescription: description,
		UpdateTimestamp:   at,
		Updater:           caller,
	}
}

// CanApprove checks the lifecycle half of approval. Role checks live in the
// service because they depend on registry configuration.
func (c *Contribution) CanApprove() error {
	if !c.Status.CanTransitionTo(StatusApproved) {
		return Fail(ReasonInvalidStatus, "contribution is already approved")
	}
	return nil
}

// ApplyApproval finalizes the contribution. Call CanApprove first.
func (c *Contribution) ApplyApproval(at domain.Height) {
	c.Status = StatusApproved
	c.Timestamp = at
}

// ContributionUpdate is the latest edit made to a contribution. Only one is
// retained per contribution; a newer update overwrites it.
type ContributionUpdate struct {
	ContributionID    domain.ContributionID `json:"contribution_id"`
	UpdateMetadata    string                `json:"update_metadata"`
	UpdateDescription string                `json:"update_description"`
	UpdateTimestamp   domain.Height         `json:"update_timestamp"`
	Updater           domain.Principal      `json:"updater"`
}

// validText enforces a non-empty, bounded character count.
func validText(s string, max int) bool {
	n := utf8.RuneCountInString(s)
	return n > 0 && n <= max
}
