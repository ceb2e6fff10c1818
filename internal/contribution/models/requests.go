package models

import (
	"unicode/utf8"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

// SubmitRequest carries the caller-controlled fields of a new contribution.
// DataHash is raw bytes so that a wrong length is reported with the registry's
// own precedence instead of failing at decode time.
type SubmitRequest struct {
	DataHash      []byte
	Metadata      string
	Category      Category
	DataType      DataType
	Description   string
	Location      string
	Expiry        domain.Height
	InitialPoints int64
}

// ValidateShape runs the structural checks of a submission in their fixed
// order. The first failure wins. State-dependent checks (capacity, duplicate
// hash, authority) are the service's job.
func (r *SubmitRequest) ValidateShape(current domain.Height) (domain.DataHash, error) {
	hash, ok := domain.DataHashFromBytes(r.DataHash)
	if !ok {
		return hash, Fail(ReasonInvalidHash, "data hash must be exactly 32 bytes")
	}
	if !validText(r.Metadata, MaxMetadataLength) {
		return hash, Fail(ReasonInvalidMetadata, "metadata must be 1-256 characters")
	}
	if !r.Category.IsValid() {
		return hash, Fail(ReasonInvalidCategory, "category must be one of: "+joinCategories())
	}
	if !r.DataType.IsValid() {
		return hash, Fail(ReasonInvalidDataType, "data type must be one of: "+joinDataTypes())
	}
	if !validText(r.Description, MaxDescriptionLength) {
		return hash, Fail(ReasonInvalidDescription, "description must be 1-512 characters")
	}
	if utf8.RuneCountInString(r.Location) > MaxLocationLength {
		return hash, Fail(ReasonInvalidLocation, "location must be at most 100 characters")
	}
	if r.Expiry <= current {
		return hash, Fail(ReasonInvalidExpiry, "expiry must be after the current block height")
	}
	if r.InitialPoints < 0 {
		return hash, Fail(ReasonInvalidPoints, "initial points cannot be negative")
	}
	return hash, nil
}

// NewContribution builds a pending contribution from a validated request.
func NewContribution(id domain.ContributionID, hash domain.DataHash, r *SubmitRequest, submitter domain.Principal, at domain.Height) *Contribution {
	return &Contribution{
		ID:            id,
		DataHash:      hash,
		Metadata:      r.Metadata,
		Category:      r.Category,
		DataType:      r.DataType,
		Description:   r.Description,
		Location:      r.Location,
		Submitter:     submitter,
		Timestamp:     at,
		Expiry:        r.Expiry,
		PointsAwarded: r.InitialPoints,
		Status:        StatusPending,
	}
}
