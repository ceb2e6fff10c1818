package handler

import (
	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
)

type SetAuthorityRequest struct {
	Principal string `json:"principal"`
}

// ParameterRequest carries the new value of a numeric registry parameter.
type ParameterRequest struct {
	Value *int64 `json:"value"`
}

// SubmitContributionRequest is the wire form of a submission. DataHash is hex.
type SubmitContributionRequest struct {
	DataHash      string `json:"data_hash"`
	Metadata      string `json:"metadata"`
	Category      string `json:"category"`
	DataType      string `json:"data_type"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Expiry        uint64 `json:"expiry"`
	InitialPoints int64  `json:"initial_points"`
}

type UpdateContributionRequest struct {
	Metadata    string `json:"metadata"`
	Description string `json:"description"`
}

// CreditRequest funds a principal's fee balance.
type CreditRequest struct {
	Principal string `json:"principal"`
	Amount    *int64 `json:"amount"`
}

type BalanceResponse struct {
	Principal domain.Principal `json:"principal"`
	Balance   int64            `json:"balance"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type SubmitContributionResponse struct {
	ID domain.ContributionID `json:"id"`
}

type CountResponse struct {
	Count uint64 `json:"count"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// ContributionResponse renders a contribution with its hash in hex.
type ContributionResponse struct {
	ID            domain.ContributionID `json:"id"`
	DataHash      string                `json:"data_hash"`
	Metadata      string                `json:"metadata"`
	Category      models.Category       `json:"category"`
	DataType      models.DataType       `json:"data_type"`
	Description   string                `json:"description"`
	Location      string                `json:"location"`
	Submitter     domain.Principal      `json:"submitter"`
	Timestamp     domain.Height         `json:"timestamp"`
	Expiry        domain.Height         `json:"expiry"`
	PointsAwarded int64                 `json:"points_awarded"`
	Status        models.Status         `json:"status"`
	Approved      bool                  `json:"approved"`
}

func toContributionResponse(c *models.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:            c.ID,
		DataHash:      c.DataHash.String(),
		Metadata:      c.Metadata,
		Category:      c.Category,
		DataType:      c.DataType,
		Description:   c.Description,
		Location:      c.Location,
		Submitter:     c.Submitter,
		Timestamp:     c.Timestamp,
		Expiry:        c.Expiry,
		PointsAwarded: c.PointsAwarded,
		Status:        c.Status,
		Approved:      c.Status == models.StatusApproved,
	}
}

type AuditResponse struct {
	Events []audit.Event `json:"events"`
}
