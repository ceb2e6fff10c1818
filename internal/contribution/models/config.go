package models

import "github.com/chiboi241-boop/EduScience/pkg/domain"

// Parameter bounds.
const (
	MinRewardRate          = 1
	MaxRewardRate          = 50
	MinValidationThreshold = 1
	MaxValidationThreshold = 10
)

// Defaults applied to a fresh registry.
const (
	DefaultMaxContributions    = 10000
	DefaultSubmissionFee       = 500
	DefaultRewardRate          = 10
	DefaultValidationThreshold = 3
)

// RegistryConfig is the process-wide parameter set.
//
// Authority is nil until configured and is write-once afterwards.
type RegistryConfig struct {
	NextID              uint64            `json:"next_id"`
	MaxContributions    uint64            `json:"max_contributions"`
	SubmissionFee       int64             `json:"submission_fee"`
	Authority           *domain.Principal `json:"authority,omitempty"`
	RewardRate          int64             `json:"reward_rate"`
	ValidationThreshold int64             `json:"validation_threshold"`
}

// DefaultRegistryConfig returns the parameters a new registry starts with.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		MaxContributions:    DefaultMaxContributions,
		SubmissionFee:       DefaultSubmissionFee,
		RewardRate:          DefaultRewardRate,
		ValidationThreshold: DefaultValidationThreshold,
	}
}

func (c *RegistryConfig) AuthorityConfigured() bool {
	return c.Authority != nil
}

// IsAuthority reports whether p is the configured authority.
func (c *RegistryConfig) IsAuthority(p domain.Principal) bool {
	return c.Authority != nil && *c.Authority == p
}

func (c *RegistryConfig) AtCapacity() bool {
	return c.NextID >= c.MaxContributions
}

// CanSetAuthority validates a write-once authority assignment.
func (c *RegistryConfig) CanSetAuthority(p domain.Principal) error {
	if p == "" || p.IsNull() {
		return Fail(ReasonInvalidAuthority, "authority cannot be the null principal")
	}
	if c.AuthorityConfigured() {
		return Fail(ReasonAlreadyConfigured, "authority is already configured")
	}
	return nil
}

// ApplyAuthority sets the authority. Call CanSetAuthority first.
func (c *RegistryConfig) ApplyAuthority(p domain.Principal) {
	c.Authority = &p
}

// ValidateFee checks a submission fee.
func ValidateFee(fee int64) error {
	if fee < 0 {
		return Fail(ReasonInvalidFee, "submission fee cannot be negative")
	}
	return nil
}

// ValidateRewardRate checks a reward rate against 1..50.
func ValidateRewardRate(rate int64) error {
	if rate < MinRewardRate || rate > MaxRewardRate {
		return Fail(ReasonInvalidRate, "reward rate must be between 1 and 50")
	}
	return nil
}

// ValidateValidationThreshold checks a threshold against 1..10.
func ValidateValidationThreshold(n int64) error {
	if n < MinValidationThreshold || n > MaxValidationThreshold {
		return Fail(ReasonInvalidThreshold, "validation threshold must be between 1 and 10")
	}
	return nil
}

// Clone returns a deep copy so callers cannot alias the stored authority.
func (c RegistryConfig) Clone() RegistryConfig {
	if c.Authority != nil {
		a := *c.Authority
		c.Authority = &a
	}
	return c
}
