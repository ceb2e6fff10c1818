package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

// SetAuthority configures the approving principal. It succeeds exactly once.
func (s *Service) SetAuthority(ctx context.Context, principal domain.Principal) (err error) {
	ctx, finish := s.begin(ctx, "set_authority")
	defer finish(&err)

	err = s.store.RunInTx(ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(ctx)
		if err != nil {
			return err
		}
		if err := cfg.CanSetAuthority(principal); err != nil {
			return err
		}
		cfg.ApplyAuthority(principal)
		return tx.SaveConfig(ctx, cfg)
	})
	if err != nil {
		return translate(err, "failed to set authority")
	}

	s.logAudit(ctx, audit.Event{
		Action: audit.ActionAuthoritySet,
		Actor:  requestcontext.Caller(ctx),
		Height: requestcontext.Height(ctx),
		Detail: "authority=" + principal.String(),
	}, "authority", principal)
	return nil
}

// SetSubmissionFee replaces the fee charged per submission.
func (s *Service) SetSubmissionFee(ctx context.Context, fee int64) error {
	return s.setParameter(ctx, "set_submission_fee", "submission_fee", fee, models.ValidateFee,
		func(cfg *models.RegistryConfig) { cfg.SubmissionFee = fee })
}

// SetRewardRate replaces the reward rate (1..50).
func (s *Service) SetRewardRate(ctx context.Context, rate int64) error {
	return s.setParameter(ctx, "set_reward_rate", "reward_rate", rate, models.ValidateRewardRate,
		func(cfg *models.RegistryConfig) { cfg.RewardRate = rate })
}

// SetValidationThreshold replaces the validation threshold (1..10).
func (s *Service) SetValidationThreshold(ctx context.Context, n int64) error {
	return s.setParameter(ctx, "set_validation_threshold", "validation_threshold", n, models.ValidateValidationThreshold,
		func(cfg *models.RegistryConfig) { cfg.ValidationThreshold = n })
}

// setParameter gates a parameter change on a configured authority (and, with
// the policy toggle, on the caller being that authority), then validates and
// applies the new value.
func (s *Service) setParameter(
	ctx context.Context,
	op, name string,
	value int64,
	validate func(int64) error,
	apply func(*models.RegistryConfig),
) (err error) {
	ctx, finish := s.begin(ctx, op, attribute.Int64(name, value))
	defer finish(&err)

	caller := requestcontext.Caller(ctx)
	err = s.store.RunInTx(ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.AuthorityConfigured() {
			return models.Fail(models.ReasonNotAuthorized, "authority is not configured")
		}
		if s.requireAuthorityForParams && !cfg.IsAuthority(caller) {
			return models.Fail(models.ReasonNotAuthorized, "only the authority may change registry parameters")
		}
		if err := validate(value); err != nil {
			return err
		}
		apply(&cfg)
		return tx.SaveConfig(ctx, cfg)
	})
	if err != nil {
		return translate(err, "failed to update "+name)
	}

	s.logAudit(ctx, audit.Event{
		Action: audit.ActionParameterChanged,
		Actor:  caller,
		Height: requestcontext.Height(ctx),
		Detail: fmt.Sprintf("%s=%d", name, value),
	}, "parameter", name, "value", value)
	return nil
}
