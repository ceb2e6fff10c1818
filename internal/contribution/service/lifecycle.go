package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

// payment records a fee taken during a submission so it can be returned if
// the submission does not commit.
type payment struct {
	amount   int64
	from, to domain.Principal
}

// SubmitContribution validates and registers a new contribution, charging the
// submission fee to the caller. Checks run in a fixed order and the first
// failure wins:
//
//  1. capacity
//  2. hash length, metadata, category, data type, description, location,
//     expiry, points (models.SubmitRequest.ValidateShape)
//  3. duplicate hash
//  4. authority configured
//
// The fee is transferred before anything is written. A failed transfer
// aborts with PaymentFailed and consumes no id.
func (s *Service) SubmitContribution(ctx context.Context, req *models.SubmitRequest) (id domain.ContributionID, err error) {
	ctx, finish := s.begin(ctx, "submit_contribution")
	defer finish(&err)

	caller, err := requireCaller(ctx)
	if err != nil {
		return 0, err
	}
	height := requestcontext.Height(ctx)

	var (
		created *models.Contribution
		paid    *payment
	)
	err = s.store.RunInTx(ctx, func(tx ports.Tx) error {
		cfg, err := tx.LoadConfig(ctx)
		if err != nil {
			return err
		}
		if cfg.AtCapacity() {
			return models.Fail(models.ReasonCapacityExceeded, "registry has reached its contribution limit")
		}
		hash, err := req.ValidateShape(height)
		if err != nil {
			return err
		}
		exists, err := tx.HashExists(ctx, hash)
		if err != nil {
			return err
		}
		if exists {
			return models.Fail(models.ReasonAlreadyExists, "a contribution with this data hash already exists")
		}
		if !cfg.AuthorityConfigured() {
			return models.Fail(models.ReasonAuthorityNotVerified, "no authority has been configured")
		}

		if cfg.SubmissionFee > 0 {
			authority := *cfg.Authority
			if err := s.settlement.Transfer(ctx, cfg.SubmissionFee, caller, authority); err != nil {
				s.logger.WarnContext(ctx, "submission fee transfer failed",
					"caller", caller,
					"fee", cfg.SubmissionFee,
					"error", err,
				)
				return models.Fail(models.ReasonPaymentFailed, "submission fee could not be transferred")
			}
			paid = &payment{amount: cfg.SubmissionFee, from: caller, to: authority}
		}

		c := models.NewContribution(domain.ContributionID(cfg.NextID), hash, req, caller, height)
		if err := tx.Insert(ctx, c); err != nil {
			if errors.Is(err, sentinel.ErrHashIndexed) {
				return models.Fail(models.ReasonAlreadyExists, "a contribution with this data hash already exists")
			}
			return err
		}
		cfg.NextID++
		if err := tx.SaveConfig(ctx, cfg); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		if paid != nil {
			s.refund(ctx, paid)
		}
		return 0, translate(err, "failed to submit contribution")
	}

	if s.cache != nil {
		if err := s.cache.Remember(ctx, created.DataHash); err != nil {
			s.logger.WarnContext(ctx, "failed to cache data hash", "error", err)
		}
	}
	if s.metrics != nil {
		s.metrics.Submitted.Inc()
		if paid != nil {
			s.metrics.FeesCollected.Add(float64(paid.amount))
		}
	}
	cid := created.ID
	s.logAudit(ctx, audit.Event{
		Action:         audit.ActionContributionSubmitted,
		Actor:          caller,
		Height:         height,
		ContributionID: &cid,
		Detail:         "category=" + string(created.Category),
	}, "contribution_id", cid, "data_hash", created.DataHash.String())
	return created.ID, nil
}

// UpdateContribution lets the submitter edit metadata and description while
// the contribution is pending. The edit replaces any earlier update record.
func (s *Service) UpdateContribution(ctx context.Context, id domain.ContributionID, metadata, description string) (err error) {
	ctx, finish := s.begin(ctx, "update_contribution", attribute.Int64("contribution_id", int64(id)))
	defer finish(&err)

	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	height := requestcontext.Height(ctx)

	err = s.store.RunInTx(ctx, func(tx ports.Tx) error {
		c, err := s.findForWrite(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := c.CanUpdate(caller, metadata, description); err != nil {
			return err
		}
		u := c.ApplyUpdate(caller, metadata, description, height)
		if err := tx.Update(ctx, c); err != nil {
			return err
		}
		return tx.SaveUpdate(ctx, u)
	})
	if err != nil {
		return translate(err, "failed to update contribution")
	}

	if s.metrics != nil {
		s.metrics.Updated.Inc()
	}
	s.logAudit(ctx, audit.Event{
		Action:         audit.ActionContributionUpdated,
		Actor:          caller,
		Height:         height,
		ContributionID: &id,
	}, "contribution_id", id)
	return nil
}

// ApproveContribution finalizes a pending contribution. Only the configured
// authority may approve, and approval is one-way.
func (s *Service) ApproveContribution(ctx context.Context, id domain.ContributionID) (err error) {
	ctx, finish := s.begin(ctx, "approve_contribution", attribute.Int64("contribution_id", int64(id)))
	defer finish(&err)

	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	height := requestcontext.Height(ctx)

	err = s.store.RunInTx(ctx, func(tx ports.Tx) error {
		c, err := s.findForWrite(ctx, tx, id)
		if err != nil {
			return err
		}
		cfg, err := tx.LoadConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.IsAuthority(caller) {
			return models.Fail(models.ReasonNotAuthorized, "only the authority may approve contributions")
		}
		if err := c.CanApprove(); err != nil {
			return err
		}
		c.ApplyApproval(height)
		return tx.Update(ctx, c)
	})
	if err != nil {
		return translate(err, "failed to approve contribution")
	}

	if s.metrics != nil {
		s.metrics.Approved.Inc()
	}
	s.logAudit(ctx, audit.Event{
		Action:         audit.ActionContributionApproved,
		Actor:          caller,
		Height:         height,
		ContributionID: &id,
	}, "contribution_id", id)
	return nil
}

func (s *Service) findForWrite(ctx context.Context, tx ports.Tx, id domain.ContributionID) (*models.Contribution, error) {
	c, err := tx.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, models.Fail(models.ReasonNotFound, "contribution not found")
	}
	return c, err
}

// reconcileCache brings the cache entry for hash in line with the store's
// answer. Cache failures are logged and never fail the caller.
func (s *Service) reconcileCache(ctx context.Context, hash domain.DataHash, exists bool) {
	if s.cache == nil {
		return
	}
	known, err := s.cache.Known(ctx, hash)
	if err != nil {
		s.logger.WarnContext(ctx, "hash cache lookup failed", "error", err)
		return
	}
	switch {
	case exists && !known:
		err = s.cache.Remember(ctx, hash)
	case !exists && known:
		s.logger.WarnContext(ctx, "evicting stale cached data hash", "data_hash", hash.String())
		err = s.cache.Forget(ctx, hash)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to reconcile cached data hash", "error", err)
	}
}

// refund returns a fee taken by a submission that did not commit.
func (s *Service) refund(ctx context.Context, p *payment) {
	if err := s.settlement.Transfer(context.WithoutCancel(ctx), p.amount, p.to, p.from); err != nil {
		s.logger.ErrorContext(ctx, "failed to refund submission fee",
			"amount", p.amount,
			"payer", p.from,
			"error", err,
		)
	}
}
