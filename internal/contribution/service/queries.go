package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
)

// GetContribution returns the contribution with id. Absence is reported by
// found=false, not by an error; err is set only when the store fails.
func (s *Service) GetContribution(ctx context.Context, id domain.ContributionID) (c *models.Contribution, found bool, err error) {
	ctx, finish := s.begin(ctx, "get_contribution", attribute.Int64("contribution_id", int64(id)))
	defer finish(&err)

	c, err = s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, translate(err, "failed to load contribution")
	}
	return c, true, nil
}

// GetContributionUpdate returns the latest edit recorded for id, if any.
func (s *Service) GetContributionUpdate(ctx context.Context, id domain.ContributionID) (u *models.ContributionUpdate, found bool, err error) {
	ctx, finish := s.begin(ctx, "get_contribution_update", attribute.Int64("contribution_id", int64(id)))
	defer finish(&err)

	u, err = s.store.FindUpdate(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, translate(err, "failed to load contribution update")
	}
	return u, true, nil
}

// GetContributionCount returns the number of contributions ever accepted,
// which is also the id the next submission will receive.
func (s *Service) GetContributionCount(ctx context.Context) (n uint64, err error) {
	ctx, finish := s.begin(ctx, "get_contribution_count")
	defer finish(&err)

	cfg, err := s.store.LoadConfig(ctx)
	if err != nil {
		return 0, translate(err, "failed to load registry config")
	}
	return cfg.NextID, nil
}

// CheckExistence reports whether hash is in the registry's hash index. The
// cache is reconciled with the answer afterwards.
func (s *Service) CheckExistence(ctx context.Context, hash domain.DataHash) (exists bool, err error) {
	ctx, finish := s.begin(ctx, "check_existence")
	defer finish(&err)

	exists, err = s.store.HashExists(ctx, hash)
	if err != nil {
		return false, translate(err, "failed to check data hash")
	}
	s.reconcileCache(ctx, hash, exists)
	return exists, nil
}

// GetConfig returns a snapshot of the registry parameters.
func (s *Service) GetConfig(ctx context.Context) (cfg models.RegistryConfig, err error) {
	ctx, finish := s.begin(ctx, "get_config")
	defer finish(&err)

	cfg, err = s.store.LoadConfig(ctx)
	if err != nil {
		return models.RegistryConfig{}, translate(err, "failed to load registry config")
	}
	return cfg.Clone(), nil
}
