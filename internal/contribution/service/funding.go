package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

// FundPrincipal credits principal's fee balance. Only the configured
// authority may fund, and only when settlement is metered.
func (s *Service) FundPrincipal(ctx context.Context, principal domain.Principal, amount int64) (err error) {
	ctx, finish := s.begin(ctx, "fund_principal", attribute.Int64("amount", amount))
	defer finish(&err)

	if s.funding == nil {
		return dErrors.New(dErrors.CodePreconditionFailed, "settlement is not metered")
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	cfg, err := s.store.LoadConfig(ctx)
	if err != nil {
		return translate(err, "failed to load registry config")
	}
	if !cfg.IsAuthority(caller) {
		return models.Fail(models.ReasonNotAuthorized, "only the authority may fund principals")
	}
	if principal == "" || principal.IsNull() {
		return dErrors.New(dErrors.CodeValidation, "a fundable principal is required")
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "credit amount must be positive")
	}
	if err := s.funding.Credit(ctx, principal, amount); err != nil {
		return translate(err, "failed to credit balance")
	}

	s.logAudit(ctx, audit.Event{
		Action: audit.ActionBalanceCredited,
		Actor:  caller,
		Height: requestcontext.Height(ctx),
		Detail: fmt.Sprintf("%s+%d", principal, amount),
	}, "principal", principal, "amount", amount)
	return nil
}

// GetBalance returns principal's fee balance, including any opening credit.
func (s *Service) GetBalance(ctx context.Context, principal domain.Principal) (balance int64, err error) {
	_, finish := s.begin(ctx, "get_balance")
	defer finish(&err)

	if s.funding == nil {
		return 0, dErrors.New(dErrors.CodePreconditionFailed, "settlement is not metered")
	}
	return s.funding.Balance(principal), nil
}
