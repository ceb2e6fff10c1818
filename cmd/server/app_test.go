package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiboi241-boop/EduScience/internal/contribution/handler"
	jwttoken "github.com/chiboi241-boop/EduScience/internal/jwt_token"
	"github.com/chiboi241-boop/EduScience/internal/platform/config"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/testutil"
)

const (
	authority = domain.Principal("ST1AUTHORITY")
	submitter = domain.Principal("ST2SUBMITTER")
)

func testConfig(t *testing.T) config.Server {
	t.Helper()
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	cfg.Registry.SettlementMode = config.SettlementMetered
	cfg.Registry.OpeningBalance = 1000
	return cfg
}

func mintToken(t *testing.T, cfg config.Server, p domain.Principal) string {
	t.Helper()
	svc := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	token, err := svc.GenerateAccessToken(p, time.Hour)
	require.NoError(t, err)
	return token
}

func TestRegistryOverHTTP(t *testing.T) {
	cfg := testConfig(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := buildApp(context.Background(), cfg, log, appMetrics{})
	require.NoError(t, err)
	defer a.Close()

	authorityToken := mintToken(t, cfg, authority)
	submitterToken := mintToken(t, cfg, submitter)
	hexHash := strings.Repeat("01", domain.DataHashLength)
	submission := handler.SubmitContributionRequest{
		DataHash:      hexHash,
		Metadata:      "Meta",
		Category:      "environment",
		DataType:      "observation",
		Description:   "Desc",
		Location:      "LocX",
		Expiry:        100,
		InitialPoints: 50,
	}
	submit := func(t *testing.T) *http.Request {
		return testutil.Authorize(testutil.NewJSONRequest(t, http.MethodPost, "/contributions", submission), submitterToken, 0)
	}

	testutil.Given(t, "no authority is configured", func(t *testing.T) {
		rr := testutil.DoRequest(a.router, submit(t))
		testutil.AssertReason(t, rr, http.StatusPreconditionFailed, "authority_not_verified")
	})

	testutil.When(t, "the authority is set and a contribution submitted", func(t *testing.T) {
		req := testutil.Authorize(testutil.NewJSONRequest(t, http.MethodPost, "/admin/authority",
			handler.SetAuthorityRequest{Principal: authority.String()}), authorityToken, 0)
		testutil.AssertStatus(t, testutil.DoRequest(a.router, req), http.StatusOK)

		rr := testutil.DoRequest(a.router, submit(t))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[handler.SubmitContributionResponse](t, rr)
		assert.Equal(t, domain.ContributionID(0), resp.ID)
	})

	testutil.Then(t, "the fee moved and duplicates are rejected", func(t *testing.T) {
		assert.Equal(t, int64(500), a.ledger.Balance(submitter))
		assert.Equal(t, int64(1500), a.ledger.Balance(authority))

		rr := testutil.DoRequest(a.router, submit(t))
		testutil.AssertReason(t, rr, http.StatusConflict, "already_exists")
		assert.Len(t, a.ledger.Journal(), 1)

		req := testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/contributions/exists/"+hexHash), submitterToken, 1)
		rr = testutil.DoRequest(a.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.True(t, testutil.UnmarshalResponse[handler.ExistsResponse](t, rr).Exists)
	})

	testutil.Then(t, "only the authority approves", func(t *testing.T) {
		req := testutil.Authorize(testutil.NewRequest(t, http.MethodPost, "/contributions/0/approve"), submitterToken, 2)
		testutil.AssertReason(t, testutil.DoRequest(a.router, req), http.StatusForbidden, "not_authorized")

		req = testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/contributions/0"), submitterToken, 2)
		rr := testutil.DoRequest(a.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.False(t, testutil.UnmarshalResponse[handler.ContributionResponse](t, rr).Approved)

		req = testutil.Authorize(testutil.NewRequest(t, http.MethodPost, "/contributions/0/approve"), authorityToken, 3)
		testutil.AssertStatus(t, testutil.DoRequest(a.router, req), http.StatusOK)
	})

	testutil.Then(t, "the audit trail records each change", func(t *testing.T) {
		req := testutil.Authorize(testutil.NewRequest(t, http.MethodGet, "/admin/audit"), authorityToken, 4)
		rr := testutil.DoRequest(a.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Len(t, testutil.UnmarshalResponse[handler.AuditResponse](t, rr).Events, 3)
	})
}

func TestRegistryPaymentFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Registry.OpeningBalance = 100
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := buildApp(context.Background(), cfg, log, appMetrics{})
	require.NoError(t, err)
	defer a.Close()

	ctx := testutil.CallerContext(authority, 0)
	require.NoError(t, a.service.SetAuthority(ctx, authority))

	submitterToken := mintToken(t, cfg, submitter)
	submit := func(t *testing.T) *http.Request {
		return testutil.Authorize(testutil.NewJSONRequest(t, http.MethodPost, "/contributions", handler.SubmitContributionRequest{
			DataHash:    strings.Repeat("02", domain.DataHashLength),
			Metadata:    "Meta",
			Category:    "physics",
			DataType:    "measurement",
			Description: "Desc",
			Expiry:      10,
		}), submitterToken, 1)
	}
	testutil.AssertReason(t, testutil.DoRequest(a.router, submit(t)), http.StatusPaymentRequired, "payment_failed")

	count, err := a.service.GetContributionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, a.ledger.Journal())

	amount := int64(400)
	req := testutil.Authorize(testutil.NewJSONRequest(t, http.MethodPost, "/admin/credits",
		handler.CreditRequest{Principal: submitter.String(), Amount: &amount}), mintToken(t, cfg, authority), 2)
	rr := testutil.DoRequest(a.router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, int64(500), testutil.UnmarshalResponse[handler.BalanceResponse](t, rr).Balance)

	testutil.AssertStatus(t, testutil.DoRequest(a.router, submit(t)), http.StatusCreated)
	assert.Zero(t, a.ledger.Balance(submitter))
}
