package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chiboi241-boop/EduScience/internal/contribution/handler"
	contributionMetrics "github.com/chiboi241-boop/EduScience/internal/contribution/metrics"
	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/internal/contribution/service"
	"github.com/chiboi241-boop/EduScience/internal/contribution/store/hashcache"
	contributionmemory "github.com/chiboi241-boop/EduScience/internal/contribution/store/memory"
	contributionpg "github.com/chiboi241-boop/EduScience/internal/contribution/store/postgres"
	jwttoken "github.com/chiboi241-boop/EduScience/internal/jwt_token"
	"github.com/chiboi241-boop/EduScience/internal/platform/config"
	"github.com/chiboi241-boop/EduScience/internal/platform/kafka"
	"github.com/chiboi241-boop/EduScience/internal/platform/metrics"
	"github.com/chiboi241-boop/EduScience/internal/platform/postgres"
	platformredis "github.com/chiboi241-boop/EduScience/internal/platform/redis"
	"github.com/chiboi241-boop/EduScience/internal/settlement"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit/publisher"
	auditmemory "github.com/chiboi241-boop/EduScience/pkg/platform/audit/store/memory"
	auditpg "github.com/chiboi241-boop/EduScience/pkg/platform/audit/store/postgres"
)

// appMetrics groups the collectors registered once per process. Tests pass
// the zero value to skip registration.
type appMetrics struct {
	http         *metrics.Metrics
	registry     *contributionMetrics.Metrics
	auditMetrics *publisher.Metrics
}

func newAppMetrics() appMetrics {
	return appMetrics{
		http:         metrics.New(),
		registry:     contributionMetrics.New(),
		auditMetrics: publisher.NewMetrics(),
	}
}

// app holds the wired registry and the resources it must release.
type app struct {
	router    http.Handler
	service   *service.Service
	publisher *publisher.Publisher
	ledger    *settlement.Ledger
	closers   []func()
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg config.Server, log *slog.Logger, m appMetrics) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	seed := models.DefaultRegistryConfig()
	seed.MaxContributions = cfg.Registry.MaxContributions
	seed.SubmissionFee = cfg.Registry.SubmissionFee
	seed.RewardRate = cfg.Registry.RewardRate
	seed.ValidationThreshold = cfg.Registry.ValidationThreshold

	var (
		store      ports.Store
		auditStore audit.Store
		checks     []healthCheck
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := openPostgres(ctx, cfg.Store, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		checks = append(checks, healthCheck{name: "postgres", check: db.PingContext})

		pgStore, err := contributionpg.New(ctx, db, seed)
		if err != nil {
			return nil, fmt.Errorf("init registry store: %w", err)
		}
		store = pgStore

		pool, err := auditpg.Open(ctx, cfg.Store.PostgresURL, int32(cfg.Store.MaxOpenConns))
		if err != nil {
			return nil, fmt.Errorf("connect audit store: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		checks = append(checks, healthCheck{name: "audit_postgres", check: pool.Ping})
		auditStore = auditpg.New(pool)
	default:
		store = contributionmemory.New(seed)
		auditStore = auditmemory.NewInMemoryStore()
	}

	publisherOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithAsyncBuffer(cfg.Registry.AuditBuffer),
	}
	if m.auditMetrics != nil {
		publisherOpts = append(publisherOpts, publisher.WithMetrics(m.auditMetrics))
	}
	producer, err := kafka.NewProducer(ctx, cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	if producer != nil {
		a.closers = append(a.closers, producer.Close)
		checks = append(checks, healthCheck{name: "kafka", check: producer.Health})
		if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
			return nil, err
		}
		publisherOpts = append(publisherOpts, publisher.WithSink(kafka.NewAuditSink(producer)))
		log.Info("audit events forwarded to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	a.publisher = publisher.NewPublisher(auditStore, publisherOpts...)
	a.closers = append(a.closers, a.publisher.Close)

	a.ledger = settlement.New(settlement.Mode(cfg.Registry.SettlementMode),
		settlement.WithOpeningBalance(cfg.Registry.OpeningBalance),
		settlement.WithLogger(log),
	)

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(a.publisher),
		service.WithAuthorityCallerForParams(cfg.RequireAuthorityCallerForParams),
	}
	if m.registry != nil {
		serviceOpts = append(serviceOpts, service.WithMetrics(m.registry))
	}
	if cfg.Registry.SettlementMode == config.SettlementMetered {
		serviceOpts = append(serviceOpts, service.WithFunding(a.ledger))
	}
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		checks = append(checks, healthCheck{name: "redis", check: redisClient.Health})
		serviceOpts = append(serviceOpts, service.WithExistenceCache(hashcache.NewRedisCache(redisClient)))
		log.Info("redis existence cache enabled")
	}
	a.service = service.New(store, a.ledger, serviceOpts...)

	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	registryHandler := handler.New(a.service, a.publisher, log, m.http, jwttoken.NewJWTServiceAdapter(jwtService))

	r := chi.NewRouter()
	r.Get("/healthz", healthHandler(checks, log))
	r.Handle("/metrics", promhttp.Handler())
	registryHandler.Register(r)
	a.router = r

	return a, nil
}

func openPostgres(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Info("postgres migrations applied")
	}
	return db, nil
}
