package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	catalogservice "trafficdesk/contexts/ad-operations/catalog-service"
	catalogpostgres "trafficdesk/contexts/ad-operations/catalog-service/adapters/postgres"
	ticketservice "trafficdesk/contexts/ad-operations/ticket-service"
	"trafficdesk/contexts/ad-operations/ticket-service/adapters/platformapi"
	ticketpostgres "trafficdesk/contexts/ad-operations/ticket-service/adapters/postgres"
	"trafficdesk/internal/platform/config"
	"trafficdesk/internal/platform/db"
	"trafficdesk/internal/platform/httpserver"
	"trafficdesk/internal/platform/notify"
	"trafficdesk/internal/platform/queue"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	tickets  ticketservice.Module
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	hub := notify.NewHub(logger)
	pg, catalog, tickets, err := buildModules(context.Background(), cfg, hub, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(catalog, tickets, hub, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	pg, _, tickets, err := buildModules(context.Background(), cfg, notify.NewHub(logger), logger)
	if err != nil {
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		tickets:  tickets,
		logger:   logger,
	}, nil
}

// buildModules wires the catalog and ticket modules against postgres, SQS
// and the platform gateway. The API and the worker share this wiring so the
// deploy endpoint and the deployment consumer see the same queue.
func buildModules(ctx context.Context, cfg config.Config, hub *notify.Hub, logger *slog.Logger) (*db.Postgres, catalogservice.Module, ticketservice.Module, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, catalogservice.Module{}, ticketservice.Module{}, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, catalogservice.Module{}, ticketservice.Module{}, errors.New("SQS_QUEUE_URL is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, catalogservice.Module{}, ticketservice.Module{}, err
	}

	deployQueue, err := queue.NewSQSQueue(ctx, queue.SQSConfig{
		QueueURL: cfg.SQSQueueURL,
		Region:   cfg.SQSRegion,
		Endpoint: cfg.SQSEndpoint,
		WaitTime: cfg.SQSWaitTime,
	}, logger)
	if err != nil {
		return nil, catalogservice.Module{}, ticketservice.Module{}, err
	}

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	catalog := catalogservice.NewModule(catalogservice.Dependencies{
		Markets:     catalogRepo,
		Brands:      catalogRepo,
		Channels:    catalogRepo,
		Campaigns:   catalogRepo,
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	ticketRepo := ticketpostgres.NewRepository(pg.DB, logger)
	tickets := ticketservice.NewModule(ticketservice.Dependencies{
		Tickets:   ticketRepo,
		Directory: newCatalogDirectory(catalogRepo, catalogRepo, catalogRepo, catalogRepo),
		Queue:     deployQueue,
		Gateway:   platformapi.NewClient(cfg.GatewayTimeout, logger),
		Credentials: platformapi.NewResolver(platformapi.ResolverConfig{
			MetaAccessToken:   cfg.MetaAccessToken,
			MetaBaseURL:       cfg.MetaBaseURL,
			TikTokAccessToken: cfg.TikTokAccessToken,
			TikTokBaseURL:     cfg.TikTokBaseURL,
			GoogleAccessToken: cfg.GoogleAccessToken,
			GoogleBaseURL:     cfg.GoogleBaseURL,
		}),
		Notifier:    hub,
		Clock:       ticketpostgres.SystemClock{},
		IDGenerator: ticketpostgres.UUIDGenerator{},
		MaxAttempts: cfg.DeployMaxAttempts,
		MaxElapsed:  cfg.DeployMaxElapsed,
		Logger:      logger,
	})

	return pg, catalog, tickets, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return w.tickets.Deployer.Run(ctx)
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
