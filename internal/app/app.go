// Package app wires the payment orchestrator's collaborators together: the
// Mongo-backed terminal/transaction stores, the BIN resolver, the
// provider-adapter registry, the orchestrator service, and the HTTP server,
// then runs the process until a shutdown signal arrives.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vpos-orchestrator/internal/adapters/audit"
	"vpos-orchestrator/internal/adapters/bin"
	"vpos-orchestrator/internal/adapters/events"
	"vpos-orchestrator/internal/adapters/http/handlers/payment"
	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/adapters/provider/garanti"
	"vpos-orchestrator/internal/adapters/provider/iyzico"
	"vpos-orchestrator/internal/adapters/provider/payten"
	"vpos-orchestrator/internal/adapters/provider/qnb"
	"vpos-orchestrator/internal/adapters/provider/vakifbank"
	"vpos-orchestrator/internal/adapters/provider/ykb"
	"vpos-orchestrator/internal/config"
	mongorepo "vpos-orchestrator/internal/repository/mongo"
	"vpos-orchestrator/internal/usecase/paymentops"
	"vpos-orchestrator/internal/infrastructure/shutdown"
	"vpos-orchestrator/pkg/cryptoutil"
	"vpos-orchestrator/pkg/log"
	"vpos-orchestrator/pkg/server"
	"vpos-orchestrator/pkg/server/router"
	"vpos-orchestrator/pkg/store"
)

const mongoDisconnectTimeout = 5 * time.Second

// App owns every long-lived dependency the orchestrator needs and the HTTP
// server that exposes it.
type App struct {
	logger     *zap.Logger
	config     config.Configs
	mongo      store.Mongo
	httpServer *server.Server
	eventsPub  *events.NatsPublisher
	auditSink  *audit.ClickHouseSink
}

// New builds the application: load config, dial the store, register every
// acquirer adapter, wire the orchestrator, and mount its HTTP handlers.
//
// Boot order mirrors the dependency graph, not a preference:
//  1. Logger - first, so every later step can log
//  2. Config - env vars, with .env for local development
//  3. Mongo - the terminal/transaction store backing everything below
//  4. Field cipher - card and credential encryption at rest
//  5. BIN resolver - the acquirer-selection policy's one external call
//  6. Provider registry - one constructor per acquirer
//  7. Orchestrator service - wires 2-6 together
//  8. HTTP server - routes and middleware
func New() (*App, error) {
	app := &App{logger: log.New()}

	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	app.config = cfg
	app.logger.Info("configuration loaded",
		zap.String("mode", cfg.APP.Mode),
		zap.String("port", cfg.APP.Port),
	)

	mongoStore, err := store.NewMongo(cfg.MONGO.URI)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	app.mongo = mongoStore
	app.logger.Info("mongo connected")

	dbName := cfg.MONGO.Database
	if dbName == "" {
		dbName = "vpos"
	}
	db := mongoStore.Client.Database(dbName)

	cipher := cryptoutil.NewFieldCipher(cfg.CRYPTO.MasterSecret)

	var redisClient *redis.Client
	if cfg.BIN.RedisURL != "" {
		redisStore, err := store.NewRedis(cfg.BIN.RedisURL)
		if err != nil {
			app.logger.Warn("redis-backed bin cache disabled", zap.Error(err))
		} else {
			redisClient = redisStore.Connection
		}
	}
	binResolver := bin.NewCachingResolver(bin.NewHTTPResolver(cfg.BIN.APIURL), redisClient)

	registry := provider.NewRegistry()
	registry.Register("garanti", garanti.New)
	registry.Register("payten", payten.New)
	registry.Register("ykb", ykb.New)
	registry.Register("vakifbank", vakifbank.New)
	registry.Register("qnb", qnb.New)
	registry.Register("iyzico", iyzico.New)

	httpClient := provider.NewHTTPClient(app.logger, false)

	// Events and the audit sink are both optional: an unset URL/address
	// just means the orchestrator runs without that side channel.
	var eventsPub paymentops.EventPublisher
	if cfg.EVENTS.URL != "" {
		pub, err := events.NewNatsPublisher(cfg.EVENTS.URL)
		if err != nil {
			app.logger.Warn("event publisher disabled", zap.Error(err))
		} else {
			app.eventsPub = pub
			eventsPub = pub
		}
	}

	var auditSink paymentops.AuditSink
	if cfg.CLICKHOUSE.Addr != "" {
		sink, err := audit.NewClickHouseSink(cfg.CLICKHOUSE.Addr, cfg.CLICKHOUSE.Database, cfg.CLICKHOUSE.Username, cfg.CLICKHOUSE.Password)
		if err != nil {
			app.logger.Warn("audit sink disabled", zap.Error(err))
		} else {
			app.auditSink = sink
			auditSink = sink
		}
	}

	service := paymentops.NewService(paymentops.Config{
		Terminals:       mongorepo.NewTerminalRepository(db),
		Transactions:    mongorepo.NewTransactionRepository(db, cipher),
		BinResolver:     binResolver,
		Registry:        registry,
		HTTPClient:      httpClient,
		Cipher:          cipher,
		CallbackBaseURL: cfg.CALLBACK.BaseURL,
		Logger:          app.logger,
		Events:          eventsPub,
		AuditSink:       auditSink,
	})

	paymentHandler := payment.NewHandler(service)

	r := router.NewWithOrigin(cfg.CORS.Origin)
	r.Mount("/api/payment", paymentHandler.Routes())
	r.Mount("/payment", paymentHandler.PublicRoutes())

	httpSrv, err := server.New(server.WithHTTPServer(r, cfg.APP.Port))
	if err != nil {
		return nil, fmt.Errorf("initializing http server: %w", err)
	}
	app.httpServer = httpSrv
	app.logger.Info("application initialized")

	return app, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains in-flight requests and closes the store connection.
func (a *App) Run() error {
	if err := a.httpServer.Run(a.logger); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	a.logger.Info("application started", zap.String("port", a.config.APP.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownMgr := shutdown.NewManager(a.logger)
	shutdownMgr.RegisterHook(shutdown.PhaseStopAcceptingRequests, "stop_http_server", func(ctx context.Context) error {
		return a.httpServer.Stop(ctx)
	})
	shutdownMgr.RegisterHook(shutdown.PhaseCleanup, "close_mongo", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, mongoDisconnectTimeout)
		defer cancel()
		return a.mongo.Client.Disconnect(ctx)
	})
	if a.eventsPub != nil {
		shutdownMgr.RegisterHook(shutdown.PhaseCleanup, "close_events_publisher", func(ctx context.Context) error {
			a.eventsPub.Close()
			return nil
		})
	}
	if a.auditSink != nil {
		shutdownMgr.RegisterHook(shutdown.PhaseCleanup, "close_audit_sink", func(ctx context.Context) error {
			return a.auditSink.Close()
		})
	}
	shutdownMgr.RegisterHook(shutdown.PhasePostShutdown, "flush_logs", func(ctx context.Context) error {
		return log.SyncLogger(a.logger)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := shutdownMgr.Shutdown(ctx); err != nil {
		a.logger.Error("graceful shutdown completed with errors", zap.Error(err))
		return err
	}

	a.logger.Info("application stopped gracefully")
	return nil
}
