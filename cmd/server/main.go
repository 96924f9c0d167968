package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/salesgo/backend/api/handler"
	"github.com/salesgo/backend/domain"
	"github.com/salesgo/backend/internal/config"
	"github.com/salesgo/backend/internal/infrastructure/journal"
	"github.com/salesgo/backend/internal/infrastructure/monitor"
	pgInfra "github.com/salesgo/backend/internal/infrastructure/postgres"
	redisInfra "github.com/salesgo/backend/internal/infrastructure/redis"
	"github.com/salesgo/backend/internal/messaging"
	"github.com/salesgo/backend/internal/middleware"
	"github.com/salesgo/backend/internal/router"
	"github.com/salesgo/backend/internal/services"
	"github.com/salesgo/backend/internal/services/lifecycle"
	"github.com/salesgo/backend/pkg/httpcontext"
	"github.com/salesgo/backend/pkg/logger"
	"github.com/salesgo/backend/repository/postgres"
	"github.com/salesgo/backend/usecase"
	saleUC "github.com/salesgo/backend/usecase/sale"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, "events")
	if err != nil {
		zapLogger.Fatal("failed to open event journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	pruner := services.NewJournalPruner(journalStore, zapLogger, services.PrunerConfig{
		Interval:  cfg.Journal.PruneInterval,
		Retention: time.Duration(cfg.Journal.RetentionHours) * time.Hour,
	})
	pruner.Start()
	manager.Register("journal_pruner", func(ctx context.Context) error {
		pruner.Stop()
		return nil
	})

	var publisher usecase.EventPublisher
	switch cfg.Events.Transport {
	case "memory":
		bus := messaging.NewBus(zapLogger)
		bus.Subscribe("sale.created", func(ctx context.Context, event domain.Event) error {
			if e, ok := event.(*domain.SaleCreatedEvent); ok {
				zapLogger.Info("sale created event received",
					zap.String("sale_id", e.SaleID),
					zap.String("sale_number", e.SaleNumber))
			}
			return nil
		})
		publisher = bus
	default:
		publisher = messaging.NewRedisPublisher(redisClient, cfg.Events.Channel, zapLogger)
	}
	publisher = messaging.WithJournal(publisher, journalStore, zapLogger)

	saleRepo := postgres.NewSaleRepository(pool)
	saleUseCase := saleUC.New(saleRepo, publisher, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Sale:   apiHandler.NewSaleHandler(saleUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
