package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasksync/backend/api/handler"
	"github.com/tasksync/backend/identity"
	idPostgres "github.com/tasksync/backend/identity/postgres"
	"github.com/tasksync/backend/internal/config"
	"github.com/tasksync/backend/internal/infrastructure/monitor"
	pgInfra "github.com/tasksync/backend/internal/infrastructure/postgres"
	redisInfra "github.com/tasksync/backend/internal/infrastructure/redis"
	"github.com/tasksync/backend/internal/middleware"
	"github.com/tasksync/backend/internal/router"
	"github.com/tasksync/backend/internal/services"
	"github.com/tasksync/backend/internal/services/lifecycle"
	"github.com/tasksync/backend/pkg/httpcontext"
	"github.com/tasksync/backend/pkg/logger"
	"github.com/tasksync/backend/repository/docstore"
	"github.com/tasksync/backend/store"
	boltStore "github.com/tasksync/backend/store/bolt"
	redisStore "github.com/tasksync/backend/store/redis"
	"github.com/tasksync/backend/usecase/resolver"
	"github.com/tasksync/backend/usecase/session"
	taskUC "github.com/tasksync/backend/usecase/task"
	"github.com/tasksync/backend/usecase/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
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

	pool, err := pgInfra.NewPool(appCtx, cfg.Identity, zapLogger)
	if err != nil {
		zapLogger.Fatal("identity database connection failed", zap.Error(err))
	}
	manager.Register("identity_db", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	docs := openStore(cfg, manager, zapLogger)

	mon := monitor.New(docs, pool, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := docstore.NewTaskRepository(docs, zapLogger)
	userRepo := docstore.NewUserRepository(docs, zapLogger)

	idService := idPostgres.NewService(pool, zapLogger)
	signer := identity.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	sessionState := session.New(idService, userRepo, zapLogger)
	assignees := resolver.New(userRepo, zapLogger)
	boardEngine := view.NewEngine(taskRepo, assignees, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	if cfg.Reminder.Enabled {
		reminder := services.NewReminder(taskRepo, zapLogger, services.ReminderConfig{
			Interval: cfg.Reminder.Interval,
		})
		reminder.Start()
		manager.Register("reminder", func(ctx context.Context) error {
			reminder.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(sessionState, signer, ctxAdapter, zapLogger),
		Board:  apiHandler.NewBoardHandler(boardEngine, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Users:  apiHandler.NewUsersHandler(assignees, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.BearerAuth(signer, zapLogger)
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

func openStore(cfg *config.Config, manager *lifecycle.Manager, zapLogger *zap.Logger) store.Client {
	switch cfg.Store.Backend {
	case "bolt":
		docs, err := boltStore.Open(cfg.Store.BoltPath)
		if err != nil {
			zapLogger.Fatal("failed to open bolt store", zap.Error(err))
		}
		manager.Register("bolt_store", func(ctx context.Context) error {
			return docs.Close()
		})
		zapLogger.Info("document store ready", zap.String("backend", "bolt"), zap.String("path", cfg.Store.BoltPath))
		return docs
	default:
		client, err := redisInfra.NewClient(cfg.Store)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis_store", func(ctx context.Context) error {
			return client.Close()
		})
		zapLogger.Info("document store ready", zap.String("backend", "redis"))
		return redisStore.New(client, cfg.Store.Namespace)
	}
}
