package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notebook/internal/notebook/adapters/events"
	notebookhttp "notebook/internal/notebook/adapters/http"
	"notebook/internal/notebook/adapters/postgres"
	"notebook/internal/notebook/adapters/session"
	"notebook/internal/notebook/adapters/storage"
	"notebook/internal/notebook/app"
	"notebook/internal/notebook/config"
	"notebook/internal/notebook/db"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/db/redis"
	"notebook/pkg/logger"
	"notebook/pkg/shutdown"
)

// Константы для сообщений об ошибках.
const (
	ErrInitDB            = "failed to initialize database"
	ErrCreateRedisClient = "failed to create Redis client"
	ErrInitSessions      = "failed to initialize session provider"
	ErrInitStorage       = "failed to initialize image storage"
	ErrStartHTTPServer   = "failed to start HTTP server"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notebook service started"
	LogServiceShutdownDone = "notebook service shutdown complete"
	LogInitRepo            = "initializing repositories"
	LogInitRedis           = "initializing Redis client"
	LogInitStorage         = "initializing image storage"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogEventsDisabled      = "change events are disabled"
)

func newServeCmd(c *cli) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), c.cfg, skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, skipMigrations bool) error {
	log := logger.Log(ctx)

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	if err := cfg.Session.Validate(); err != nil {
		log.Error(ctx, ErrInitSessions, zap.Error(err))
		return err
	}

	openDB := db.New
	if skipMigrations {
		openDB = db.Connect
	}
	database, err := openDB(ctx, &cfg.Postgres)
	if err != nil {
		log.Error(ctx, ErrInitDB, zap.Error(err))
		return err
	}

	var redisClient *redis.Client
	if cfg.Session.Provider == config.SessionProviderRedis || cfg.Events.Enabled {
		log.Info(ctx, LogInitRedis, zap.String("address", cfg.Redis.Options().Addr()))
		redisClient, err = redis.NewClient(ctx, cfg.Redis.Options())
		if err != nil {
			database.Close(ctx)
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			return err
		}
	}

	closeAll := func(ctx context.Context) {
		database.Close(ctx)
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}

	log.Info(ctx, LogInitStorage, zap.String("backend", cfg.Storage.Backend))
	imageStore, err := storage.New(cfg.Storage)
	if err != nil {
		closeAll(ctx)
		log.Error(ctx, ErrInitStorage, zap.Error(err))
		return err
	}

	var sessions services.SessionProvider
	switch cfg.Session.Provider {
	case config.SessionProviderJWT:
		sessions = session.NewJWTVerifier(cfg.Session.Secret, cfg.Session.Issuer)
	default:
		sessions = session.NewRedisStore(redisClient, cfg.Session.KeyPrefix)
	}

	var notifier services.ChangeNotifier
	if cfg.Events.Enabled {
		notifier = events.NewRedisNotifier(redisClient, cfg.Events.Channel)
	} else {
		log.Info(ctx, LogEventsDisabled)
	}

	log.Info(ctx, LogInitRepo)
	repoFactory := postgres.NewRepositoryFactory(database.Pool())

	log.Info(ctx, LogInitUseCases)
	accountUseCase := app.NewAccountUseCase(repoFactory.AccountRepository())
	noteUseCase := app.NewNoteUseCase(repoFactory.NoteRepository(), imageStore, notifier)
	listingUseCase := app.NewListingUseCase(repoFactory.NoteRepository())
	imageUseCase := app.NewImageUseCase(imageStore)

	log.Info(ctx, LogInitHTTPServer)
	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})

	notebookhttp.SetupRouter(server, notebookhttp.Dependencies{
		Accounts:      accountUseCase,
		Notes:         noteUseCase,
		Listing:       listingUseCase,
		Images:        imageUseCase,
		Sessions:      sessions,
		Database:      database,
		SessionCookie: cfg.HTTP.SessionCookie,
	})

	// Ошибка запуска сервера прерывает ожидание сигнала.
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	listenErr := make(chan error, 1)
	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			listenErr <- err
			cancel()
		}
	}()

	shutdown.Wait(waitCtx, cfg.Shutdown.GetTimeout(),
		// Остановка HTTP сервера.
		func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		},
	)

	// Соединения закрываются после остановки HTTP сервера.
	shutdown.Run(context.WithoutCancel(ctx), cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		},
		func(ctx context.Context) error {
			if redisClient == nil {
				return nil
			}
			logger.Log(ctx).Info(ctx, LogClosingRedis)
			return redisClient.Close()
		},
	)

	log.Info(ctx, LogServiceShutdownDone)

	select {
	case err := <-listenErr:
		return fmt.Errorf("%s: %w", ErrStartHTTPServer, err)
	default:
		return nil
	}
}
