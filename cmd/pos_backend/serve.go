package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_ledger/internal/adapters/documents"
	"github.com/SscSPs/pos_ledger/internal/adapters/idempotency"
	"github.com/SscSPs/pos_ledger/internal/adapters/notify"
	"github.com/SscSPs/pos_ledger/internal/adapters/storage"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/handlers"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/platform/database"
	"github.com/SscSPs/pos_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/pos_ledger/internal/repositories/memory"
	"github.com/SscSPs/pos_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on start")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	routeOptions := []handlers.RouteOption{}
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = idempotency.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info("Redis connection established.")
		routeOptions = append(routeOptions, handlers.WithIdempotencyStore(idempotency.NewRedisStore(redisClient, "pos:idem:"), cfg.IdempotencyTTL))
	} else {
		routeOptions = append(routeOptions, handlers.WithIdempotencyStore(idempotency.NewMemoryStore(), cfg.IdempotencyTTL))
	}

	if cfg.RateLimit != "" {
		rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
		if err != nil {
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}
		routeOptions = append(routeOptions, handlers.WithRateLimiter(rateLimiter))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()
	routeOptions = append(routeOptions, handlers.WithPosthog(posthogClient))

	serviceOptions, err := receiptOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	container := services.NewServiceContainer(repos, serviceOptions...)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, routeOptions...)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

// setupRepositories opens the configured storage and returns its repositories with a close func.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart.")
		return memory.NewStore().Provider(), func() {}, nil
	}

	if !skipMigrations {
		if err := runMigrations(cfg, logger, false); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}

// receiptOptions wires the receipt renderer, artifact store and notifier used after each sale.
func receiptOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]services.ServiceOption, error) {
	tag, err := language.Parse(cfg.ReceiptLocale)
	if err != nil {
		logger.Warn("Invalid receipt locale, falling back to English", slog.String("locale", cfg.ReceiptLocale))
		tag = language.English
	}
	opts := []services.ServiceOption{
		services.WithDocumentRenderer(documents.NewReceiptRenderer(cfg.StoreName, documents.WithLanguage(tag))),
	}

	var store portssvc.ArtifactStore
	switch cfg.ArtifactDriver {
	case config.ArtifactS3:
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
		}, storage.WithLinkTTL(cfg.S3LinkTTL), storage.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 artifact store: %w", err)
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s3Store.EnsureBucket(bucketCtx); err != nil {
			return nil, fmt.Errorf("failed to prepare S3 bucket: %w", err)
		}
		store = s3Store
	case config.ArtifactFS:
		fsStore, err := storage.NewFSStore(cfg.ArtifactDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create filesystem artifact store: %w", err)
		}
		store = fsStore
	}
	if store != nil {
		opts = append(opts, services.WithArtifactStore(store))
	}

	if cfg.SMTPHost != "" {
		opts = append(opts, services.WithNotifier(notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})))
	} else {
		opts = append(opts, services.WithNotifier(notify.LogNotifier{}))
	}
	return opts, nil
}
