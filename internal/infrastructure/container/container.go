package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/config"
	"github.com/gdugdh24/covenant-backend/internal/delivery/http"
	"github.com/gdugdh24/covenant-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/covenant-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/covenant-backend/internal/infrastructure/database"
	"github.com/gdugdh24/covenant-backend/internal/infrastructure/server"
	"github.com/gdugdh24/covenant-backend/internal/repository"
	"github.com/gdugdh24/covenant-backend/internal/repository/cache"
	"github.com/gdugdh24/covenant-backend/internal/repository/memory"
	"github.com/gdugdh24/covenant-backend/internal/repository/postgres"
	"github.com/gdugdh24/covenant-backend/internal/seed"
	"github.com/gdugdh24/covenant-backend/internal/usecase/discovery"
	"github.com/gdugdh24/covenant-backend/internal/usecase/like"
	"github.com/gdugdh24/covenant-backend/internal/usecase/profile"
	"github.com/gdugdh24/covenant-backend/internal/usecase/stats"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

type repositories struct {
	profiles repository.ProfileReadWriter
	likes    repository.LikeRepository
	matches  repository.MatchRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	repos, err := c.initRepositories(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.Storage.SeedDemoProfiles {
		n, err := seed.IfEmpty(ctx, repos.profiles, time.Now().UTC())
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to seed demo profiles: %w", err)
		}
		logger.Info("demo profiles seeded", zap.Int("count", n))
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		// the cache is optional, lookups go straight to the store
		logger.Warn("redis unavailable, profile cache disabled", zap.Error(err))
	}
	c.Redis = redisClient
	profileReader := cache.NewProfileCache(repos.profiles, redisClient, cfg.Redis.CacheTTL, logger)

	// Initialize use cases
	discoveryUseCase := discovery.NewDiscoveryUseCase(profileReader, discovery.Options{
		DefaultLimit:        cfg.Discovery.DefaultLimit,
		MaxLimit:            cfg.Discovery.MaxLimit,
		DefaultMinAge:       cfg.Discovery.DefaultMinAge,
		DefaultMaxAge:       cfg.Discovery.DefaultMaxAge,
		DefaultRadiusMeters: cfg.Nearby.DefaultRadiusMeters,
		MaxRadiusMeters:     cfg.Nearby.MaxRadiusMeters,
		NearbyDefaultLimit:  cfg.Nearby.DefaultLimit,
		NearbyMaxLimit:      cfg.Nearby.MaxLimit,
	}, logger)
	likeUseCase := like.NewLikeUseCase(repos.likes, repos.matches, profileReader, logger)
	profileUseCase := profile.NewProfileUseCase(profileReader, logger)
	statsUseCase := stats.NewStatsUseCase(repos.profiles, repos.likes, repos.matches)

	// Initialize handlers
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase, logger)
	likeHandler := handler.NewLikeHandler(likeUseCase, logger)
	profileHandler := handler.NewProfileHandler(profileUseCase, logger)
	adminHandler := handler.NewAdminHandler(statsUseCase, logger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret, logger)
	if cfg.JWT.AccessSecret == "" {
		logger.Warn("JWT secret not set, trusting the " + middleware.IdentityHeader + " header")
	}

	// Initialize router
	router := http.NewRouter(
		discoveryHandler,
		likeHandler,
		profileHandler,
		adminHandler,
		authMiddleware,
		cfg.Database.StoreTimeout,
		logger,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)
	return c, nil
}

func (c *Container) initRepositories(ctx context.Context) (*repositories, error) {
	switch c.Config.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(&c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		if err := database.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		c.Logger.Info("using postgres storage", zap.String("host", c.Config.Database.Host))
		return &repositories{
			profiles: postgres.NewProfileRepository(db),
			likes:    postgres.NewLikeRepository(db),
			matches:  postgres.NewMatchRepository(db),
		}, nil
	case config.StorageMemory:
		c.Logger.Info("using in-memory storage")
		return &repositories{
			profiles: memory.NewProfileRepository(),
			likes:    memory.NewLikeRepository(),
			matches:  memory.NewMatchRepository(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Config.Storage.Type)
	}
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("error closing redis", zap.Error(err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
