package container

import (
	"context"
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/cache"
	"github.com/bliinmaker/dating-bot/internal/config"
	delivery "github.com/bliinmaker/dating-bot/internal/delivery/http"
	"github.com/bliinmaker/dating-bot/internal/delivery/http/handler"
	"github.com/bliinmaker/dating-bot/internal/delivery/http/middleware"
	"github.com/bliinmaker/dating-bot/internal/infrastructure/database"
	"github.com/bliinmaker/dating-bot/internal/infrastructure/server"
	"github.com/bliinmaker/dating-bot/internal/infrastructure/storage"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/bliinmaker/dating-bot/internal/repository/postgres"
	"github.com/bliinmaker/dating-bot/internal/tasks"
	"github.com/bliinmaker/dating-bot/internal/usecase/auth"
	"github.com/bliinmaker/dating-bot/internal/usecase/feed"
	"github.com/bliinmaker/dating-bot/internal/usecase/interaction"
	"github.com/bliinmaker/dating-bot/internal/usecase/profile"
	"github.com/bliinmaker/dating-bot/internal/usecase/rating"
	"github.com/bliinmaker/dating-bot/internal/usecase/session"
	"github.com/bliinmaker/dating-bot/internal/usecase/stats"
	"github.com/bliinmaker/dating-bot/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server

	// Shared with the worker binary.
	RatingUseCase *rating.RatingUseCase
	FeedUseCase   *feed.FeedUseCase
	MatchRepo     repository.MatchRepository

	tasksClient *tasks.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	photoStorage, err := storage.NewPhotoStorage(&cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	if err := photoStorage.EnsureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure photo bucket: %w", err)
	}

	appCache := cache.New(redisClient, cfg.Redis.CacheTTL, log)
	tasksClient := tasks.NewClient(&cfg.Redis)

	// Repositories
	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Use cases
	weights := rating.Weights{
		Primary:    cfg.Rating.PrimaryWeight,
		Behavioral: cfg.Rating.BehavioralWeight,
	}
	ratingUseCase := rating.NewRatingUseCase(
		profileRepo,
		interactionRepo,
		matchRepo,
		ratingRepo,
		appCache,
		weights,
		log,
	)

	userUseCase := user.NewUserUseCase(userRepo, log)
	authUseCase := auth.NewAuthUseCase(userUseCase, &cfg.JWT)

	profileUseCase := profile.NewProfileUseCase(
		txManager,
		profileRepo,
		photoRepo,
		ratingUseCase,
		appCache,
		photoStorage,
		tasksClient,
		log,
	)

	feedUseCase := feed.NewFeedUseCase(
		profileRepo,
		interactionRepo,
		appCache,
		cfg.Feed.PreloadCount,
		log,
	)

	interactionUseCase := interaction.NewInteractionUseCase(
		txManager,
		profileRepo,
		interactionRepo,
		matchRepo,
		messageRepo,
		userRepo,
		ratingUseCase,
		appCache,
		log,
	)

	statsUseCase := stats.NewStatsUseCase(userRepo, profileRepo, interactionRepo, matchRepo)

	// Sessions never expire on their own; /start resets them.
	sessionStore := session.NewStore(redisClient, 0, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authUseCase, userUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase, ratingUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	interactionHandler := handler.NewInteractionHandler(interactionUseCase, profileUseCase)
	statsHandler := handler.NewStatsHandler(statsUseCase)
	sessionHandler := handler.NewSessionHandler(sessionStore)

	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	router := delivery.NewRouter(
		authHandler,
		profileHandler,
		feedHandler,
		interactionHandler,
		statsHandler,
		sessionHandler,
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config:        cfg,
		Log:           log,
		DB:            db,
		Redis:         redisClient,
		Server:        srv,
		RatingUseCase: ratingUseCase,
		FeedUseCase:   feedUseCase,
		MatchRepo:     matchRepo,
		tasksClient:   tasksClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.tasksClient != nil {
		if err := c.tasksClient.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("failed to close tasks client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
