package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pokebinder/pokebinder-backend/internal/adapter/postgres"
	cardrepo "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres/card"
	collectionrepo "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres/collection"
	userrepo "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres/user"
	wishlistrepo "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres/wishlist"
	"github.com/pokebinder/pokebinder-backend/internal/adapter/provider/pricefeed"
	"github.com/pokebinder/pokebinder-backend/internal/auth"
	"github.com/pokebinder/pokebinder-backend/internal/config"
	collectionsvc "github.com/pokebinder/pokebinder-backend/internal/service/collection"
	"github.com/pokebinder/pokebinder-backend/internal/service/pricesync"
	"github.com/pokebinder/pokebinder-backend/internal/service/setpage"
	usersvc "github.com/pokebinder/pokebinder-backend/internal/service/user"
	"github.com/pokebinder/pokebinder-backend/internal/service/variantrule"
	wishlistsvc "github.com/pokebinder/pokebinder-backend/internal/service/wishlist"
	"github.com/pokebinder/pokebinder-backend/internal/transport/middleware"
	"github.com/pokebinder/pokebinder-backend/internal/transport/rest"
	"github.com/pokebinder/pokebinder-backend/migrations"
)

// Run is the server entry point: load config, connect to Postgres, run
// migrations, wire services into the router, and serve until the context
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	// Repositories.
	collectionRepo := collectionrepo.New(pool)
	cardRepo := cardrepo.New(pool)
	wishlistRepo := wishlistrepo.New(pool)
	userRepo := userrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Services.
	collectionService := collectionsvc.NewService(logger, collectionRepo, cardRepo, txManager)
	setPageService := setpage.NewService(logger, cardRepo, collectionService, userRepo, variantrule.Available)
	wishlistService := wishlistsvc.NewService(logger, wishlistRepo, cardRepo)
	userService := usersvc.NewService(logger, userRepo)
	priceSyncService := pricesync.NewService(logger, pricefeed.NewClient(cfg.PriceFeed), cardRepo)

	// Transport.
	validator := auth.NewTokenValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerMinute,
		cfg.RateLimit.Burst,
		cfg.RateLimit.CleanupInterval,
	)
	defer rateLimiter.Stop()

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(),
		middleware.Auth(validator),
		middleware.Logger(logger),
	)

	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Collection: rest.NewCollectionHandler(collectionService, logger),
		Sets:       rest.NewSetsHandler(setPageService, logger),
		Wishlist:   rest.NewWishlistHandler(wishlistService, logger),
		User:       rest.NewUserHandler(userService, logger),
		Admin:      rest.NewAdminHandler(priceSyncService, cfg.PriceFeed.SyncSets, logger),
	}, chain)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
