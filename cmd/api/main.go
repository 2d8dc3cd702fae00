package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"storefront/internal/adapter/repo"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	"storefront/internal/http/httpapi"
	"storefront/internal/infra"
	"storefront/internal/infra/credentials"
	"storefront/internal/infra/geoip"
	"storefront/internal/ledger"
	"storefront/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	data, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("failed to load catalog")
	}
	logger.Info().Str("version", data.Version).Int("products", data.Catalog.Len()).Int("tiers", data.Tiers.Len()).Msg("catalog loaded")

	ctx := context.Background()
	creds, sessions, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	l, err := ledger.New(ledger.Options{
		Data:            data,
		Credentials:     creds,
		Sessions:        sessions,
		Hasher:          credentials.NewBcryptHasher(cfg.BcryptCost),
		Logger:          logger,
		StartingCredits: cfg.StartingCredits,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build ledger")
	}
	if err := l.Restore(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to restore session")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	app := handlers.NewApp(l, logger, cfg.JWTSecret, cfg.StoreNamespace)
	router := httpapi.NewRouter(app, httpapi.Options{
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   resolver.Lookup(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("backend", cfg.StoreBackend).Str("namespace", cfg.StoreNamespace).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.CredentialRepository, domain.SessionRepository, func()) {
	if cfg.StoreBackend == infra.BackendPostgres {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		if err := infra.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		runner := infra.NewSQLRunner(pool, logger)
		return repo.NewCredentialRepository(runner, cfg.StoreNamespace),
			repo.NewSessionRepository(runner, cfg.StoreNamespace),
			pool.Close
	}

	fs, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open storage")
	}
	return repo.NewLocalCredentialRepository(fs, cfg.StoreNamespace),
		repo.NewLocalSessionRepository(fs, cfg.StoreNamespace),
		func() {}
}
