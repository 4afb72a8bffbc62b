// Command api runs the clinicflow auth service.
//
//	@title						Clinicflow Auth API
//	@version					1.0
//	@description				Credential verification, registration and token issuance.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicflow/auth-service/internal/api"
	"github.com/clinicflow/auth-service/internal/api/handler"
	"github.com/clinicflow/auth-service/internal/core/ports"
	"github.com/clinicflow/auth-service/internal/core/service"
	"github.com/clinicflow/auth-service/internal/infrastructure/config"
	mongostore "github.com/clinicflow/auth-service/internal/infrastructure/db/mongo"
	rediscache "github.com/clinicflow/auth-service/internal/infrastructure/db/redis"
	"github.com/clinicflow/auth-service/internal/pkg/token"
	"github.com/clinicflow/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "auth-service",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("auth service stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	for _, name := range cfg.WeakSecrets() {
		log.Warn().Str("variable", name).Msg("using built-in signing secret, set it before deploying")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	store := mongostore.NewUserRepository(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	var (
		repo ports.UserRepository = store
		rdb  *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = rediscache.Connect(ctx, rediscache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		repo = rediscache.NewUserCache(store, rdb, cfg.Redis.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("user cache enabled")
	}

	authService := service.NewAuthService(repo, service.AuthConfig{
		Secret:               cfg.JWT.Secret,
		WebSecret:            cfg.JWT.WebSecret,
		AccessTTL:            cfg.JWT.AccessTTL,
		RefreshTTL:           cfg.JWT.RefreshTTL,
		StandaloneRefreshTTL: cfg.JWT.StandaloneRefreshTTL,
	}, log)
	userService := service.NewUserService(repo, log)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		UserService: userService,
		Signers:     []*token.Signer{token.NewSigner(cfg.JWT.Secret), token.NewSigner(cfg.JWT.WebSecret)},
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		Logger: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("auth service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("auth service stopped cleanly")
	return nil
}
