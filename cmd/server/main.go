// @title                       Employee Service API
// @version                     1.0
// @description                 Employee directory with registration, login and JWT authorization.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/employee-service/internal/api"
	"github.com/99minutos/employee-service/internal/api/handler"
	"github.com/99minutos/employee-service/internal/core/service"
	"github.com/99minutos/employee-service/internal/infrastructure/auth"
	"github.com/99minutos/employee-service/internal/infrastructure/config"
	"github.com/99minutos/employee-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/employee-service/internal/infrastructure/db/redis"
	"github.com/99minutos/employee-service/pkg/logger"
)

const (
	serviceName     = "employee-service"
	shutdownTimeout = 10 * time.Second
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		File:    cfg.LogFile,
		Service: serviceName,
	})

	err = run(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("service stopped with error")
	} else {
		log.Info().Msg("service stopped gracefully")
	}

	_ = logger.Close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoCfg := mongo.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout,
	}

	mongoClient, db, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.WithoutCancel(ctx)) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	store, err := mongo.OpenStore(ctx, db, mongoCfg)
	if err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	tokens, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}
	codec := auth.NewBcryptCodec(cfg.Auth.BcryptCost)

	identity := service.NewIdentityService(
		store.Employees,
		store.Sequence,
		redis.NewRegistrationClaim(rdb, cfg.Auth.ClaimTTL),
		codec,
		tokens,
		log.With().Str("component", "identity").Logger(),
	)
	directory := service.NewDirectoryService(
		store.Employees,
		codec,
		log.With().Str("component", "directory").Logger(),
	)

	router := api.NewRouter(api.Dependencies{
		Identity:  identity,
		Directory: directory,
		Checks: map[string]handler.Check{
			"mongodb": mongo.PingCheck(mongoClient),
			"redis":   redis.PingCheck(rdb),
		},
		Logger:    log,
		BodyLimit: cfg.BodyLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
