package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "clientvoice/internal/adapters/http_server"
	"clientvoice/internal/adapters/observability"
	redisad "clientvoice/internal/adapters/redis"
	"clientvoice/internal/app"
	"clientvoice/internal/auth"
	"clientvoice/internal/domain"
	"clientvoice/internal/shared"
	"clientvoice/internal/storage/memory"
	mysqlrepo "clientvoice/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// storage
	var repo domain.Store
	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("using in-memory storage; data is lost on exit")
		repo = memory.New()
	default:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	}

	// cache is optional: the API serves straight from storage without it
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable; caching disabled")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	tokens := auth.TokenService{Secret: []byte(cfg.JWTSecret), Issuer: "clientvoice", Duration: cfg.JWTTTL}
	settings := app.Settings{CacheTTL: cfg.CacheTTL, AdminPageSize: cfg.AdminPageSize, RatingScale: cfg.RatingScale}
	q := app.NewQueryService(repo, cache, settings)
	c := app.NewCommandService(repo, cache, tokens)

	// http
	srv := server.New()
	if cfg.MetricsAddr == "" {
		srv.Mount("/metrics", observability.MetricsHandler(reg))
	}
	srv.MountHandlers(&server.Handlers{Q: q, C: c, Tokens: tokens, SubmitRPS: cfg.SubmitRPS})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("storage", cfg.Storage).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
