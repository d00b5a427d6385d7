package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logging"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", "json", os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr).With().Str("env", cfg.Env).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	users := repository.NewUserRepo(db)
	genres := repository.NewGenreRepo(db)
	shows := repository.NewShowRepo(db)

	if n, err := genres.EnsureCatalog(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed genres")
	} else if n > 0 {
		log.Info().Int("genres", n).Msg("seeded genre catalog")
	}

	events := startEvents(ctx, cfg, log)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	listings := service.NewListingService(users, genres, shows, cfg.HomeLimit, nil)

	e := router.New(log)
	router.RegisterRoutes(e, router.Deps{
		Pages: &handler.PageHandler{
			Listings: listings,
			Log:      log,
		},
		Users: &handler.UserHandler{
			Users:    service.NewUserService(db, users, genres, events, log),
			Listings: listings,
			Log:      log,
		},
		Shows: &handler.ShowHandler{
			Shows: service.NewShowService(shows, events, log),
			Log:   log,
		},
		Search: &handler.SearchHandler{
			Search: service.NewSearchService(users, genres, shows, nil),
			Log:    log,
		},
		DB:        db,
		Cache:     middleware.NewRedisCache(cacheCfg, rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Purge:     middleware.PurgeCache(cacheCfg, rdb, log),
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}

// startEvents returns the publisher for domain events and, when asked,
// runs the activity consumer until ctx ends.
func startEvents(ctx context.Context, cfg config.Config, log zerolog.Logger) queue.Publisher {
	if !cfg.AMQPEnabled {
		return queue.Nop{}
	}
	if cfg.StartConsume {
		sink, err := queue.NewActivityLog(cfg.ActivityLog)
		if err != nil {
			log.Error().Err(err).Msg("activity log unavailable; consumer not started")
		} else {
			go func() {
				if err := queue.NewConsumer(cfg.AMQPURL, sink, log).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("activity consumer stopped")
				}
			}()
		}
	}
	return queue.NewAMQPPublisher(cfg.AMQPURL, log)
}
