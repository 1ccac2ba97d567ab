// Command server runs the Tawi-Tawi provincial portal API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/tawitawi/provincial-portal/docs"
	"github.com/tawitawi/provincial-portal/internal/api"
	"github.com/tawitawi/provincial-portal/internal/api/middleware"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/core/service"
	mongorepo "github.com/tawitawi/provincial-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/tawitawi/provincial-portal/internal/infrastructure/db/redis"
	httpserver "github.com/tawitawi/provincial-portal/internal/infrastructure/http"
	"github.com/tawitawi/provincial-portal/internal/infrastructure/http/handlers"
	"github.com/tawitawi/provincial-portal/internal/infrastructure/queue"
	"github.com/tawitawi/provincial-portal/internal/pkg/config"
	"github.com/tawitawi/provincial-portal/pkg/logger"
)

//go:generate swag init -g cmd/server/main.go -o docs --parseInternal

const drainTimeout = 10 * time.Second

// @title        Tawi-Tawi Provincial Portal API
// @version      1.0
// @description  Content management API for the provincial government portal.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "provincial-portal",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Bool("transactions", cfg.Mongo.Transactions).Msg("mongo connected")

	probes := []handlers.Probe{handlers.MongoProbe(db)}

	var (
		limiter       ports.RateLimiter
		limitCapacity int
	)
	if cfg.RateLimit.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		probes = append(probes, handlers.RedisProbe(rdb))
		rl := redisstore.NewRateLimiter(rdb, redisstore.RateLimitConfig{
			Capacity:       cfg.RateLimit.Capacity,
			RefillInterval: cfg.RateLimit.RefillInterval,
			TTL:            cfg.RateLimit.TTL,
			Prefix:         "rl:auth",
		})
		limiter, limitCapacity = rl, rl.Capacity()
		log.Info().Str("addr", cfg.Redis.Addr).Int("capacity", limitCapacity).Msg("login rate limiting enabled")
	}

	// --- Activity pipeline ---
	var publisher queue.Publisher
	if cfg.AMQP.URL != "" {
		p, err := queue.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			// The store is the record of activity; the broker is optional.
			log.Warn().Err(err).Msg("amqp unavailable, activity will not be published")
		} else {
			defer p.Close()
			publisher = p
			probes = append(probes, handlers.BrokerProbe(p))
			log.Info().Str("queue", cfg.AMQP.Queue).Msg("activity publishing enabled")
		}
	}

	users := mongorepo.NewUserRepository(db)
	tokens := mongorepo.NewDelegatedTokenRepository(db)
	profiles := mongorepo.NewProfileRepository(db)
	municipalities := mongorepo.NewMunicipalityRepository(db)
	directories := mongorepo.NewDirectoryRepository(db)
	news := mongorepo.NewNewsRepository(db)
	gazette := mongorepo.NewGazetteRepository(db)
	activity := mongorepo.NewActivityRepository(db)

	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, cfg.Activity.Buffer, activity, publisher, log)
	dispatcher.Start(ctx)

	subs := newSubCollections(db, cfg.Mongo.Transactions, dispatcher, log)
	profileSubs := wireSubCollections(subs,
		service.OwnerExists(profiles.FindByID),
		service.OwnerExists(municipalities.FindByID),
		service.OwnerExists(directories.FindByID),
	)

	indexed := []mongorepo.IndexedRepository{users, tokens, profiles, municipalities, directories, news, gazette, activity}
	if err := mongorepo.EnsureIndexes(ctx, append(indexed, subs.indexed...)...); err != nil {
		return err
	}

	// --- Services ---
	codec := service.NewJWTSessionCodec(cfg.JWTSecret, cfg.Session.TTL)
	userService := service.NewUserService(users, municipalities, dispatcher, cfg.Session.BcryptCost, log)

	if _, err := userService.EnsureSeedAdmin(ctx, cfg.Seed.Username, cfg.Seed.Password); err != nil {
		return err
	}

	deps := api.Dependencies{
		Codec: codec,
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.IsProduction(),
			MaxAge: codec.TTL(),
		},
		Auth:           service.NewAuthService(users, codec, dispatcher, cfg.Session.BcryptCost, log),
		DelegatedLogin: service.NewDelegatedTokenService(tokens, municipalities, codec, dispatcher, cfg.Session.DelegatedTokenTTL, log),
		Users:          userService,
		Activity:       service.NewActivityService(activity),
		Profiles: service.NewProfileService(service.ProfileServiceDeps{
			Profiles:       profiles,
			ServicePeriods: profileSubs.servicePeriods,
			Counters:       profileSubs.counters,
			Children:       subs.cleaners[domain.OwnerProfile],
			Activity:       dispatcher,
			Logger:         log,
		}),
		Municipalities: service.NewMunicipalityService(municipalities, subs.cleaners[domain.OwnerMunicipality], dispatcher, log),
		Directories:    service.NewDirectoryService(directories, subs.cleaners[domain.OwnerDirectory], dispatcher, log),
		News:           service.NewNewsService(news, dispatcher, log),
		Gazette:        service.NewGazetteService(gazette, dispatcher, log),
		SubCollections: subs.handlers,
		Limiter:        limiter,
		LimitCapacity:  limitCapacity,
		Health:         handlers.NewHealthHandler(probes...),
		Logger:         log,
	}

	serveErr := httpserver.Serve(ctx, api.NewRouter(deps), ":"+cfg.Port, log)

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := dispatcher.Stop(drainCtx); err != nil {
		log.Warn().Err(err).Msg("activity queue not fully drained")
	}
	return serveErr
}
