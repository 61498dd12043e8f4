package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/api/handlers"
	"example.com/backstage/services/campaign/internal/cache"
	"example.com/backstage/services/campaign/internal/database"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/search"
	"example.com/backstage/services/campaign/internal/services"
	"example.com/backstage/services/campaign/internal/tracing"
)

// app holds every dependency shared by the commands
type app struct {
	cfg       config.Config
	dbs       *database.Databases
	cache     *cache.RedisCache
	tracer    *tracing.NewRelicTracer
	search    *search.ElasticClient
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	services  *services.Services
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	configureLogging(cfg)
	return cfg, nil
}

func configureLogging(cfg config.Config) {
	if cfg.IsDevelopment() || strings.EqualFold(cfg.Logging.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level)); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}
}

// newApp connects to the store and the optional backends. Optional backends that
// fail to start are logged and left out.
func newApp(cfg config.Config, source string) (*app, error) {
	m := metrics.Default()

	dbs, err := database.Connect(cfg.DB, m)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, dbs: dbs, metrics: m}

	a.cache, err = cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
		a.cache = nil
	}

	a.tracer, err = tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		a.tracer = tracing.Noop()
	}

	if cfg.Elastic.Enabled {
		a.search, err = search.NewElasticClient(cfg.Elastic)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Elasticsearch client, continuing without search functionality")
			a.search = nil
		}
	}

	a.publisher, err = messaging.NewPublisher(cfg.Azure, source)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize event publisher, continuing without events")
		a.publisher = messaging.NoopPublisher{}
	}

	opts := services.Options{
		StoreTimeout: cfg.Store.Timeout,
		CacheTTL:     cfg.Cache.SnapshotTTL,
		Publisher:    a.publisher,
		Tracer:       a.tracer,
		Metrics:      m,
	}
	if a.cache.Enabled() {
		opts.Cache = a.cache
	}
	if a.search != nil {
		opts.Searcher = a.search
	}

	a.services = services.New(services.NewStores(dbs.Write, dbs.Read), opts)
	return a, nil
}

// healthChecks returns the dependency checks reported by /health
func (a *app) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": a.dbs.Ping,
	}
	if a.cache.Enabled() {
		checks["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Store.Timeout)
			defer cancel()
			return a.cache.Ping(ctx)
		}
	}
	return checks
}

func (a *app) Close() error {
	var errs []string
	if err := a.publisher.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	a.tracer.Close()
	if err := a.dbs.Close(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New("failed to close resources: " + strings.Join(errs, "; "))
	}
	return nil
}
