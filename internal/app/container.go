package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"pathway/internal/config"
	"pathway/internal/database"
	dbpostgres "pathway/internal/database/postgres"
	"pathway/internal/domain/conviction"
	"pathway/internal/infrastructure/cache"
	"pathway/internal/logger"
	"pathway/internal/mentor"
	"pathway/internal/repository"
	"pathway/internal/usecase"
	"pathway/internal/ws"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies shared by the HTTP server and the CLI.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Profiles    repository.ProfileRepository
	Occupations repository.OccupationRepository
	Engagement  repository.EngagementRepository

	Engine      *usecase.Conviction
	Convictions *usecase.CachedConviction
	Tracker     *usecase.EngagementTracker
	Discovery   *usecase.Discovery
	Mentor      *mentor.Executor
}

func NewContainer(ctx context.Context, cfg config.Config, l *zap.Logger) (*Container, error) {
	l = logger.OrNop(l)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rc := cache.NewRedis(ctx, cfg.Redis, l)
	return newContainer(cfg, l, db, rc), nil
}

func newContainer(cfg config.Config, l *zap.Logger, db database.DB, rc *cache.Redis) *Container {
	c := &Container{
		Config: cfg,
		Logger: l,
		DB:     db,
		Cache:  rc,
		Hub:    ws.NewHub(l),
	}

	c.Profiles = repository.NewPostgresProfileRepository(db)
	c.Occupations = repository.NewPostgresOccupationRepository(db)
	c.Engagement = repository.NewPostgresEngagementRepository(db)

	c.Engine = usecase.NewConvictionUsecase(c.Profiles, c.Occupations, c.Engagement, l)

	var breakdownCache usecase.ConvictionCache
	if rc != nil {
		breakdownCache = rc
	}
	c.Convictions = usecase.NewCachedConviction(c.Profiles, c.Engine, breakdownCache, cfg.Conviction.CacheTTL, l)
	c.Tracker = usecase.NewEngagementTracker(c.Profiles, c.Occupations, c.Engagement, c.Convictions, c.Hub, l)

	discoveryStrategy := conviction.NewRandomizedDiscoveryStrategy(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	c.Discovery = usecase.NewDiscoveryUsecase(c.Profiles, c.Occupations, discoveryStrategy, cfg.Conviction.DiscoveryLimit)
	c.Mentor = mentor.NewExecutor(c.Convictions, l)

	return c
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
