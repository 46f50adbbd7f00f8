package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pathway/internal/domain/conviction"
	"pathway/internal/logger"
	"pathway/internal/metrics"
	"pathway/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const convictionCachePrefix = "conviction:v1:"

// ConvictionReader serves breakdowns to callers acting on behalf of a user.
type ConvictionReader interface {
	Get(ctx context.Context, userID uuid.UUID, occupationCode string) (conviction.Breakdown, error)
}

type ConvictionCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func ConvictionCacheKey(userID uuid.UUID, occupationCode string) string {
	return convictionCachePrefix + userID.String() + ":" + strings.TrimSpace(occupationCode)
}

// ConvictionCachePattern matches every cached breakdown, for bulk invalidation after reseeding.
func ConvictionCachePattern() string {
	return convictionCachePrefix + "*"
}

// CachedConviction is the caller-facing entry point: it resolves the caller's user record, then
// serves a breakdown from cache or computes and stores it. A nil cache disables caching.
//
// Only engagement writes invalidate entries. Assessment and skill edits belong to the profile
// service and show up once the entry expires, so ttl is the staleness bound for those inputs.
type CachedConviction struct {
	profiles repository.ProfileRepository
	engine   ConvictionUsecase
	cache    ConvictionCache
	ttl      time.Duration
	logger   *zap.Logger
}

func NewCachedConviction(profiles repository.ProfileRepository, engine ConvictionUsecase, cache ConvictionCache, ttl time.Duration, l *zap.Logger) *CachedConviction {
	return &CachedConviction{
		profiles: profiles,
		engine:   engine,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.OrNop(l).Named("conviction_cache"),
	}
}

func (u *CachedConviction) Get(ctx context.Context, userID uuid.UUID, occupationCode string) (conviction.Breakdown, error) {
	if userID == uuid.Nil {
		return conviction.Breakdown{}, ErrUnauthorized
	}
	code := strings.TrimSpace(occupationCode)
	if code == "" {
		return conviction.Breakdown{}, ErrInvalidInput
	}

	if _, err := u.profiles.FindProfile(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.ConvictionComputations.WithLabelValues(metrics.OutcomeUserNotFound).Inc()
			return conviction.Breakdown{}, ErrUserNotFound
		}
		return conviction.Breakdown{}, fmt.Errorf("%w: read profile: %w", ErrStoreUnavailable, err)
	}

	key := ConvictionCacheKey(userID, code)
	if u.cache != nil {
		var cached conviction.Breakdown
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.ConvictionCache.WithLabelValues(metrics.CacheBypass).Inc()
			u.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		case hit:
			metrics.ConvictionCache.WithLabelValues(metrics.CacheHit).Inc()
			return cached, nil
		default:
			metrics.ConvictionCache.WithLabelValues(metrics.CacheMiss).Inc()
		}
	}

	b, err := u.engine.Compute(ctx, userID, code)
	if err != nil {
		return conviction.Breakdown{}, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, b, u.ttl); err != nil {
			u.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return b, nil
}

func (u *CachedConviction) Invalidate(ctx context.Context, userID uuid.UUID, occupationCode string) {
	if u == nil || u.cache == nil {
		return
	}
	key := ConvictionCacheKey(userID, occupationCode)
	if err := u.cache.Delete(ctx, key); err != nil {
		u.logger.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
