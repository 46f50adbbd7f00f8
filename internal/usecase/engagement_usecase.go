package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pathway/internal/domain/conviction"
	"pathway/internal/logger"
	"pathway/internal/metrics"
	"pathway/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxTimeSpentReport bounds a single time-on-page report.
const MaxTimeSpentReport = 3600

// StaleNotifier is told when a user's breakdown for an occupation changed.
type StaleNotifier interface {
	NotifyConvictionStale(userID uuid.UUID, occupationCode string)
}

type ConvictionInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID, occupationCode string)
}

type EngagementUsecase interface {
	RecordPageView(ctx context.Context, userID uuid.UUID, occupationCode string) error
	AddTimeSpent(ctx context.Context, userID uuid.UUID, occupationCode string, seconds int) error
	RecordVideoWatch(ctx context.Context, userID uuid.UUID, occupationCode string, w conviction.VideoWatch) error
}

type EngagementTracker struct {
	profiles    repository.ProfileRepository
	occupations repository.OccupationRepository
	engagement  repository.EngagementRepository
	invalidator ConvictionInvalidator
	notifier    StaleNotifier
	logger      *zap.Logger
}

func NewEngagementTracker(
	profiles repository.ProfileRepository,
	occupations repository.OccupationRepository,
	engagement repository.EngagementRepository,
	invalidator ConvictionInvalidator,
	notifier StaleNotifier,
	l *zap.Logger,
) *EngagementTracker {
	return &EngagementTracker{
		profiles:    profiles,
		occupations: occupations,
		engagement:  engagement,
		invalidator: invalidator,
		notifier:    notifier,
		logger:      logger.OrNop(l).Named("engagement"),
	}
}

func (u *EngagementTracker) RecordPageView(ctx context.Context, userID uuid.UUID, occupationCode string) error {
	code, err := u.validate(ctx, userID, occupationCode)
	if err != nil {
		return err
	}
	if err := u.engagement.RecordPageView(ctx, userID, code); err != nil {
		return u.writeFailed("page_view", err)
	}
	u.changed(ctx, "page_view", userID, code)
	return nil
}

func (u *EngagementTracker) AddTimeSpent(ctx context.Context, userID uuid.UUID, occupationCode string, seconds int) error {
	if seconds <= 0 || seconds > MaxTimeSpentReport {
		return ErrInvalidInput
	}
	code, err := u.validate(ctx, userID, occupationCode)
	if err != nil {
		return err
	}
	if err := u.engagement.AddTimeSpent(ctx, userID, code, seconds); err != nil {
		return u.writeFailed("time_spent", err)
	}
	u.changed(ctx, "time_spent", userID, code)
	return nil
}

func (u *EngagementTracker) RecordVideoWatch(ctx context.Context, userID uuid.UUID, occupationCode string, w conviction.VideoWatch) error {
	w.VideoID = strings.TrimSpace(w.VideoID)
	if w.VideoID == "" || w.WatchedSeconds < 0 {
		return ErrInvalidInput
	}
	code, err := u.validate(ctx, userID, occupationCode)
	if err != nil {
		return err
	}
	if err := u.engagement.UpsertVideoWatch(ctx, userID, code, w); err != nil {
		return u.writeFailed("video_watch", err)
	}
	u.changed(ctx, "video_watch", userID, code)
	return nil
}

func (u *EngagementTracker) validate(ctx context.Context, userID uuid.UUID, occupationCode string) (string, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthorized
	}
	code := strings.TrimSpace(occupationCode)
	if code == "" {
		return "", ErrInvalidInput
	}
	if _, err := u.profiles.FindProfile(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("%w: read profile: %w", ErrStoreUnavailable, err)
	}
	if _, err := u.occupations.FindByCode(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrOccupationNotFound
		}
		return "", fmt.Errorf("%w: read occupation: %w", ErrStoreUnavailable, err)
	}
	return code, nil
}

func (u *EngagementTracker) writeFailed(kind string, err error) error {
	u.logger.Error("engagement write failed", zap.String("kind", kind), zap.Error(err))
	return fmt.Errorf("%w: write %s: %w", ErrStoreUnavailable, kind, err)
}

func (u *EngagementTracker) changed(ctx context.Context, kind string, userID uuid.UUID, code string) {
	metrics.EngagementEvents.WithLabelValues(kind).Inc()
	if u.invalidator != nil {
		u.invalidator.Invalidate(ctx, userID, code)
	}
	if u.notifier != nil {
		u.notifier.NotifyConvictionStale(userID, code)
	}
}
