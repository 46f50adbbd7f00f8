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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "pathway/usecase"

type ConvictionUsecase interface {
	Compute(ctx context.Context, userID uuid.UUID, occupationCode string) (conviction.Breakdown, error)
}

// Conviction fuses profile, occupation and engagement reads into a single breakdown. It is
// deterministic: a user without an assessment always gets the neutral RIASEC score.
type Conviction struct {
	profiles    repository.ProfileRepository
	occupations repository.OccupationRepository
	engagement  repository.EngagementRepository

	fallback  conviction.RiasecFallback
	skillOpts conviction.SkillMatchOptions

	logger *zap.Logger
	tracer trace.Tracer
}

func NewConvictionUsecase(
	profiles repository.ProfileRepository,
	occupations repository.OccupationRepository,
	engagement repository.EngagementRepository,
	l *zap.Logger,
) *Conviction {
	return &Conviction{
		profiles:    profiles,
		occupations: occupations,
		engagement:  engagement,
		fallback:    conviction.NeutralDefaultStrategy{},
		skillOpts:   conviction.DefaultSkillMatchOptions(),
		logger:      logger.OrNop(l).Named("conviction"),
		tracer:      otel.Tracer(tracerName),
	}
}

// snapshot is everything one computation reads. Nil pointers mean the record does not exist.
type snapshot struct {
	occupation repository.Occupation
	profile    *repository.Profile
	assessment *repository.Assessment

	userSkills       []repository.ProfileSkill
	occupationSkills []repository.OccupationSkill
	knowledge        []string

	watches  []conviction.VideoWatch
	counters repository.EngagementCounters
}

func (u *Conviction) Compute(ctx context.Context, userID uuid.UUID, occupationCode string) (conviction.Breakdown, error) {
	if userID == uuid.Nil {
		return conviction.Breakdown{}, ErrUnauthorized
	}
	code := strings.TrimSpace(occupationCode)
	if code == "" {
		return conviction.Breakdown{}, ErrInvalidInput
	}

	start := time.Now()
	ctx, span := u.tracer.Start(ctx, "Conviction.Compute",
		trace.WithAttributes(attribute.String("occupation.code", code)),
	)
	defer span.End()

	snap, err := u.load(ctx, userID, code)
	metrics.ConvictionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := classify(err)
		metrics.ConvictionComputations.WithLabelValues(outcome).Inc()
		span.SetStatus(codes.Error, outcome)
		if outcome == metrics.OutcomeStoreUnavailable {
			u.logger.Error("conviction read failed",
				zap.String("user_id", userID.String()),
				zap.String("occupation_code", code),
				zap.Error(err),
			)
		}
		return conviction.Breakdown{}, err
	}

	b := u.score(snap)
	metrics.ConvictionComputations.WithLabelValues(metrics.OutcomeOK).Inc()
	span.SetAttributes(attribute.Int("conviction.total", b.Total))
	u.logger.Debug("conviction computed",
		zap.String("user_id", userID.String()),
		zap.String("occupation_code", code),
		zap.Int("total", b.Total),
		zap.Duration("took", time.Since(start)),
	)
	return b, nil
}

// load runs the store reads concurrently. Each branch owns one snapshot field; the first failure
// cancels the rest.
func (u *Conviction) load(ctx context.Context, userID uuid.UUID, code string) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		o, err := u.occupations.FindByCode(gctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrOccupationNotFound
			}
			return storeErr("occupation", err)
		}
		snap.occupation = o
		return nil
	})
	g.Go(func() error {
		p, err := u.profiles.FindProfile(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return storeErr("profile", err)
		}
		snap.profile = &p
		return nil
	})
	g.Go(func() error {
		a, err := u.profiles.FindLatestAssessment(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return storeErr("assessment", err)
		}
		snap.assessment = &a
		return nil
	})
	g.Go(func() error {
		s, err := u.profiles.FindSkills(gctx, userID)
		if err != nil {
			return storeErr("user skills", err)
		}
		snap.userSkills = s
		return nil
	})
	g.Go(func() error {
		s, err := u.occupations.FindSkills(gctx, code)
		if err != nil {
			return storeErr("occupation skills", err)
		}
		snap.occupationSkills = s
		return nil
	})
	g.Go(func() error {
		k, err := u.occupations.FindKnowledge(gctx, code)
		if err != nil {
			return storeErr("occupation knowledge", err)
		}
		snap.knowledge = k
		return nil
	})
	g.Go(func() error {
		w, err := u.engagement.FindVideoWatches(gctx, userID, code)
		if err != nil {
			return storeErr("video watches", err)
		}
		snap.watches = w
		return nil
	})
	g.Go(func() error {
		c, err := u.engagement.FindCounters(gctx, userID, code)
		if err != nil {
			return storeErr("engagement counters", err)
		}
		snap.counters = c
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return snapshot{}, ctxErr
		}
		return snapshot{}, err
	}
	return snap, nil
}

func (u *Conviction) score(snap snapshot) conviction.Breakdown {
	riasec := u.fallback.Score()
	if snap.assessment != nil {
		riasec = conviction.Similarity(snap.assessment.Interests.NonNegative(), snap.occupation.Interests.NonNegative())
	}

	userSkills := toUserSkills(snap.userSkills)
	skills := conviction.SkillMatch(userSkills, toRequirements(snap.occupationSkills), u.skillOpts)

	education := conviction.MissingEducationScore
	if snap.profile != nil {
		zone := conviction.DefaultJobZone
		if snap.occupation.JobZone != nil {
			zone = *snap.occupation.JobZone
		}
		category := ""
		if snap.profile.AccountType != nil {
			category = *snap.profile.AccountType
		}
		names := make([]string, 0, len(userSkills))
		for _, s := range userSkills {
			names = append(names, s.Name)
		}
		education = conviction.EducationScore(conviction.EducationTier(category), zone, names, snap.knowledge)
	}

	engagement := conviction.EngagementScore(snap.watches, snap.counters.PageViews, snap.counters.TimeSpentSeconds)

	return conviction.Combine(riasec, skills, education, engagement)
}

func toUserSkills(rows []repository.ProfileSkill) []conviction.UserSkill {
	out := make([]conviction.UserSkill, 0, len(rows))
	for _, r := range rows {
		p := float64(conviction.DefaultProficiency)
		if r.Proficiency != nil {
			p = *r.Proficiency
		}
		out = append(out, conviction.UserSkill{Name: r.Name, Proficiency: p})
	}
	return out
}

func toRequirements(rows []repository.OccupationSkill) []conviction.SkillRequirement {
	out := make([]conviction.SkillRequirement, 0, len(rows))
	for _, r := range rows {
		imp := float64(conviction.DefaultImportance)
		if r.Importance != nil {
			imp = *r.Importance
		}
		out = append(out, conviction.SkillRequirement{Name: r.Name, Importance: imp})
	}
	return out
}

func storeErr(what string, err error) error {
	return fmt.Errorf("%w: read %s: %w", ErrStoreUnavailable, what, err)
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrOccupationNotFound):
		return metrics.OutcomeOccupationNotFound
	case errors.Is(err, ErrUserNotFound):
		return metrics.OutcomeUserNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeStoreUnavailable
	}
}
