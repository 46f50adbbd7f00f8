package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pathway/internal/domain/conviction"
	"pathway/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultDiscoveryLimit = 20
	MaxDiscoveryLimit     = 50

	// discoveryScanBatch is the page size used to walk the occupation catalogue.
	discoveryScanBatch = 200
)

type DiscoveryParams struct {
	Limit  int
	Offset int
}

type DiscoveryItem struct {
	OccupationCode string
	Title          string
	Fit            int
	// Estimated is set when Fit came from the fallback strategy rather than an assessment.
	Estimated bool
}

type DiscoveryUsecase interface {
	Discover(ctx context.Context, userID uuid.UUID, params DiscoveryParams) ([]DiscoveryItem, error)
}

// Discovery ranks the whole occupation catalogue by RIASEC fit and returns one page of it. Users who have not taken the assessment
// get fit scores from the fallback strategy so the list still looks varied.
type Discovery struct {
	profiles     repository.ProfileRepository
	occupations  repository.OccupationRepository
	fallback     conviction.RiasecFallback
	defaultLimit int
}

func NewDiscoveryUsecase(profiles repository.ProfileRepository, occupations repository.OccupationRepository, fallback conviction.RiasecFallback, defaultLimit int) *Discovery {
	if fallback == nil {
		fallback = conviction.NeutralDefaultStrategy{}
	}
	if defaultLimit <= 0 || defaultLimit > MaxDiscoveryLimit {
		defaultLimit = DefaultDiscoveryLimit
	}
	return &Discovery{profiles: profiles, occupations: occupations, fallback: fallback, defaultLimit: defaultLimit}
}

func (u *Discovery) Discover(ctx context.Context, userID uuid.UUID, params DiscoveryParams) ([]DiscoveryItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if params.Limit < 0 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	limit := params.Limit
	if limit == 0 {
		limit = u.defaultLimit
	}
	if limit > MaxDiscoveryLimit {
		limit = MaxDiscoveryLimit
	}

	var assessment *repository.Assessment
	a, err := u.profiles.FindLatestAssessment(ctx, userID)
	switch {
	case err == nil:
		assessment = &a
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, fmt.Errorf("%w: read assessment: %w", ErrStoreUnavailable, err)
	}

	occs, err := u.catalogue(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]DiscoveryItem, 0, len(occs))
	for _, o := range occs {
		item := DiscoveryItem{OccupationCode: o.Code, Title: o.Title}
		if assessment != nil {
			item.Fit = conviction.Similarity(assessment.Interests.NonNegative(), o.Interests.NonNegative())
		} else {
			item.Fit = u.fallback.Score()
			item.Estimated = true
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Fit > items[j].Fit
	})

	if params.Offset >= len(items) {
		return []DiscoveryItem{}, nil
	}
	end := min(params.Offset+limit, len(items))
	return items[params.Offset:end], nil
}

// catalogue reads every occupation in title order, one batch at a time.
func (u *Discovery) catalogue(ctx context.Context) ([]repository.Occupation, error) {
	var all []repository.Occupation
	for offset := 0; ; offset += discoveryScanBatch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := u.occupations.List(ctx, discoveryScanBatch, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: list occupations: %w", ErrStoreUnavailable, err)
		}
		all = append(all, batch...)
		if len(batch) < discoveryScanBatch {
			return all, nil
		}
	}
}
