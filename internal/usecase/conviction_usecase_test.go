package usecase

import (
	"context"
	"errors"
	"testing"

	"pathway/internal/domain/conviction"
	"pathway/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const devCode = "15-1252.00"

func developerOccupation() *fakeOccupations {
	return &fakeOccupations{
		items: map[string]repository.Occupation{
			devCode: {
				Code:      devCode,
				Title:     "Software Developers",
				JobZone:   ptr(4),
				Interests: conviction.InterestVector{Investigative: 1},
			},
		},
		skills: map[string][]repository.OccupationSkill{
			devCode: {{Name: "Programming", Importance: ptr(100.0)}},
		},
		knowledge: map[string][]string{
			devCode: {"Mathematics"},
		},
	}
}

func TestConviction_Compute_FullProfile(t *testing.T) {
	profiles := fakeProfiles{
		profile:    &repository.Profile{AccountType: ptr("bachelors")},
		assessment: &repository.Assessment{Interests: conviction.InterestVector{Investigative: 12}},
		skills: []repository.ProfileSkill{
			{Name: "programming", Proficiency: ptr(80.0)},
			{Name: "Mathematics"},
		},
	}
	engagement := &fakeEngagement{
		watches:  []conviction.VideoWatch{{VideoID: "intro", WatchedSeconds: 120, Completed: true}},
		counters: repository.EngagementCounters{PageViews: 2, TimeSpentSeconds: 300},
	}
	uc := NewConvictionUsecase(profiles, developerOccupation(), engagement, zap.NewNop())

	b, err := uc.Compute(context.Background(), uuid.New(), devCode)
	require.NoError(t, err)
	assert.Equal(t, conviction.Breakdown{
		Total:      84,
		Riasec:     100,
		Skills:     80,
		Education:  100,
		Engagement: 50,
	}, b)
}

func TestConviction_Compute_NoDataDefaults(t *testing.T) {
	uc := NewConvictionUsecase(fakeProfiles{}, developerOccupation(), &fakeEngagement{}, nil)

	b, err := uc.Compute(context.Background(), uuid.New(), devCode)
	require.NoError(t, err)
	assert.Equal(t, conviction.Breakdown{
		Total:      25,
		Riasec:     conviction.NeutralRiasecScore,
		Skills:     0,
		Education:  conviction.MissingEducationScore,
		Engagement: 0,
	}, b)
}

func TestConviction_Compute_NullableDefaults(t *testing.T) {
	occs := &fakeOccupations{
		items: map[string]repository.Occupation{
			"27-3043.00": {Code: "27-3043.00", Title: "Writers and Authors"},
		},
		skills: map[string][]repository.OccupationSkill{
			"27-3043.00": {{Name: "Writing"}},
		},
	}
	profiles := fakeProfiles{
		profile: &repository.Profile{AccountType: ptr("high_school")},
		skills:  []repository.ProfileSkill{{Name: "Writing"}},
	}
	uc := NewConvictionUsecase(profiles, occs, &fakeEngagement{}, nil)

	b, err := uc.Compute(context.Background(), uuid.New(), " 27-3043.00 ")
	require.NoError(t, err)
	assert.Equal(t, 50, b.Skills)
	assert.Equal(t, 70, b.Education)
	assert.Equal(t, 50, b.Riasec)
}

func TestConviction_Compute_NegativeInterestsClamped(t *testing.T) {
	occs := developerOccupation()
	o := occs.items[devCode]
	o.Interests = conviction.InterestVector{Investigative: 2, Artistic: -5}
	occs.items[devCode] = o

	profiles := fakeProfiles{
		assessment: &repository.Assessment{Interests: conviction.InterestVector{Investigative: 3, Social: -1}},
	}
	uc := NewConvictionUsecase(profiles, occs, &fakeEngagement{}, nil)

	b, err := uc.Compute(context.Background(), uuid.New(), devCode)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Riasec)
}

func TestConviction_Compute_Errors(t *testing.T) {
	ctx := context.Background()
	uc := NewConvictionUsecase(fakeProfiles{}, developerOccupation(), &fakeEngagement{}, nil)

	_, err := uc.Compute(ctx, uuid.Nil, devCode)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = uc.Compute(ctx, uuid.New(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Compute(ctx, uuid.New(), "99-9999.99")
	assert.ErrorIs(t, err, ErrOccupationNotFound)

	boom := errors.New("connection refused")
	failing := NewConvictionUsecase(fakeProfiles{skillsErr: boom}, developerOccupation(), &fakeEngagement{}, nil)
	_, err = failing.Compute(ctx, uuid.New(), devCode)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrOccupationNotFound)
}

func TestConviction_Compute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewConvictionUsecase(fakeProfiles{}, developerOccupation(), &fakeEngagement{}, nil)
	_, err := uc.Compute(ctx, uuid.New(), devCode)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConviction_Compute_Deterministic(t *testing.T) {
	uc := NewConvictionUsecase(fakeProfiles{profile: &repository.Profile{}}, developerOccupation(), &fakeEngagement{}, nil)
	userID := uuid.New()

	first, err := uc.Compute(context.Background(), userID, devCode)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := uc.Compute(context.Background(), userID, devCode)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
