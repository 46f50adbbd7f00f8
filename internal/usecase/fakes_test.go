package usecase

import (
	"context"
	"sort"
	"sync"

	"pathway/internal/domain/conviction"
	"pathway/internal/repository"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	profile    *repository.Profile
	assessment *repository.Assessment
	skills     []repository.ProfileSkill

	profileErr error
	skillsErr  error
}

func (f fakeProfiles) FindProfile(ctx context.Context, _ uuid.UUID) (repository.Profile, error) {
	if err := ctx.Err(); err != nil {
		return repository.Profile{}, err
	}
	if f.profileErr != nil {
		return repository.Profile{}, f.profileErr
	}
	if f.profile == nil {
		return repository.Profile{}, repository.ErrNotFound
	}
	return *f.profile, nil
}

func (f fakeProfiles) FindSkills(ctx context.Context, _ uuid.UUID) ([]repository.ProfileSkill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.skills, f.skillsErr
}

func (f fakeProfiles) FindLatestAssessment(ctx context.Context, _ uuid.UUID) (repository.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return repository.Assessment{}, err
	}
	if f.assessment == nil {
		return repository.Assessment{}, repository.ErrNotFound
	}
	return *f.assessment, nil
}

type fakeOccupations struct {
	items     map[string]repository.Occupation
	skills    map[string][]repository.OccupationSkill
	knowledge map[string][]string
	listErr   error

	mu         sync.Mutex
	listLimit  int
	listOffset int
	listCalls  int
}

func (f *fakeOccupations) FindByCode(ctx context.Context, code string) (repository.Occupation, error) {
	if err := ctx.Err(); err != nil {
		return repository.Occupation{}, err
	}
	o, ok := f.items[code]
	if !ok {
		return repository.Occupation{}, repository.ErrNotFound
	}
	return o, nil
}

func (f *fakeOccupations) FindSkills(ctx context.Context, code string) ([]repository.OccupationSkill, error) {
	return f.skills[code], ctx.Err()
}

func (f *fakeOccupations) FindKnowledge(ctx context.Context, code string) ([]string, error) {
	return f.knowledge[code], ctx.Err()
}

func (f *fakeOccupations) List(_ context.Context, limit, offset int) ([]repository.Occupation, error) {
	f.mu.Lock()
	f.listLimit, f.listOffset = limit, offset
	f.listCalls++
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := make([]repository.Occupation, 0, len(f.items))
	for _, o := range f.items {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })

	if offset >= len(all) {
		return []repository.Occupation{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

type fakeEngagement struct {
	watches  []conviction.VideoWatch
	counters repository.EngagementCounters
	writeErr error

	mu        sync.Mutex
	pageViews int
	seconds   int
	upserted  []conviction.VideoWatch
}

func (f *fakeEngagement) FindVideoWatches(ctx context.Context, _ uuid.UUID, _ string) ([]conviction.VideoWatch, error) {
	return f.watches, ctx.Err()
}

func (f *fakeEngagement) FindCounters(ctx context.Context, _ uuid.UUID, _ string) (repository.EngagementCounters, error) {
	return f.counters, ctx.Err()
}

func (f *fakeEngagement) RecordPageView(context.Context, uuid.UUID, string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageViews++
	return nil
}

func (f *fakeEngagement) AddTimeSpent(_ context.Context, _ uuid.UUID, _ string, seconds int) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seconds += seconds
	return nil
}

func (f *fakeEngagement) UpsertVideoWatch(_ context.Context, _ uuid.UUID, _ string, w conviction.VideoWatch) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, w)
	return nil
}

func ptr[T any](v T) *T { return &v }
