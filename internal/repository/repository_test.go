package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pathway/internal/database/sqldb"
	"pathway/internal/domain/conviction"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqldb.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqldb.New(db), mock
}

func TestProfileRepository_FindProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "account_type", "graduation_year"}).
			AddRow(userID.String(), "student@example.com", nil, int64(2027)))

	p, err := repo.FindProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Nil(t, p.AccountType)
	require.NotNil(t, p.GraduationYear)
	assert.Equal(t, 2027, *p.GraduationYear)
}

func TestProfileRepository_FindProfile_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "account_type", "graduation_year"}))

	_, err := repo.FindProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepository_FindSkills_NullableProficiency(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_skills")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "proficiency"}).
			AddRow("Mathematics", 80.0).
			AddRow("Writing", nil))

	skills, err := repo.FindSkills(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, skills, 2)
	require.NotNil(t, skills[0].Proficiency)
	assert.Equal(t, 80.0, *skills[0].Proficiency)
	assert.Nil(t, skills[1].Proficiency)
}

func TestProfileRepository_FindLatestAssessment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresProfileRepository(db)
	userID := uuid.New()
	id := uuid.New()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	cols := []string{"id", "user_id", "realistic", "investigative", "artistic", "social", "enterprising", "conventional", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(id.String(), userID.String(), 7.0, 5.0, 1.0, 2.0, 3.0, 4.0, created))

	a, err := repo.FindLatestAssessment(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)
	assert.Equal(t, conviction.InterestVector{
		Realistic: 7, Investigative: 5, Artistic: 1, Social: 2, Enterprising: 3, Conventional: 4,
	}, a.Interests)
	assert.Equal(t, created, a.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.FindLatestAssessment(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func occupationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"code", "title", "description", "job_zone",
		"realistic", "investigative", "artistic", "social", "enterprising", "conventional",
	})
}

func TestOccupationRepository_FindByCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresOccupationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM occupations WHERE code = $1")).
		WithArgs("15-1252.00").
		WillReturnRows(occupationRows().
			AddRow("15-1252.00", "Software Developers", nil, int64(4), 2.0, 6.5, 3.0, 1.5, 3.5, 4.5))

	o, err := repo.FindByCode(context.Background(), "15-1252.00")
	require.NoError(t, err)
	assert.Equal(t, "Software Developers", o.Title)
	require.NotNil(t, o.JobZone)
	assert.Equal(t, 4, *o.JobZone)
	assert.Equal(t, 6.5, o.Interests.Investigative)
}

func TestOccupationRepository_FindByCode_Errors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresOccupationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM occupations")).WillReturnRows(occupationRows())
	_, err := repo.FindByCode(context.Background(), "00-0000.00")
	assert.ErrorIs(t, err, ErrNotFound)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM occupations")).WillReturnError(boom)
	_, err = repo.FindByCode(context.Background(), "00-0000.00")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOccupationRepository_SkillsAndKnowledge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresOccupationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM occupation_skills")).
		WithArgs("29-1141.00").
		WillReturnRows(sqlmock.NewRows([]string{"name", "importance"}).
			AddRow("Active Listening", 75.0).
			AddRow("Critical Thinking", nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM occupation_knowledge")).
		WithArgs("29-1141.00").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Biology").AddRow("Psychology"))

	skills, err := repo.FindSkills(context.Background(), "29-1141.00")
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Nil(t, skills[1].Importance)

	knowledge, err := repo.FindKnowledge(context.Background(), "29-1141.00")
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology", "Psychology"}, knowledge)
}

func TestOccupationRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresOccupationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(2, 0).
		WillReturnRows(occupationRows().
			AddRow("27-1024.00", "Graphic Designers", "Design visuals", nil, 2.0, 1.0, 7.0, 2.0, 3.0, 2.5).
			AddRow("29-1141.00", "Registered Nurses", nil, int64(3), 2.5, 4.5, 1.0, 7.0, 2.5, 3.0))

	items, err := repo.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Description)
	assert.Nil(t, items[0].JobZone)
	assert.Equal(t, "Registered Nurses", items[1].Title)
}

func TestEngagementRepository_Reads(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresEngagementRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM video_watches")).
		WithArgs(userID, "15-1252.00").
		WillReturnRows(sqlmock.NewRows([]string{"video_id", "watched_seconds", "completed"}).
			AddRow("intro", int64(240), true).
			AddRow("day-in-life", int64(30), false))
	mock.ExpectQuery(regexp.QuoteMeta("FROM career_engagement")).
		WithArgs(userID, "15-1252.00").
		WillReturnRows(sqlmock.NewRows([]string{"page_views", "time_spent_seconds"}))

	watches, err := repo.FindVideoWatches(context.Background(), userID, "15-1252.00")
	require.NoError(t, err)
	assert.Equal(t, []conviction.VideoWatch{
		{VideoID: "intro", WatchedSeconds: 240, Completed: true},
		{VideoID: "day-in-life", WatchedSeconds: 30},
	}, watches)

	counters, err := repo.FindCounters(context.Background(), userID, "15-1252.00")
	require.NoError(t, err)
	assert.Equal(t, EngagementCounters{}, counters)
}

func TestEngagementRepository_Upserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresEngagementRepository(db)
	userID := uuid.New()
	code := "15-1252.00"

	mock.ExpectExec(regexp.QuoteMeta("page_views = career_engagement.page_views + 1")).
		WithArgs(userID, code).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("time_spent_seconds = career_engagement.time_spent_seconds + EXCLUDED.time_spent_seconds")).
		WithArgs(userID, code, 90).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("GREATEST(video_watches.watched_seconds, EXCLUDED.watched_seconds)")).
		WithArgs(userID, code, "intro", 120, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, repo.RecordPageView(ctx, userID, code))
	require.NoError(t, repo.AddTimeSpent(ctx, userID, code, 90))
	require.NoError(t, repo.UpsertVideoWatch(ctx, userID, code, conviction.VideoWatch{
		VideoID: "intro", WatchedSeconds: 120, Completed: true,
	}))
}
