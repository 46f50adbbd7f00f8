package repository

import (
	"context"

	"pathway/internal/database"
	"pathway/internal/domain/conviction"

	"github.com/google/uuid"
)

type EngagementCounters struct {
	PageViews        int
	TimeSpentSeconds int
}

type EngagementRepository interface {
	FindVideoWatches(ctx context.Context, userID uuid.UUID, occupationCode string) ([]conviction.VideoWatch, error)
	FindCounters(ctx context.Context, userID uuid.UUID, occupationCode string) (EngagementCounters, error)

	RecordPageView(ctx context.Context, userID uuid.UUID, occupationCode string) error
	AddTimeSpent(ctx context.Context, userID uuid.UUID, occupationCode string, seconds int) error
	UpsertVideoWatch(ctx context.Context, userID uuid.UUID, occupationCode string, w conviction.VideoWatch) error
}

type PostgresEngagementRepository struct {
	db database.DB
}

func NewPostgresEngagementRepository(db database.DB) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db}
}

func (r *PostgresEngagementRepository) FindVideoWatches(ctx context.Context, userID uuid.UUID, occupationCode string) ([]conviction.VideoWatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT video_id, watched_seconds, completed
		 FROM video_watches
		 WHERE user_id = $1 AND occupation_code = $2
		 ORDER BY video_id ASC`,
		userID, occupationCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]conviction.VideoWatch, 0)
	for rows.Next() {
		var w conviction.VideoWatch
		if err := rows.Scan(&w.VideoID, &w.WatchedSeconds, &w.Completed); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindCounters returns zero counters when nothing was recorded yet.
func (r *PostgresEngagementRepository) FindCounters(ctx context.Context, userID uuid.UUID, occupationCode string) (EngagementCounters, error) {
	row := r.db.QueryRow(ctx,
		`SELECT page_views, time_spent_seconds
		 FROM career_engagement
		 WHERE user_id = $1 AND occupation_code = $2`,
		userID, occupationCode,
	)

	var c EngagementCounters
	if err := row.Scan(&c.PageViews, &c.TimeSpentSeconds); err != nil {
		if database.IsNoRows(err) {
			return EngagementCounters{}, nil
		}
		return EngagementCounters{}, err
	}
	return c, nil
}

func (r *PostgresEngagementRepository) RecordPageView(ctx context.Context, userID uuid.UUID, occupationCode string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO career_engagement (user_id, occupation_code, page_views, time_spent_seconds, updated_at)
		 VALUES ($1, $2, 1, 0, now())
		 ON CONFLICT (user_id, occupation_code)
		 DO UPDATE SET page_views = career_engagement.page_views + 1, updated_at = now()`,
		userID, occupationCode,
	)
	return err
}

func (r *PostgresEngagementRepository) AddTimeSpent(ctx context.Context, userID uuid.UUID, occupationCode string, seconds int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO career_engagement (user_id, occupation_code, page_views, time_spent_seconds, updated_at)
		 VALUES ($1, $2, 0, $3, now())
		 ON CONFLICT (user_id, occupation_code)
		 DO UPDATE SET time_spent_seconds = career_engagement.time_spent_seconds + EXCLUDED.time_spent_seconds, updated_at = now()`,
		userID, occupationCode, seconds,
	)
	return err
}

// UpsertVideoWatch keeps the furthest watch position seen and never clears completion, so
// replaying the same report is harmless.
func (r *PostgresEngagementRepository) UpsertVideoWatch(ctx context.Context, userID uuid.UUID, occupationCode string, w conviction.VideoWatch) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO video_watches (user_id, occupation_code, video_id, watched_seconds, completed, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id, occupation_code, video_id)
		 DO UPDATE SET
		   watched_seconds = GREATEST(video_watches.watched_seconds, EXCLUDED.watched_seconds),
		   completed = video_watches.completed OR EXCLUDED.completed,
		   updated_at = now()`,
		userID, occupationCode, w.VideoID, w.WatchedSeconds, w.Completed,
	)
	return err
}
