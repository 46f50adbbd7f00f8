package repository

import (
	"context"
	"time"

	"pathway/internal/database"
	"pathway/internal/domain/conviction"

	"github.com/google/uuid"
)

// Profile is the projection of a user record the scoring engine reads. AccountType carries the
// education category; both nullable fields are resolved by the caller.
type Profile struct {
	UserID         uuid.UUID
	Email          string
	AccountType    *string
	GraduationYear *int
}

type ProfileSkill struct {
	Name        string
	Proficiency *float64
}

type Assessment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Interests conviction.InterestVector
	CreatedAt time.Time
}

type ProfileRepository interface {
	FindProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	FindSkills(ctx context.Context, userID uuid.UUID) ([]ProfileSkill, error)
	FindLatestAssessment(ctx context.Context, userID uuid.UUID) (Assessment, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, account_type, graduation_year
		 FROM users
		 WHERE id = $1`,
		userID,
	)

	var p Profile
	if err := row.Scan(&p.UserID, &p.Email, &p.AccountType, &p.GraduationYear); err != nil {
		if database.IsNoRows(err) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) FindSkills(ctx context.Context, userID uuid.UUID) ([]ProfileSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, proficiency::float8
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProfileSkill, 0)
	for rows.Next() {
		var s ProfileSkill
		if err := rows.Scan(&s.Name, &s.Proficiency); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindLatestAssessment returns the most recently created assessment, or ErrNotFound when the
// user never completed one.
func (r *PostgresProfileRepository) FindLatestAssessment(ctx context.Context, userID uuid.UUID) (Assessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id,
		        realistic::float8, investigative::float8, artistic::float8,
		        social::float8, enterprising::float8, conventional::float8,
		        created_at
		 FROM assessments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var a Assessment
	iv := &a.Interests
	if err := row.Scan(&a.ID, &a.UserID,
		&iv.Realistic, &iv.Investigative, &iv.Artistic,
		&iv.Social, &iv.Enterprising, &iv.Conventional,
		&a.CreatedAt,
	); err != nil {
		if database.IsNoRows(err) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	return a, nil
}
