package repository

import (
	"context"

	"pathway/internal/database"
	"pathway/internal/domain/conviction"
)

type Occupation struct {
	Code        string
	Title       string
	Description *string
	JobZone     *int
	Interests   conviction.InterestVector
}

type OccupationSkill struct {
	Name       string
	Importance *float64
}

type OccupationRepository interface {
	FindByCode(ctx context.Context, code string) (Occupation, error)
	FindSkills(ctx context.Context, code string) ([]OccupationSkill, error)
	FindKnowledge(ctx context.Context, code string) ([]string, error)
	List(ctx context.Context, limit, offset int) ([]Occupation, error)
}

type PostgresOccupationRepository struct {
	db database.DB
}

func NewPostgresOccupationRepository(db database.DB) *PostgresOccupationRepository {
	return &PostgresOccupationRepository{db: db}
}

const occupationColumns = `code, title, description, job_zone,
	realistic::float8, investigative::float8, artistic::float8,
	social::float8, enterprising::float8, conventional::float8`

func scanOccupation(row database.Row) (Occupation, error) {
	var o Occupation
	iv := &o.Interests
	err := row.Scan(&o.Code, &o.Title, &o.Description, &o.JobZone,
		&iv.Realistic, &iv.Investigative, &iv.Artistic,
		&iv.Social, &iv.Enterprising, &iv.Conventional,
	)
	return o, err
}

func (r *PostgresOccupationRepository) FindByCode(ctx context.Context, code string) (Occupation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+occupationColumns+` FROM occupations WHERE code = $1`, code)

	o, err := scanOccupation(row)
	if err != nil {
		if database.IsNoRows(err) {
			return Occupation{}, ErrNotFound
		}
		return Occupation{}, err
	}
	return o, nil
}

func (r *PostgresOccupationRepository) FindSkills(ctx context.Context, code string) ([]OccupationSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, importance::float8
		 FROM occupation_skills
		 WHERE occupation_code = $1
		 ORDER BY importance DESC NULLS LAST, name ASC`,
		code,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OccupationSkill, 0)
	for rows.Next() {
		var s OccupationSkill
		if err := rows.Scan(&s.Name, &s.Importance); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOccupationRepository) FindKnowledge(ctx context.Context, code string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name FROM occupation_knowledge WHERE occupation_code = $1 ORDER BY name ASC`,
		code,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOccupationRepository) List(ctx context.Context, limit, offset int) ([]Occupation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+occupationColumns+`
		 FROM occupations
		 ORDER BY title ASC, code ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Occupation, 0)
	for rows.Next() {
		o, err := scanOccupation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
