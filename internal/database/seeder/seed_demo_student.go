package seeder

import (
	"context"
	"fmt"

	"pathway/internal/database"

	"github.com/google/uuid"
)

// DemoStudentID is the fixed id of the seeded student, handy with pathwayctl score and token.
var DemoStudentID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// DemoStudentSeeder creates one student with skills and a completed assessment. Existing rows are
// left untouched.
type DemoStudentSeeder struct{}

func (DemoStudentSeeder) Name() string { return "demo_student" }

var demoStudentTables = []TableColumns{
	{Table: "users", Columns: []string{"id", "email", "display_name", "account_type", "graduation_year"}},
	{Table: "user_skills", Columns: []string{"id", "user_id", "name", "proficiency"}},
	{Table: "assessments", Columns: []string{"id", "user_id", "realistic", "investigative", "artistic", "social", "enterprising", "conventional", "completed_at"}},
}

func (DemoStudentSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureSchema(ctx, db, demoStudentTables...); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(ctx,
		`INSERT INTO users (id, email, display_name, account_type, graduation_year)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		DemoStudentID, "demo.student@pathway.local", "Demo Student", "high_school", 2027,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}

	skills := []struct {
		Name        string
		Proficiency float64
	}{
		{"Mathematics", 70},
		{"Programming", 55},
		{"Critical Thinking", 60},
		{"Reading Comprehension", 80},
		{"English Language", 75},
	}
	for _, s := range skills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, name, proficiency) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (user_id, name) DO NOTHING`,
			uuid.New(), DemoStudentID, s.Name, s.Proficiency,
		); err != nil {
			return fmt.Errorf("skill %s: %w", s.Name, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO assessments (id, user_id, realistic, investigative, artistic, social, enterprising, conventional, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		uuid.New(), DemoStudentID, 4, 14, 6, 5, 3, 8,
	); err != nil {
		return fmt.Errorf("assessment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
