package seeder

import (
	"context"
	"fmt"

	"pathway/internal/database"
	"pathway/internal/domain/conviction"
)

type OccupationSeed struct {
	Code      string
	Title     string
	JobZone   int
	Interests conviction.InterestVector
	Skills    []conviction.SkillRequirement
	Knowledge []string
}

// OccupationsSeeder upserts reference occupations and replaces their skill and knowledge lists.
type OccupationsSeeder struct {
	Items []OccupationSeed
}

func (OccupationsSeeder) Name() string { return "occupations" }

var occupationTables = []TableColumns{
	{Table: "occupations", Columns: []string{"code", "title", "job_zone", "realistic", "investigative", "artistic", "social", "enterprising", "conventional", "updated_at"}},
	{Table: "occupation_skills", Columns: []string{"occupation_code", "name", "importance"}},
	{Table: "occupation_knowledge", Columns: []string{"occupation_code", "name"}},
}

func (s OccupationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureSchema(ctx, db, occupationTables...); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, o := range s.Items {
		iv := o.Interests
		if _, err := tx.Exec(ctx,
			`INSERT INTO occupations (code, title, job_zone, realistic, investigative, artistic, social, enterprising, conventional, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			 ON CONFLICT (code) DO UPDATE SET
			   title = EXCLUDED.title,
			   job_zone = EXCLUDED.job_zone,
			   realistic = EXCLUDED.realistic,
			   investigative = EXCLUDED.investigative,
			   artistic = EXCLUDED.artistic,
			   social = EXCLUDED.social,
			   enterprising = EXCLUDED.enterprising,
			   conventional = EXCLUDED.conventional,
			   updated_at = now()`,
			o.Code, o.Title, o.JobZone,
			iv.Realistic, iv.Investigative, iv.Artistic, iv.Social, iv.Enterprising, iv.Conventional,
		); err != nil {
			return fmt.Errorf("occupation %s: %w", o.Code, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM occupation_skills WHERE occupation_code = $1`, o.Code); err != nil {
			return err
		}
		for _, sk := range o.Skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO occupation_skills (occupation_code, name, importance) VALUES ($1, $2, $3)`,
				o.Code, sk.Name, sk.Importance,
			); err != nil {
				return fmt.Errorf("occupation %s skill %s: %w", o.Code, sk.Name, err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM occupation_knowledge WHERE occupation_code = $1`, o.Code); err != nil {
			return err
		}
		for _, k := range o.Knowledge {
			if _, err := tx.Exec(ctx,
				`INSERT INTO occupation_knowledge (occupation_code, name) VALUES ($1, $2)`,
				o.Code, k,
			); err != nil {
				return fmt.Errorf("occupation %s knowledge %s: %w", o.Code, k, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DemoOccupations is a small O*NET-shaped catalog for local runs. Interest scores use the O*NET
// 1..7 scale and skill importance is rescaled to 0..100.
func DemoOccupations() []OccupationSeed {
	return []OccupationSeed{
		{
			Code: "15-1252.00", Title: "Software Developers", JobZone: 4,
			Interests: conviction.InterestVector{Realistic: 2.3, Investigative: 6.4, Artistic: 3.1, Social: 1.7, Enterprising: 2.9, Conventional: 4.6},
			Skills: []conviction.SkillRequirement{
				{Name: "Programming", Importance: 88},
				{Name: "Critical Thinking", Importance: 75},
				{Name: "Complex Problem Solving", Importance: 72},
				{Name: "Reading Comprehension", Importance: 69},
			},
			Knowledge: []string{"Computers and Electronics", "Mathematics", "English Language"},
		},
		{
			Code: "29-1141.00", Title: "Registered Nurses", JobZone: 3,
			Interests: conviction.InterestVector{Realistic: 3.0, Investigative: 4.3, Artistic: 1.3, Social: 6.7, Enterprising: 2.6, Conventional: 3.3},
			Skills: []conviction.SkillRequirement{
				{Name: "Active Listening", Importance: 78},
				{Name: "Social Perceptiveness", Importance: 75},
				{Name: "Service Orientation", Importance: 72},
				{Name: "Critical Thinking", Importance: 72},
			},
			Knowledge: []string{"Medicine and Dentistry", "Psychology", "Biology"},
		},
		{
			Code: "27-1024.00", Title: "Graphic Designers", JobZone: 4,
			Interests: conviction.InterestVector{Realistic: 2.5, Investigative: 2.0, Artistic: 7.0, Social: 1.7, Enterprising: 3.9, Conventional: 3.0},
			Skills: []conviction.SkillRequirement{
				{Name: "Active Listening", Importance: 72},
				{Name: "Operations Analysis", Importance: 60},
				{Name: "Time Management", Importance: 56},
			},
			Knowledge: []string{"Design", "Communications and Media", "Fine Arts"},
		},
		{
			Code: "47-2111.00", Title: "Electricians", JobZone: 3,
			Interests: conviction.InterestVector{Realistic: 6.8, Investigative: 3.8, Artistic: 1.0, Social: 1.3, Enterprising: 2.0, Conventional: 3.5},
			Skills: []conviction.SkillRequirement{
				{Name: "Troubleshooting", Importance: 78},
				{Name: "Repairing", Importance: 75},
				{Name: "Critical Thinking", Importance: 66},
			},
			Knowledge: []string{"Building and Construction", "Mechanical", "Mathematics"},
		},
		{
			Code: "13-2011.00", Title: "Accountants and Auditors", JobZone: 4,
			Interests: conviction.InterestVector{Realistic: 1.0, Investigative: 3.9, Artistic: 1.3, Social: 2.1, Enterprising: 4.4, Conventional: 7.0},
			Skills: []conviction.SkillRequirement{
				{Name: "Mathematics", Importance: 72},
				{Name: "Reading Comprehension", Importance: 72},
				{Name: "Critical Thinking", Importance: 69},
			},
			Knowledge: []string{"Economics and Accounting", "Mathematics", "English Language"},
		},
		{
			Code: "25-2031.00", Title: "Secondary School Teachers", JobZone: 4,
			Interests: conviction.InterestVector{Realistic: 1.5, Investigative: 3.2, Artistic: 3.4, Social: 6.8, Enterprising: 3.4, Conventional: 2.9},
			Skills: []conviction.SkillRequirement{
				{Name: "Instructing", Importance: 81},
				{Name: "Speaking", Importance: 78},
				{Name: "Learning Strategies", Importance: 75},
			},
			Knowledge: []string{"Education and Training", "English Language", "Psychology"},
		},
	}
}
