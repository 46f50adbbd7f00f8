package seeder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"pathway/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// TableColumns names the columns a seeder writes into one table.
type TableColumns struct {
	Table   string
	Columns []string
}

// EnsureSchema checks in one round trip that every table a seeder writes has been migrated.
// All missing columns are reported together, sorted by table.
func EnsureSchema(ctx context.Context, db database.DB, tables ...TableColumns) error {
	if db == nil {
		return database.ErrNilDB
	}
	if len(tables) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(tables))
	args := make([]any, 0, len(tables))
	for i, t := range tables {
		if t.Table == "" || slices.Contains(t.Columns, "") {
			return fmt.Errorf("%w: empty table or column name", ErrSchemaMismatch)
		}
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, t.Table)
	}

	rows, err := db.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name IN (`+strings.Join(placeholders, ", ")+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	defer rows.Close()

	existing := map[string]bool{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		existing[table+"."+column] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, t := range tables {
		for _, col := range t.Columns {
			if !existing[t.Table+"."+col] {
				missing = append(missing, t.Table+"."+col)
			}
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing %s (run pathwayctl migrate)", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}
