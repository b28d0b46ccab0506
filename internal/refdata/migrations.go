package refdata

import (
	"context"
	"database/sql"
)

// Migration is a single schema change, applied once in ID order
type Migration struct {
	ID int
	Up func(ctx context.Context, db *sql.DB) error
}

func execMigration(stmt string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, stmt)
		return err
	}
}

var migrations = []Migration{
	{
		ID: 1,
		Up: execMigration(`
			CREATE TABLE IF NOT EXISTS categories (
				code TEXT PRIMARY KEY,
				description TEXT NOT NULL,
				tax_category TEXT NOT NULL,
				is_deductible INTEGER NOT NULL DEFAULT 0
			)`),
	},
	{
		ID: 2,
		Up: execMigration(`
			CREATE TABLE IF NOT EXISTS merchant_rules (
				position INTEGER PRIMARY KEY,
				merchant TEXT NOT NULL DEFAULT '',
				pattern TEXT NOT NULL,
				code TEXT NOT NULL,
				confidence REAL NOT NULL,
				priority INTEGER NOT NULL DEFAULT 0
			)`),
	},
	{
		ID: 3,
		Up: execMigration(`CREATE INDEX IF NOT EXISTS idx_merchant_rules_code ON merchant_rules(code)`),
	},
}

// ApplyMigrations applies all pending migrations to the database
func ApplyMigrations(ctx context.Context, db *sql.DB, logf func(msg string, args ...interface{})) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM migrations`)
	if err != nil {
		return err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return err
		}
		applied[id] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.ID] {
			continue
		}
		logf("Applying migration %d", m.ID)
		if err := m.Up(ctx, db); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO migrations (id) VALUES (?)`, m.ID); err != nil {
			return err
		}
	}
	return nil
}
