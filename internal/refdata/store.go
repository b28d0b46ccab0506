// Package refdata keeps the category table and merchant rules in SQLite so
// they can be edited without rebuilding.
package refdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"
	"github.com/lox/bank-statement-categorizer/internal/category"
	"github.com/lox/bank-statement-categorizer/internal/merchant"
	"github.com/lox/bank-statement-categorizer/internal/types"
	"github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Store is a SQLite reference data store
type Store struct {
	db     *sql.DB
	logger *log.Logger

	retryAttempts uint
	retryDelay    time.Duration
}

// Open opens or creates the store at path and applies migrations
func Open(ctx context.Context, path string, logger *log.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set database pragmas: %w", err)
	}

	s, err := New(ctx, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and applies migrations
func New(ctx context.Context, db *sql.DB, logger *log.Logger) (*Store, error) {
	if err := ApplyMigrations(ctx, db, logger.Debugf); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return &Store{
		db:            db,
		logger:        logger,
		retryAttempts: 5,
		retryDelay:    100 * time.Millisecond,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func isBusy(err error) bool {
	if errors.Is(err, sqlite3.BUSY) || errors.Is(err, sqlite3.LOCKED) {
		return true
	}
	return strings.Contains(err.Error(), "database is locked")
}

// Seed replaces the stored reference data in one transaction, retrying while
// another connection holds the database lock.
func (s *Store) Seed(ctx context.Context, categories []types.CategoryRecord, rules []merchant.Rule) error {
	err := retry.Do(
		func() error {
			return s.seed(ctx, categories, rules)
		},
		retry.Context(ctx),
		retry.Attempts(s.retryAttempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("Reference data store busy, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}
	s.logger.Info("Seeded reference data", "categories", len(categories), "merchant_rules", len(rules))
	return nil
}

func (s *Store) seed(ctx context.Context, categories []types.CategoryRecord, rules []merchant.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_rules`); err != nil {
		return err
	}

	for _, c := range categories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (code, description, tax_category, is_deductible) VALUES (?, ?, ?, ?)`,
			c.Code, c.Description, c.TaxCategory, c.IsDeductible)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", c.Code, err)
		}
	}
	for i, r := range rules {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO merchant_rules (position, merchant, pattern, code, confidence, priority) VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.Merchant, r.Pattern, r.Code, r.Confidence, r.Priority)
		if err != nil {
			return fmt.Errorf("failed to insert merchant rule %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Categories returns the stored category records ordered by code
func (s *Store) Categories(ctx context.Context) ([]types.CategoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, description, tax_category, is_deductible FROM categories ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var out []types.CategoryRecord
	for rows.Next() {
		var c types.CategoryRecord
		if err := rows.Scan(&c.Code, &c.Description, &c.TaxCategory, &c.IsDeductible); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MerchantRules returns the stored rules in their original order
func (s *Store) MerchantRules(ctx context.Context) ([]merchant.Rule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT merchant, pattern, code, confidence, priority FROM merchant_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant rules: %w", err)
	}
	defer rows.Close()

	var out []merchant.Rule
	for rows.Next() {
		var r merchant.Rule
		if err := rows.Scan(&r.Merchant, &r.Pattern, &r.Code, &r.Confidence, &r.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan merchant rule: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadTables builds the lookup tables from the stored data. An empty store is
// an error, since every transaction would come out unmapped.
func (s *Store) LoadTables(ctx context.Context) (*category.Table, *merchant.Extractor, error) {
	records, err := s.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	rules, err := s.MerchantRules(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 || len(rules) == 0 {
		return nil, nil, errors.New("reference data store is empty, run refdata-seed first")
	}

	table, err := category.NewTable(records)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build category table: %w", err)
	}
	extractor, err := merchant.New(rules)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build merchant extractor: %w", err)
	}

	s.logger.Debug("Loaded reference data", "categories", table.Len(), "merchant_rules", extractor.Len())
	return table, extractor, nil
}
