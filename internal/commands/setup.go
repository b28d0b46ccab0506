package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-statement-categorizer/internal/category"
	"github.com/lox/bank-statement-categorizer/internal/merchant"
	"github.com/lox/bank-statement-categorizer/internal/metrics"
	"github.com/lox/bank-statement-categorizer/internal/refdata"
	"github.com/lox/bank-statement-categorizer/internal/statement"
	"github.com/prometheus/client_golang/prometheus"
)

// SetupLogger creates a stderr logger at the given level
func SetupLogger(level string) (*log.Logger, error) {
	logger := log.New(os.Stderr)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// LoadTables returns the category table and merchant extractor, either the
// built-in ones or those stored in config.RefdataDB
func LoadTables(ctx context.Context, config CommonConfig, logger *log.Logger) (*category.Table, *merchant.Extractor, error) {
	if config.RefdataDB == "" {
		return category.Default(), merchant.Default(), nil
	}

	store, err := refdata.Open(ctx, config.RefdataDB, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open reference data: %w", err)
	}
	defer store.Close()

	categories, merchants, err := store.LoadTables(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reference data from %s: %w", config.RefdataDB, err)
	}

	logger.Info("Loaded reference data", "path", config.RefdataDB, "categories", categories.Len(), "rules", merchants.Len())
	return categories, merchants, nil
}

// BuildProcessor wires a statement processor from config. reg may be nil to
// disable metrics.
func BuildProcessor(ctx context.Context, config CommonConfig, logger *log.Logger, reg prometheus.Registerer) (*statement.Processor, *category.Table, error) {
	categories, merchants, err := LoadTables(ctx, config, logger)
	if err != nil {
		return nil, nil, err
	}

	var recorder *metrics.Recorder
	if reg != nil {
		recorder = metrics.New(reg)
	}

	processor, err := statement.NewProcessor(logger, statement.NewRegistry(config.BankOptions()), merchants, categories, recorder)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create processor: %w", err)
	}
	return processor, categories, nil
}
