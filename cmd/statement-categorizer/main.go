package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/batch"
	"github.com/lox/bank-statement-categorizer/internal/commands"
	"github.com/lox/bank-statement-categorizer/internal/report"
	"github.com/lox/bank-statement-categorizer/internal/textsource"
)

type CLI struct {
	commands.CommonConfig

	Files       []string `arg:"" help:"Statement files to categorise (.pdf or extracted text)" type:"existingfile"`
	Bank        string   `help:"Bank that issued the statements (amex, anz, cba, westpac)" required:"" env:"STATEMENT_BANK"`
	Format      string   `help:"Output format" default:"json" enum:"json,csv"`
	Output      string   `help:"Write the report to this file instead of stdout" short:"o" type:"path"`
	Concurrency int      `help:"Number of statements to process concurrently" default:"4"`
	NoProgress  bool     `help:"Disable progress bar" default:"false"`
}

func (c *CLI) Run() error {
	logger, err := commands.SetupLogger(c.LogLevel)
	if err != nil {
		return err
	}

	if _, err := bank.ParseKind(c.Bank); err != nil {
		return fmt.Errorf("%w (available: %v)", err, bank.Kinds())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	processor, _, err := commands.BuildProcessor(ctx, c.CommonConfig, logger, nil)
	if err != nil {
		return err
	}

	jobs := make([]batch.Job, 0, len(c.Files))
	for _, f := range c.Files {
		jobs = append(jobs, batch.Job{Path: f, Bank: c.Bank})
	}

	runner := batch.NewRunner(logger, textsource.NewLoader(logger), processor)
	outcomes, err := runner.Run(ctx, jobs, batch.Config{
		Concurrency: c.Concurrency,
		Progress:    !c.NoProgress,
	})
	if err != nil {
		return fmt.Errorf("failed to categorise statements: %w", err)
	}

	var out io.Writer = os.Stdout
	if c.Output != "" {
		file, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := report.Write(out, c.Format, report.FromOutcomes(outcomes)); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Error("Statement failed", "path", o.Path, "error", o.Err)
			continue
		}
		s := o.Result.Summary
		logger.Info("Statement categorised",
			"path", o.Path,
			"transactions", s.ProcessedTransactions,
			"deductible", s.DeductibleTransactions,
			"deductible_amount", s.TotalDeductibleAmount,
			"unmapped", s.UnmappedTransactions,
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(outcomes))
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: failed to load .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("statement-categorizer"),
		kong.Description("Categorise bank statement transactions for tax deductions"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
