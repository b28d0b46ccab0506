// Package batch categorises many statements concurrently.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-statement-categorizer/internal/statement"
	"golang.org/x/sync/errgroup"
)

// TextLoader reads the text of a statement document
type TextLoader interface {
	Load(path string) (string, error)
}

// StatementProcessor categorises statement text for a bank
type StatementProcessor interface {
	Process(bankID, text string) (*statement.Result, error)
}

// Job is one statement to categorise
type Job struct {
	Path string
	Bank string
}

// Outcome is the result of one job. Err is set when the statement could not
// be read or its bank is unsupported; other jobs are unaffected.
type Outcome struct {
	Path   string
	Result *statement.Result
	Err    error
}

type Config struct {
	Concurrency int
	Progress    bool
}

type Runner struct {
	logger    *log.Logger
	loader    TextLoader
	processor StatementProcessor
}

// NewRunner creates a new batch runner with explicit dependencies
func NewRunner(logger *log.Logger, loader TextLoader, processor StatementProcessor) *Runner {
	return &Runner{
		logger:    logger,
		loader:    loader,
		processor: processor,
	}
}

// Run processes jobs with at most config.Concurrency in flight. Outcomes are
// returned in job order. The returned error is only set when ctx is done.
func (r *Runner) Run(ctx context.Context, jobs []Job, config Config) ([]Outcome, error) {
	startTime := time.Now()
	r.logger.Info("Starting statement batch", "statements", len(jobs), "concurrency", config.Concurrency)

	var progress Progress = &NoopProgress{}
	if config.Progress && len(jobs) > 0 {
		progress = NewBarProgress(len(jobs))
	}
	defer progress.Close()

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]Outcome, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			outcomes[i] = r.runJob(job)

			if err := progress.Done(outcomes[i].Err != nil); err != nil {
				return fmt.Errorf("error updating progress: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	r.logger.Info("Finished statement batch",
		"statements", len(jobs),
		"failed", failed,
		"duration", time.Since(startTime))

	return outcomes, nil
}

func (r *Runner) runJob(job Job) Outcome {
	out := Outcome{Path: job.Path}

	text, err := r.loader.Load(job.Path)
	if err != nil {
		r.logger.Error("Failed to load statement", "path", job.Path, "error", err)
		out.Err = err
		return out
	}

	res, err := r.processor.Process(job.Bank, text)
	if err != nil {
		r.logger.Error("Failed to process statement", "path", job.Path, "bank", job.Bank, "error", err)
		out.Err = fmt.Errorf("failed to process %s: %w", job.Path, err)
		return out
	}
	out.Result = res
	return out
}
