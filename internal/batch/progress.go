package batch

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

const progressDescription = "Categorising statements"

// Progress tracks completed statements
type Progress interface {
	// Done marks one statement finished
	Done(failed bool) error
	Close()
}

// NoopProgress is a progress tracker that does nothing
type NoopProgress struct{}

func (p *NoopProgress) Done(bool) error { return nil }
func (p *NoopProgress) Close()          {}

// BarProgress renders a bar whose description carries the failure count.
// It is safe for concurrent use.
type BarProgress struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	failed int
}

// NewBarProgress creates a progress bar for total statements on stderr
func NewBarProgress(total int) *BarProgress {
	return newBarProgress(os.Stderr, total)
}

func newBarProgress(w io.Writer, total int) *BarProgress {
	return &BarProgress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(progressDescription),
			progressbar.OptionSetWriter(w),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			})),
	}
}

func (p *BarProgress) Done(failed bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if failed {
		p.failed++
		p.bar.Describe(fmt.Sprintf("%s (%d failed)", progressDescription, p.failed))
	}
	return p.bar.Add(1)
}

// Failed returns the number of statements reported as failed
func (p *BarProgress) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

func (p *BarProgress) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}
