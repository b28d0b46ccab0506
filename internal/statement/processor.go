// Package statement runs the categorisation pipeline over one statement:
// parse, drop balance rows, enrich each transaction and summarise.
package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/category"
	"github.com/lox/bank-statement-categorizer/internal/merchant"
	"github.com/lox/bank-statement-categorizer/internal/metrics"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// Result is the processed form of one statement
type Result struct {
	Bank         string                       `json:"bank"`
	Parser       string                       `json:"parser,omitempty"`
	Transactions []types.ProcessedTransaction `json:"transactions"`
	Summary      types.Summary                `json:"summary"`
}

// Deductible returns the transactions flagged deductible
func (r *Result) Deductible() []types.ProcessedTransaction {
	var out []types.ProcessedTransaction
	for _, t := range r.Transactions {
		if t.IsDeductible {
			out = append(out, t)
		}
	}
	return out
}

// Processor is safe for concurrent use; it holds only read-only tables.
type Processor struct {
	logger     *log.Logger
	registry   *bank.Registry
	merchants  *merchant.Extractor
	categories *category.Table
	metrics    *metrics.Recorder
}

// NewProcessor creates a processor with explicit dependencies. metrics may be nil.
func NewProcessor(
	logger *log.Logger,
	registry *bank.Registry,
	merchants *merchant.Extractor,
	categories *category.Table,
	recorder *metrics.Recorder,
) (*Processor, error) {
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parser registry: %w", err)
	}
	return &Processor{
		logger:     logger,
		registry:   registry,
		merchants:  merchants,
		categories: categories,
		metrics:    recorder,
	}, nil
}

// Process resolves bankID and processes text. An unknown bank is rejected
// before any parsing happens.
func (p *Processor) Process(bankID, text string) (*Result, error) {
	kind, err := bank.ParseKind(bankID)
	if err != nil {
		p.metrics.Statement("unknown", metrics.OutcomeUnsupported, 0)
		return nil, err
	}
	return p.ProcessKind(kind, text)
}

// ProcessKind processes statement text for a known bank
func (p *Processor) ProcessKind(kind bank.Kind, text string) (*Result, error) {
	start := time.Now()
	name := kind.String()

	chain, ok := p.registry.Get(kind)
	if !ok {
		p.metrics.Statement(name, metrics.OutcomeUnsupported, time.Since(start))
		return nil, fmt.Errorf("%w: no parser registered for %s", bank.ErrUnsupportedBank, name)
	}

	raw, parser := p.parse(name, chain, text)
	kept := FilterBalanceRows(raw)
	p.metrics.Filtered(name, len(raw)-len(kept))

	processed := make([]types.ProcessedTransaction, 0, len(kept))
	for _, tx := range kept {
		processed = append(processed, p.Enrich(tx))
	}

	summary := Summarize(len(raw), processed)
	p.metrics.Categorised(name, summary.UnmappedTransactions, summary.DeductibleTransactions)

	outcome := metrics.OutcomeOK
	if len(raw) == 0 {
		outcome = metrics.OutcomeEmpty
		p.logger.Warn("No transactions recognised in statement", "bank", name)
	}
	duration := time.Since(start)
	p.metrics.Statement(name, outcome, duration)

	p.logger.Info("Processed statement",
		"bank", name,
		"parser", parser,
		"total", summary.TotalTransactions,
		"processed", summary.ProcessedTransactions,
		"deductible", summary.DeductibleTransactions,
		"unmapped", summary.UnmappedTransactions,
		"duration", duration)

	return &Result{
		Bank:         name,
		Parser:       parser,
		Transactions: processed,
		Summary:      summary,
	}, nil
}

// parse runs the chain and keeps the first non-empty result
func (p *Processor) parse(bankName string, chain []bank.Parser, text string) ([]types.RawTransaction, string) {
	var last string
	for i, parser := range chain {
		last = parser.Name()
		raw := parser.Parse(text)
		p.logger.Debug("Parsed statement text", "bank", bankName, "parser", last, "transactions", len(raw))
		p.metrics.Parsed(bankName, last, len(raw))
		if len(raw) > 0 {
			return raw, last
		}
		if i < len(chain)-1 {
			p.logger.Info("Parser found no transactions, trying next layout",
				"bank", bankName,
				"parser", last,
				"next", chain[i+1].Name())
			p.metrics.Fallback(bankName, last)
		}
	}
	return nil, last
}

// Enrich attaches merchant and category data to a raw transaction. Category
// misses fall back to the unknown description, the "Other" tax category and
// not deductible.
func (p *Processor) Enrich(tx types.RawTransaction) types.ProcessedTransaction {
	m := p.merchants.Extract(tx.Description)

	out := types.ProcessedTransaction{
		RawTransaction:      tx,
		MerchantName:        m.MerchantName,
		CategoryCode:        m.CategoryCode,
		CategoryDescription: types.DefaultCategoryDescription,
		TaxCategory:         types.DefaultTaxCategory,
		Confidence:          m.Confidence,
	}
	if out.MerchantName == "" {
		out.MerchantName = types.DefaultMerchantName
	}
	if rec, ok := p.categories.Lookup(m.CategoryCode); ok {
		out.CategoryDescription = rec.Description
		out.TaxCategory = rec.TaxCategory
		out.IsDeductible = rec.IsDeductible
	}
	return out
}

// FilterBalanceRows drops transactions whose description mentions a balance,
// ignoring case. The input is not modified.
func FilterBalanceRows(raw []types.RawTransaction) []types.RawTransaction {
	out := make([]types.RawTransaction, 0, len(raw))
	for _, tx := range raw {
		if strings.Contains(strings.ToLower(tx.Description), "balance") {
			continue
		}
		out = append(out, tx)
	}
	return out
}
