// Package westpac reads Westpac account and credit card statement text.
package westpac

import (
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

type state int

const (
	seekingDate state = iota
	collectingDescription
)

// Westpac parses Westpac account statements. A transaction starts at a line
// beginning with DD/MM/YY or DD/MM/YYYY and runs until the next such line.
type Westpac struct {
	opts bank.Options
}

// New creates a new Westpac account parser
func New(opts bank.Options) *Westpac {
	return &Westpac{opts: opts}
}

// Name returns the name of the layout
func (w *Westpac) Name() string {
	return patterns.Westpac.Name
}

type candidate struct {
	date  string
	parts []string
}

// Parse extracts transactions from Westpac account statement text
func (w *Westpac) Parse(text string) []types.RawTransaction {
	var (
		out []types.RawTransaction
		st  = seekingDate
		cur candidate
	)

	flush := func() {
		if st != collectingDescription {
			return
		}
		if tx, ok := cur.transaction(); ok {
			out = append(out, tx)
		}
		st = seekingDate
	}

	for _, line := range bank.Lines(text) {
		if m := patterns.Westpac.DateLine.FindStringSubmatch(line); m != nil {
			flush()
			date, ok := accountDate(m[1], m[2], m[3])
			if !ok {
				continue
			}
			cur = candidate{date: date, parts: []string{m[4]}}
			st = collectingDescription
			continue
		}
		if st == collectingDescription && line != "" {
			cur.parts = append(cur.parts, line)
		}
	}
	flush()

	return w.opts.AssignIDs(w.Name(), out)
}

// transaction needs an amount and a running balance in the stitched text;
// with fewer than two money tokens the candidate is dropped.
func (c candidate) transaction() (types.RawTransaction, bool) {
	stitched := strings.Join(c.parts, " ")
	amounts := bank.Amounts(stitched)
	if len(amounts) < 2 {
		return types.RawTransaction{}, false
	}

	desc := bank.CleanDescription(stitched)
	balance := amounts[len(amounts)-1]
	tx := types.RawTransaction{
		Date:        c.date,
		Description: desc,
		Amount:      amounts[0].Abs().Neg(),
		Type:        types.TransactionTypeDebit,
		Balance:     &balance,
	}
	if patterns.ContainsAny(desc, patterns.CreditKeywords) {
		tx.Amount = amounts[0].Abs()
		tx.Type = types.TransactionTypeCredit
	}
	return tx, true
}

func accountDate(day, month, year string) (string, bool) {
	y, ok := bank.ExpandYear(year, 0)
	if !ok {
		return "", false
	}
	return bank.ISODate(y, month, day)
}

var _ bank.Parser = (*Westpac)(nil)
