// Package amex reads American Express statement text.
package amex

import (
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// lookahead is how many lines after the description may hold the amount
const lookahead = 3

type state int

const (
	seekingDate state = iota
	collectingDescription
	seekingAmount
)

// Amex parses American Express statements. Dates carry no year, so the
// configured year is applied. Amex does not mark credits inline, so every
// amount is stored as a positive debit.
type Amex struct {
	opts bank.Options
}

// New creates a new Amex parser
func New(opts bank.Options) *Amex {
	return &Amex{opts: opts}
}

// Name returns the name of the layout
func (a *Amex) Name() string {
	return patterns.Amex.Name
}

// Parse extracts transactions from Amex statement text
func (a *Amex) Parse(text string) []types.RawTransaction {
	lines := bank.Lines(text)
	year := a.opts.YearOrDefault()

	var (
		out    []types.RawTransaction
		st     = seekingDate
		start  int
		date   string
		desc   string
		window int
	)

	// abandon drops the open candidate and resumes scanning after its date line
	abandon := func(i *int) {
		st = seekingDate
		*i = start
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch st {
		case seekingDate:
			if tx, ok := parseRow(line, year); ok {
				tx.Description = withReference(tx.Description, lines, i+1)
				out = append(out, tx)
				continue
			}
			if d, ok := parseDateLine(line, year); ok {
				date, start = d, i
				st = collectingDescription
			}

		case collectingDescription:
			if d, ok := parseDateLine(line, year); ok {
				date, start = d, i
				continue
			}
			desc = bank.CollapseSpace(line)
			if desc == "" {
				abandon(&i)
				continue
			}
			window = 0
			st = seekingAmount

		case seekingAmount:
			if _, ok := parseDateLine(line, year); ok {
				abandon(&i)
				continue
			}
			window++
			if amounts := bank.Amounts(line); len(amounts) > 0 {
				out = append(out, types.RawTransaction{
					Date:        date,
					Description: withReference(desc, lines, i+1),
					Amount:      amounts[0].Abs(),
					Type:        types.TransactionTypeDebit,
				})
				st = seekingDate
				continue
			}
			if window == lookahead || i == len(lines)-1 {
				abandon(&i)
			}
		}
	}

	return a.opts.AssignIDs(a.Name(), out)
}

func parseDateLine(line string, year int) (string, bool) {
	m := patterns.Amex.DateLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return bank.NamedMonthDate(year, m[1], m[2])
}

// parseRow reads the single-line layout "May28 DESCRIPTION 2.24"
func parseRow(line string, year int) (types.RawTransaction, bool) {
	m := patterns.Amex.Row.FindStringSubmatch(line)
	if m == nil {
		return types.RawTransaction{}, false
	}
	date, ok := bank.NamedMonthDate(year, m[1], m[2])
	if !ok {
		return types.RawTransaction{}, false
	}
	amount, err := types.ParseAmount(m[4])
	if err != nil {
		return types.RawTransaction{}, false
	}
	return types.RawTransaction{
		Date:        date,
		Description: bank.CollapseSpace(m[3]),
		Amount:      amount.Abs(),
		Type:        types.TransactionTypeDebit,
	}, true
}

// withReference appends " Ref:X" when the line at next is a "Reference: X" line
func withReference(desc string, lines []string, next int) string {
	if next >= len(lines) {
		return desc
	}
	m := patterns.Amex.Marker.FindStringSubmatch(lines[next])
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return desc
	}
	return desc + " Ref:" + strings.TrimSpace(m[1])
}

var _ bank.Parser = (*Amex)(nil)
