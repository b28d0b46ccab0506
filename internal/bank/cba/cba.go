// Package cba reads Commonwealth Bank statement text.
package cba

import (
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// CBA parses Commonwealth Bank statements. By default only the opening and
// closing balance lines are read, producing zero-amount marker rows that
// carry the printed balance. Those rows are removed by the balance filter
// before categorisation.
type CBA struct {
	opts bank.Options
}

// New creates a new CBA parser
func New(opts bank.Options) *CBA {
	return &CBA{opts: opts}
}

// Name returns the name of the layout
func (c *CBA) Name() string {
	return patterns.CBA.Name
}

// Parse extracts balance markers, and transaction lines when enabled
func (c *CBA) Parse(text string) []types.RawTransaction {
	year := c.opts.YearOrDefault()

	var out []types.RawTransaction
	for _, line := range bank.Lines(text) {
		if m := patterns.CBA.Marker.FindStringSubmatch(line); m != nil {
			if tx, ok := parseMarker(line, strings.ToUpper(m[1]), year); ok {
				out = append(out, tx)
			}
			continue
		}
		if !c.opts.CBATransactionLines {
			continue
		}
		if tx, ok := parseTransactionLine(line, year); ok {
			out = append(out, tx)
		}
	}

	return c.opts.AssignIDs(c.Name(), out)
}

func parseMarker(line, kind string, year int) (types.RawTransaction, bool) {
	date, ok := markerDate(line, year)
	if !ok {
		return types.RawTransaction{}, false
	}
	tx := types.RawTransaction{
		Date:        date,
		Description: kind + " BALANCE",
	}
	if amounts := bank.Amounts(line); len(amounts) > 0 {
		balance := amounts[len(amounts)-1]
		tx.Balance = &balance
	}
	return tx, true
}

// markerDate returns the first "D Month [YYYY]" on the line that is a real date
func markerDate(line string, year int) (string, bool) {
	for _, m := range patterns.CBA.DateLine.FindAllStringSubmatch(line, -1) {
		y, ok := bank.ExpandYear(m[3], year)
		if !ok {
			continue
		}
		if date, ok := bank.NamedMonthDate(y, m[2], m[1]); ok {
			return date, true
		}
	}
	return "", false
}

// parseTransactionLine reads "12 March 2024 DESCRIPTION 12.00 [balance]"
func parseTransactionLine(line string, year int) (types.RawTransaction, bool) {
	m := patterns.CBA.Row.FindStringSubmatch(line)
	if m == nil {
		return types.RawTransaction{}, false
	}
	y, ok := bank.ExpandYear(m[3], year)
	if !ok {
		return types.RawTransaction{}, false
	}
	date, ok := bank.NamedMonthDate(y, m[2], m[1])
	if !ok {
		return types.RawTransaction{}, false
	}

	rest := m[4]
	amounts := bank.Amounts(rest)
	if len(amounts) == 0 {
		return types.RawTransaction{}, false
	}

	desc := bank.CleanDescription(rest)
	tx := types.RawTransaction{
		Date:        date,
		Description: desc,
		Amount:      amounts[0].Abs().Neg(),
		Type:        types.TransactionTypeDebit,
	}
	if patterns.ContainsAny(desc, patterns.CreditKeywords) {
		tx.Amount = amounts[0].Abs()
		tx.Type = types.TransactionTypeCredit
	}
	if len(amounts) > 1 {
		balance := amounts[len(amounts)-1]
		tx.Balance = &balance
	}
	return tx, true
}

var _ bank.Parser = (*CBA)(nil)
