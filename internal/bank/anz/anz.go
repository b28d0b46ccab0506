// Package anz reads ANZ credit card statement text.
package anz

import (
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// ANZ parses ANZ statements with a single row expression over the whole
// text. The transaction date, not the processed date, is used.
//
// ANZ prints a CR marker after credited amounts. Rows carrying the marker are
// stored negative and tagged credit; all other rows are stored positive and
// tagged debit. This is the inverse of the sign used by the other parsers and
// is kept so that existing ANZ output does not change; consumers wanting a
// uniform convention should use Type rather than the sign.
type ANZ struct {
	opts bank.Options
}

// New creates a new ANZ parser
func New(opts bank.Options) *ANZ {
	return &ANZ{opts: opts}
}

// Name returns the name of the layout
func (a *ANZ) Name() string {
	return patterns.ANZ.Name
}

// Parse extracts transactions from ANZ statement text
func (a *ANZ) Parse(text string) []types.RawTransaction {
	row := patterns.ANZ.Row
	var (
		idxDate        = row.SubexpIndex("transaction")
		idxDescription = row.SubexpIndex("description")
		idxAmount      = row.SubexpIndex("amount")
		idxCredit      = row.SubexpIndex("credit")
		idxBalance     = row.SubexpIndex("balance")
	)

	var out []types.RawTransaction
	for _, m := range row.FindAllStringSubmatch(text, -1) {
		date, ok := isoDate(m[idxDate])
		if !ok {
			continue
		}
		amount, err := types.ParseAmount(m[idxAmount])
		if err != nil {
			continue
		}

		tx := types.RawTransaction{
			Date:        date,
			Description: bank.CollapseSpace(m[idxDescription]),
			Amount:      amount,
			Type:        types.TransactionTypeDebit,
		}
		if m[idxCredit] != "" {
			tx.Amount = amount.Neg()
			tx.Type = types.TransactionTypeCredit
		}
		if balance, err := types.ParseAmount(m[idxBalance]); err == nil {
			tx.Balance = &balance
		}
		out = append(out, tx)
	}

	return a.opts.AssignIDs(a.Name(), out)
}

// isoDate converts DD/MM/YYYY
func isoDate(s string) (string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}
	year, ok := bank.ExpandYear(parts[2], 0)
	if !ok {
		return "", false
	}
	return bank.ISODate(year, parts[1], parts[0])
}

var _ bank.Parser = (*ANZ)(nil)
