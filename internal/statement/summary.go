package statement

import (
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Summarize computes the summary of processed transactions. total is the
// number of rows the parser produced before balance rows were dropped.
//
// The deductible total is the sum of absolute amounts rounded to cents. The
// sum is never negative, so decimal's half-away-from-zero rounding is
// round-half-up.
func Summarize(total int, txs []types.ProcessedTransaction) types.Summary {
	s := types.Summary{
		TotalTransactions:     total,
		ProcessedTransactions: len(txs),
		ByTaxCategory:         []types.TaxCategoryTotal{},
	}

	deductible := decimal.Zero
	byTax := map[string]*types.TaxCategoryTotal{}
	sums := map[string]decimal.Decimal{}

	for _, t := range txs {
		abs := t.Amount.Decimal.Abs()
		if t.IsDeductible {
			s.DeductibleTransactions++
			deductible = deductible.Add(abs)
		}
		if t.CategoryCode == types.UnmappedCode {
			s.UnmappedTransactions++
		}

		agg, ok := byTax[t.TaxCategory]
		if !ok {
			agg = &types.TaxCategoryTotal{TaxCategory: t.TaxCategory}
			byTax[t.TaxCategory] = agg
		}
		agg.Count++
		sums[t.TaxCategory] = sums[t.TaxCategory].Add(abs)
	}

	s.TotalDeductibleAmount = types.NewAmount(deductible)
	for name, agg := range byTax {
		agg.Total = types.NewAmount(sums[name])
		s.ByTaxCategory = append(s.ByTaxCategory, *agg)
	}
	slices.SortFunc(s.ByTaxCategory, func(a, b types.TaxCategoryTotal) int {
		return strings.Compare(a.TaxCategory, b.TaxCategory)
	})
	return s
}
