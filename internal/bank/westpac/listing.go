package westpac

import (
	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// Listing parses single-line rows such as "12 Mar 24 COLES 45.20". Rows are
// debits unless the description carries a credit voucher.
type Listing struct {
	opts bank.Options
}

// NewListing creates a new Westpac listing parser
func NewListing(opts bank.Options) *Listing {
	return &Listing{opts: opts}
}

// Name returns the name of the layout
func (l *Listing) Name() string {
	return patterns.WestpacListing.Name
}

// Parse extracts transactions from Westpac listing text
func (l *Listing) Parse(text string) []types.RawTransaction {
	year := l.opts.YearOrDefault()

	var out []types.RawTransaction
	for _, line := range bank.Lines(text) {
		if tx, ok := listingRow(line, year); ok {
			out = append(out, tx)
		}
	}
	return l.opts.AssignIDs(l.Name(), out)
}

func listingRow(line string, year int) (types.RawTransaction, bool) {
	m := patterns.WestpacListing.DateLine.FindStringSubmatch(line)
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
	locs := patterns.WestpacListing.Amount.FindAllStringIndex(rest, -1)
	if len(locs) == 0 {
		return types.RawTransaction{}, false
	}
	last := locs[len(locs)-1]
	amount, err := types.ParseAmount(rest[last[0]:last[1]])
	if err != nil {
		return types.RawTransaction{}, false
	}

	desc := bank.CollapseSpace(rest[:last[0]])
	if desc == "" || patterns.BareInteger.MatchString(desc) {
		desc = "-"
	}

	tx := types.RawTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount.Abs().Neg(),
		Type:        types.TransactionTypeDebit,
	}
	if patterns.ContainsAny(desc, patterns.ListingCreditKeywords) {
		tx.Amount = amount.Abs()
		tx.Type = types.TransactionTypeCredit
	}
	return tx, true
}

var _ bank.Parser = (*Listing)(nil)
