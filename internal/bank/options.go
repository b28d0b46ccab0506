package bank

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// DefaultYear is used for statements that print dates without a year
const DefaultYear = 2025

// IDFunc generates the identifier for the seq'th transaction a parser found
type IDFunc func(parser string, seq int, t types.RawTransaction) string

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/lox/bank-statement-categorizer"))

// DeterministicID derives a name-based UUID from the transaction contents, so
// the same statement always yields the same identifiers.
func DeterministicID(parser string, seq int, t types.RawTransaction) string {
	name := fmt.Sprintf("%s|%d|%s|%s|%s", parser, seq, t.Date, t.Description, t.Amount)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// RandomID returns a random UUID
func RandomID(string, int, types.RawTransaction) string {
	return uuid.NewString()
}

// Options configures the parsers
type Options struct {
	// Year is applied to dates printed without one. Zero means DefaultYear.
	Year int
	// NewID generates transaction identifiers. Nil means DeterministicID.
	NewID IDFunc
	// CBATransactionLines makes the CBA parser emit dated transaction lines
	// in addition to the balance markers.
	CBATransactionLines bool
}

// YearOrDefault returns the configured year or DefaultYear
func (o Options) YearOrDefault() int {
	if o.Year <= 0 {
		return DefaultYear
	}
	return o.Year
}

// AssignIDs fills in the ID of every transaction in place and returns the slice
func (o Options) AssignIDs(parser string, txs []types.RawTransaction) []types.RawTransaction {
	newID := o.NewID
	if newID == nil {
		newID = DeterministicID
	}
	for i := range txs {
		txs[i].ID = newID(parser, i, txs[i])
	}
	return txs
}
