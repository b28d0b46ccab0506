package statement

import (
	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/amex"
	"github.com/lox/bank-statement-categorizer/internal/bank/anz"
	"github.com/lox/bank-statement-categorizer/internal/bank/cba"
	"github.com/lox/bank-statement-categorizer/internal/bank/westpac"
)

// NewRegistry registers a parser chain for every supported bank. Westpac
// falls back to the credit card layout and then to the single-line listing
// when the earlier layouts find nothing.
func NewRegistry(opts bank.Options) *bank.Registry {
	registry := bank.NewRegistry()
	registry.Register(bank.Amex, amex.New(opts))
	registry.Register(bank.ANZ, anz.New(opts))
	registry.Register(bank.CBA, cba.New(opts))
	registry.Register(bank.Westpac, westpac.New(opts), westpac.NewCard(opts), westpac.NewListing(opts))
	return registry
}
