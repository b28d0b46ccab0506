package westpac

import (
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// Card parses Westpac credit card statements, which the account parser does
// not recognise. Description lines are collected after a date line until a
// line holding at least two amounts. Three amounts are read as debit, credit
// and balance; two as amount and balance.
type Card struct {
	opts bank.Options
}

// NewCard creates a new Westpac credit card parser
func NewCard(opts bank.Options) *Card {
	return &Card{opts: opts}
}

// Name returns the name of the layout
func (c *Card) Name() string {
	return patterns.WestpacCard.Name
}

// Parse extracts transactions from Westpac credit card statement text
func (c *Card) Parse(text string) []types.RawTransaction {
	year := c.opts.YearOrDefault()

	var (
		out []types.RawTransaction
		st  = seekingDate
		cur candidate
	)

	emit := func(amountsLine string) {
		if tx, ok := cur.cardTransaction(amountsLine); ok {
			out = append(out, tx)
		}
		st = seekingDate
	}

	for _, line := range bank.Lines(text) {
		if m := patterns.WestpacCard.DateLine.FindStringSubmatch(line); m != nil {
			date, ok := cardDate(m, year)
			if !ok {
				st = seekingDate
				continue
			}
			// an open candidate without amounts is dropped here
			cur = candidate{date: date}
			st = collectingDescription
			rest := m[7]
			if len(cardAmounts(rest)) >= 2 {
				cur.parts = []string{patterns.WestpacCard.Amount.ReplaceAllString(rest, " ")}
				emit(rest)
				continue
			}
			cur.parts = []string{rest}
			continue
		}

		if st != collectingDescription {
			continue
		}
		if len(cardAmounts(line)) >= 2 {
			emit(line)
			continue
		}
		if line != "" {
			cur.parts = append(cur.parts, line)
		}
	}

	return c.opts.AssignIDs(c.Name(), out)
}

func (c candidate) cardTransaction(amountsLine string) (types.RawTransaction, bool) {
	amounts := cardAmounts(amountsLine)
	desc := bank.CollapseSpace(strings.Join(c.parts, " "))

	tx := types.RawTransaction{Date: c.date, Description: desc}
	switch {
	case len(amounts) >= 3:
		debit, credit := amounts[0], amounts[1]
		switch {
		case !debit.IsZero():
			tx.Amount = debit.Neg()
			tx.Type = types.TransactionTypeDebit
		case !credit.IsZero():
			tx.Amount = credit
			tx.Type = types.TransactionTypeCredit
		default:
			return types.RawTransaction{}, false
		}
	case len(amounts) == 2:
		tx.Amount = amounts[0].Neg()
		tx.Type = types.TransactionTypeDebit
		if patterns.ContainsAny(desc, patterns.CardCreditKeywords) {
			tx.Amount = amounts[0]
			tx.Type = types.TransactionTypeCredit
		}
	default:
		return types.RawTransaction{}, false
	}

	balance := amounts[len(amounts)-1]
	tx.Balance = &balance
	return tx, true
}

func cardAmounts(s string) []types.Amount {
	var out []types.Amount
	for _, tok := range patterns.WestpacCard.Amount.FindAllString(s, -1) {
		if a, err := types.ParseAmount(tok); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// cardDate resolves DD/MM/YY or DD Mon [YY]
func cardDate(m []string, year int) (string, bool) {
	if m[1] != "" {
		y, ok := bank.ExpandYear(m[3], year)
		if !ok {
			return "", false
		}
		return bank.ISODate(y, m[2], m[1])
	}
	y, ok := bank.ExpandYear(m[6], year)
	if !ok {
		return "", false
	}
	return bank.NamedMonthDate(y, m[5], m[4])
}

var _ bank.Parser = (*Card)(nil)
