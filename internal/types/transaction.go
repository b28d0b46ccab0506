package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

const (
	// UnmappedCode is the category code given to transactions no merchant rule matched
	UnmappedCode = "UNMAPPED"

	DefaultMerchantName        = "Unknown"
	DefaultCategoryDescription = "Unknown"
	DefaultTaxCategory         = "Other"
)

// Amount is a currency value carried at cent precision
type Amount struct {
	decimal.Decimal
}

// NewAmount rounds d to cents and wraps it
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d.Round(2)}
}

// ParseAmount parses a statement amount such as "$1,020.50" or "23.40"
func ParseAmount(s string) (Amount, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Amount{}, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return NewAmount(d), nil
}

// MustAmount is ParseAmount for literals known to be valid
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) String() string {
	return a.StringFixed(2)
}

func (a Amount) Neg() Amount {
	return Amount{a.Decimal.Neg()}
}

func (a Amount) Abs() Amount {
	return Amount{a.Decimal.Abs()}
}

// MarshalJSON renders the amount as a bare number with two fraction digits
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = NewAmount(d)
	return nil
}

// RawTransaction is a transaction as extracted from statement text
type RawTransaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      Amount          `json:"amount"`
	Type        TransactionType `json:"type,omitempty"`
	Balance     *Amount         `json:"balance,omitempty"`
}

// ProcessedTransaction is a raw transaction enriched with merchant and category data
type ProcessedTransaction struct {
	RawTransaction
	MerchantName        string  `json:"merchant_name"`
	CategoryCode        string  `json:"category_code"`
	CategoryDescription string  `json:"category_description"`
	TaxCategory         string  `json:"tax_category"`
	IsDeductible        bool    `json:"is_deductible"`
	Confidence          float64 `json:"confidence"`
}

// CategoryRecord is one row of the category reference table
type CategoryRecord struct {
	Code         string `json:"code" validate:"required,max=32"`
	Description  string `json:"description" validate:"required"`
	TaxCategory  string `json:"tax_category" validate:"required"`
	IsDeductible bool   `json:"is_deductible"`
}

// TaxCategoryTotal is the per tax category breakdown of a summary
type TaxCategoryTotal struct {
	TaxCategory string `json:"tax_category"`
	Count       int    `json:"count"`
	Total       Amount `json:"total"`
}

// Summary aggregates a processed statement
type Summary struct {
	TotalTransactions      int                `json:"total_transactions"`
	ProcessedTransactions  int                `json:"processed_transactions"`
	DeductibleTransactions int                `json:"deductible_transactions"`
	TotalDeductibleAmount  Amount             `json:"total_deductible_amount"`
	UnmappedTransactions   int                `json:"unmapped_transactions"`
	ByTaxCategory          []TaxCategoryTotal `json:"by_tax_category"`
}
