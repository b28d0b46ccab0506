// Package report writes categorised statements as JSON or CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/bank-statement-categorizer/internal/batch"
	"github.com/lox/bank-statement-categorizer/internal/statement"
)

// Formats supported by Write
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Statement is one statement in a report
type Statement struct {
	Path string `json:"path"`
	*statement.Result
	Error string `json:"error,omitempty"`
}

// FromOutcomes converts batch outcomes into report statements
func FromOutcomes(outcomes []batch.Outcome) []Statement {
	out := make([]Statement, 0, len(outcomes))
	for _, o := range outcomes {
		s := Statement{Path: o.Path, Result: o.Result}
		if o.Err != nil {
			s.Error = o.Err.Error()
		}
		out = append(out, s)
	}
	return out
}

// Write renders statements in the given format
func Write(w io.Writer, format string, statements []Statement) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, statements)
	case FormatCSV:
		return WriteCSV(w, statements)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

// WriteJSON writes the statements as an indented JSON array
func WriteJSON(w io.Writer, statements []Statement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statements); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"file", "bank", "id", "date", "description", "amount", "type", "balance",
	"merchant", "category_code", "category_description", "tax_category", "deductible", "confidence",
}

// WriteCSV writes one row per processed transaction. Statements that failed
// produce no rows.
func WriteCSV(w io.Writer, statements []Statement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, s := range statements {
		if s.Result == nil {
			continue
		}
		for _, t := range s.Transactions {
			balance := ""
			if t.Balance != nil {
				balance = t.Balance.String()
			}
			row := []string{
				s.Path,
				s.Bank,
				t.ID,
				t.Date,
				t.Description,
				t.Amount.String(),
				string(t.Type),
				balance,
				t.MerchantName,
				t.CategoryCode,
				t.CategoryDescription,
				t.TaxCategory,
				strconv.FormatBool(t.IsDeductible),
				strconv.FormatFloat(t.Confidence, 'f', 2, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
