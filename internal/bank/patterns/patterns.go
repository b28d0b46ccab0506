// Package patterns holds the compiled recognition rules for each supported
// statement layout. Everything here is built at package init and never
// modified; a new layout is added by declaring a new Set.
package patterns

import (
	"regexp"
	"strings"
)

// Set groups the expressions used to recognise one statement layout. Fields a
// layout does not need are left nil.
type Set struct {
	// Name identifies the layout in logs
	Name string
	// DateLine matches a line that opens a transaction
	DateLine *regexp.Regexp
	// Row matches a complete transaction in one expression
	Row *regexp.Regexp
	// Amount matches a single money token
	Amount *regexp.Regexp
	// Marker matches a section or continuation marker
	Marker *regexp.Regexp
}

const amountToken = `-?\$?\b(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}\b`

var (
	// AmountToken matches a two-decimal money token with optional sign, dollar
	// sign and thousands separators. Digits glued to a word are not money.
	AmountToken = regexp.MustCompile(amountToken)

	// BareInteger matches a token made only of digits.
	BareInteger = regexp.MustCompile(`^\d+$`)

	// Whitespace matches runs of whitespace for collapsing.
	Whitespace = regexp.MustCompile(`\s+`)
)

// Amex statements list "January 5" on its own line followed by the
// description and the amount a few lines later. Older exports put everything
// on one line: "May28 TRANSPORTFORNSW SYDNEY 2.24".
var Amex = Set{
	Name:     "amex",
	DateLine: regexp.MustCompile(`^([A-Za-z]{3,9})\s*(\d{1,2})$`),
	Row:      regexp.MustCompile(`^([A-Za-z]{3,9})\s*(\d{1,2})\s+(.+?)\s+\$?((?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2})$`),
	Amount:   AmountToken,
	Marker:   regexp.MustCompile(`Reference:\s*(.*)$`),
}

// ANZ rows carry processed date, transaction date, card suffix, description,
// amount, an optional CR marker and the running balance.
var ANZ = Set{
	Name: "anz",
	Row: regexp.MustCompile(
		`(?P<processed>\d{2}/\d{2}/\d{4})\s+` +
			`(?P<transaction>\d{2}/\d{2}/\d{4})\s+` +
			`(?P<card>\d{4})\s+` +
			`(?P<description>.*?)\s+` +
			`\$?(?P<amount>[\d,]+\.\d{2})\s*` +
			`(?P<credit>CR)?\s+` +
			`\$?(?P<balance>[\d,]+\.\d{2})`),
	Amount: AmountToken,
}

// CBA statements are read for their opening and closing balance lines, and
// optionally for "12 March 2024 DESCRIPTION 12.00" transaction lines.
var CBA = Set{
	Name:     "cba",
	DateLine: regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3,9})(?:\s+(\d{4}))?`),
	Row:      regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})(?:\s+(\d{4}))?\s+(.+)$`),
	Amount:   AmountToken,
	Marker:   regexp.MustCompile(`(?i)\b(opening|closing)\s+balance\b`),
}

// Westpac transaction lines start with DD/MM/YY or DD/MM/YYYY.
var Westpac = Set{
	Name:     "westpac",
	DateLine: regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4}|\d{2})(?:\s+(.*))?$`),
	Amount:   AmountToken,
}

// WestpacCard covers credit card statements, which use DD/MM/YY or
// "DD Mon [YY]" dates and put debit, credit and balance on an amounts line.
var WestpacCard = Set{
	Name:     "westpac-card",
	DateLine: regexp.MustCompile(`^(?:(\d{2})/(\d{2})/(\d{2})|(\d{1,2})\s+([A-Za-z]{3})(?:\s+(\d{2}|\d{4}))?)(?:\s+(.*))?$`),
	Amount:   regexp.MustCompile(`\b(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}\b`),
}

// WestpacListing covers transaction listings with one row per line:
// "12 Mar 24 DESCRIPTION 45.20". The year is optional and the last amount on
// the row is the transaction amount.
var WestpacListing = Set{
	Name:     "westpac-listing",
	DateLine: regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3})(?:\s+(\d{2}|\d{4}))?\s+(.+)$`),
	Amount:   AmountToken,
}

// CreditKeywords mark a Westpac description as money coming in.
var CreditKeywords = []string{"deposit", "salary", "transfer", "refund"}

// CardCreditKeywords mark a Westpac card description as a credit when only an
// amount and a balance are present.
var CardCreditKeywords = []string{"deposit", "refund"}

// ListingCreditKeywords mark a Westpac listing row as a credit.
var ListingCreditKeywords = []string{"cred voucher"}

var months = map[string]string{
	"january": "01", "jan": "01",
	"february": "02", "feb": "02",
	"march": "03", "mar": "03",
	"april": "04", "apr": "04",
	"may": "05",
	"june": "06", "jun": "06",
	"july": "07", "jul": "07",
	"august": "08", "aug": "08",
	"september": "09", "sep": "09", "sept": "09",
	"october": "10", "oct": "10",
	"november": "11", "nov": "11",
	"december": "12", "dec": "12",
}

// MonthNumber returns the two-digit month for a full or abbreviated month
// name, ignoring case.
func MonthNumber(name string) (string, bool) {
	m, ok := months[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ContainsAny reports whether s contains any of the keywords, ignoring case.
func ContainsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
