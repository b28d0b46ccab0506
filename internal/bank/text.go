package bank

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lox/bank-statement-categorizer/internal/bank/patterns"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// Lines splits statement text into trimmed lines, keeping blank ones so that
// lookahead windows count them.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// ISODate builds a YYYY-MM-DD date, reporting false when the parts do not
// form a real calendar date.
func ISODate(year int, month, day string) (string, bool) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return "", false
	}
	s := fmt.Sprintf("%04d-%02d-%02d", year, m, d)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// NamedMonthDate is ISODate for a month name such as "Jun" or "January"
func NamedMonthDate(year int, monthName, day string) (string, bool) {
	m, ok := patterns.MonthNumber(monthName)
	if !ok {
		return "", false
	}
	return ISODate(year, m, day)
}

// ExpandYear turns a two-digit year into 20YY. An empty string yields
// fallback.
func ExpandYear(s string, fallback int) (int, bool) {
	if s == "" {
		return fallback, true
	}
	if len(s) == 2 {
		s = "20" + s
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// Amounts returns every money token in s that parses
func Amounts(s string) []types.Amount {
	var out []types.Amount
	for _, tok := range patterns.AmountToken.FindAllString(s, -1) {
		a, err := types.ParseAmount(tok)
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

// CleanDescription removes money tokens and bare integers, then collapses
// whitespace.
func CleanDescription(s string) string {
	s = patterns.AmountToken.ReplaceAllString(s, " ")
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if patterns.BareInteger.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// CollapseSpace joins the fields of s with single spaces
func CollapseSpace(s string) string {
	return patterns.Whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
