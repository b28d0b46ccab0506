// Package merchant recognises merchants in transaction descriptions and
// infers a category code for them.
package merchant

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/lox/bank-statement-categorizer/internal/types"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// HeuristicConfidence is given when no rule matched but a merchant name
	// could still be read from the description
	HeuristicConfidence = 0.2

	// maxNameWords bounds heuristic merchant names
	maxNameWords = 3
)

// Rule maps a description pattern to a merchant and category code
type Rule struct {
	// Merchant is the canonical name. Empty means the name is read from the
	// description.
	Merchant string `json:"merchant,omitempty"`
	// Pattern is matched case-insensitively against the cleaned description
	Pattern    string  `json:"pattern" validate:"required"`
	Code       string  `json:"code" validate:"required,max=32"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	// Priority orders rules, highest first. Ties keep declaration order.
	Priority int `json:"priority"`
}

// Result is the outcome of extracting a merchant from a description
type Result struct {
	MerchantName string  `json:"merchant_name"`
	CategoryCode string  `json:"category_code"`
	Confidence   float64 `json:"confidence"`
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Extractor applies an ordered rule set. It is immutable and safe for
// concurrent use.
type Extractor struct {
	rules []compiledRule
}

// New validates and compiles rules into an Extractor
func New(rules []Rule) (*Extractor, error) {
	validate := validator.New()

	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("invalid merchant rule %d (%q): %w", i, r.Pattern, err)
		}
		if r.Code == types.UnmappedCode {
			return nil, fmt.Errorf("merchant rule %d (%q) uses reserved code %s", i, r.Pattern, types.UnmappedCode)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile merchant rule %d: %w", i, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	slices.SortStableFunc(compiled, func(a, b compiledRule) int {
		return b.Priority - a.Priority
	})

	return &Extractor{rules: compiled}, nil
}

var (
	defaultOnce      sync.Once
	defaultExtractor *Extractor
)

// Default returns the extractor for the built-in knowledge base, building it
// on first use.
func Default() *Extractor {
	defaultOnce.Do(func() {
		e, err := New(DefaultRules())
		if err != nil {
			panic(fmt.Sprintf("built-in merchant rules are invalid: %v", err))
		}
		defaultExtractor = e
	})
	return defaultExtractor
}

// Len returns the number of rules
func (e *Extractor) Len() int {
	return len(e.rules)
}

// Extract returns the merchant, category code and confidence for a
// description. It never fails: unrecognised descriptions yield the unmapped
// code with a name read from the description, or "Unknown".
func (e *Extractor) Extract(description string) Result {
	cleaned := Clean(description)
	if cleaned == "" {
		return Result{
			MerchantName: types.DefaultMerchantName,
			CategoryCode: types.UnmappedCode,
		}
	}

	for _, r := range e.rules {
		if !r.re.MatchString(cleaned) {
			continue
		}
		name := r.Merchant
		if name == "" {
			name = heuristicName(cleaned)
		}
		return Result{
			MerchantName: name,
			CategoryCode: r.Code,
			Confidence:   r.Confidence,
		}
	}

	return Result{
		MerchantName: heuristicName(cleaned),
		CategoryCode: types.UnmappedCode,
		Confidence:   HeuristicConfidence,
	}
}

func heuristicName(cleaned string) string {
	words := strings.Fields(cleaned)
	if len(words) > maxNameWords {
		words = words[:maxNameWords]
	}
	// a Caser is stateful, so each call gets its own
	name := cases.Title(language.English).String(strings.ToLower(strings.Join(words, " ")))
	if name == "" {
		return types.DefaultMerchantName
	}
	return name
}

var (
	processorPrefix = regexp.MustCompile(`(?i)^(?:eftpos|visa|debit card|mastercard|card)\s+(?:purchase|debit|payment)\s*`)
	walletPrefix    = regexp.MustCompile(`(?i)\b(?:sq|sp|paypal|zlr|lsp|ezi)\s*\*\s*`)
	cardNumber      = regexp.MustCompile(`(?i)\bcard\s*(?:no\.?\s*)?x*\d{4}\b|\bx{2,}\d{4}\b`)
	reference       = regexp.MustCompile(`(?i)\bref(?:erence)?\s*[:#]\s*\S+`)
	noiseChars      = regexp.MustCompile(`[*#]+`)
	numericToken    = regexp.MustCompile(`^[\d/.,:\-$]+$`)
)

// Clean strips payment processor prefixes, card numbers, references and
// numeric tokens from a description, leaving the merchant text.
func Clean(description string) string {
	s := strings.TrimSpace(description)
	s = processorPrefix.ReplaceAllString(s, "")
	s = walletPrefix.ReplaceAllString(s, "")
	s = cardNumber.ReplaceAllString(s, " ")
	s = reference.ReplaceAllString(s, " ")
	s = noiseChars.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if numericToken.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
