package bank

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/bank-statement-categorizer/internal/types"
)

// ErrUnsupportedBank is returned when a bank identifier names no known kind
var ErrUnsupportedBank = errors.New("unsupported bank")

// Kind identifies a supported statement issuer
type Kind int

const (
	Amex Kind = iota + 1
	ANZ
	CBA
	Westpac
)

var kindNames = map[Kind]string{
	Amex:    "amex",
	ANZ:     "anz",
	CBA:     "cba",
	Westpac: "westpac",
}

// Kinds returns every supported kind in declaration order
func Kinds() []Kind {
	return []Kind{Amex, ANZ, CBA, Westpac}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a bank identifier such as "westpac" to its Kind
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBank, s)
}

// Parser turns statement text into raw transactions. Parsers never fail:
// lines they cannot recognise are skipped.
type Parser interface {
	// Name returns the name of the layout the parser reads
	Name() string

	// Parse extracts transactions in statement order
	Parse(text string) []types.RawTransaction
}

// Registry maps each bank kind to an ordered chain of parsers. The first
// parser in a chain to produce transactions wins.
type Registry struct {
	chains map[Kind][]Parser
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		chains: make(map[Kind][]Parser),
	}
}

// Register sets the parser chain for a kind, replacing any previous chain
func (r *Registry) Register(kind Kind, parsers ...Parser) {
	r.chains[kind] = append([]Parser(nil), parsers...)
}

// Get returns the parser chain for a kind
func (r *Registry) Get(kind Kind) ([]Parser, bool) {
	chain, ok := r.chains[kind]
	if !ok || len(chain) == 0 {
		return nil, false
	}
	return chain, true
}

// List returns the names of all registered kinds, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.chains))
	for kind := range r.chains {
		names = append(names, kind.String())
	}
	sort.Strings(names)
	return names
}

// Validate checks that every supported kind has at least one parser
func (r *Registry) Validate() error {
	var missing []string
	for _, k := range Kinds() {
		if _, ok := r.Get(k); !ok {
			missing = append(missing, k.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no parser registered for: %s", strings.Join(missing, ", "))
	}
	return nil
}
