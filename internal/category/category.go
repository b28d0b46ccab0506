// Package category holds the category reference table used to decide tax
// treatment.
package category

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/lox/bank-statement-categorizer/internal/types"
)

// Table is an immutable code-keyed lookup of category records
type Table struct {
	records map[string]types.CategoryRecord
}

// NewTable validates records and builds a table. Codes must be unique and
// the unmapped code is reserved.
func NewTable(records []types.CategoryRecord) (*Table, error) {
	validate := validator.New()

	m := make(map[string]types.CategoryRecord, len(records))
	for _, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("invalid category %q: %w", r.Code, err)
		}
		if r.Code == types.UnmappedCode {
			return nil, fmt.Errorf("category code %s is reserved", types.UnmappedCode)
		}
		if _, dup := m[r.Code]; dup {
			return nil, fmt.Errorf("duplicate category code %q", r.Code)
		}
		m[r.Code] = r
	}
	return &Table{records: m}, nil
}

// Lookup returns the record for code
func (t *Table) Lookup(code string) (types.CategoryRecord, bool) {
	r, ok := t.records[code]
	return r, ok
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all records sorted by code
func (t *Table) Records() []types.CategoryRecord {
	out := make([]types.CategoryRecord, 0, len(t.records))
	for _, r := range t.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in table, building it on first use
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(DefaultRecords())
		if err != nil {
			panic(fmt.Sprintf("built-in categories are invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}
