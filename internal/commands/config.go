package commands

import "github.com/lox/bank-statement-categorizer/internal/bank"

// CommonConfig contains configuration common to all commands
type CommonConfig struct {
	// LogLevel is the logging level to use
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error" env:"LOG_LEVEL"`
	// Year is assumed for statement dates that carry no year
	Year int `help:"Year assumed for dates without one" default:"2025" env:"STATEMENT_YEAR"`
	// RefdataDB is an optional SQLite file holding categories and merchant rules
	RefdataDB string `name:"refdata-db" help:"Path to reference data database (built-in tables when empty)" type:"path" env:"REFDATA_DB"`
	RandomIDs bool   `name:"random-ids" help:"Assign random transaction IDs instead of deterministic ones" default:"false"`
	// CBATransactionLines also emits CBA transaction rows, not just balance markers
	CBATransactionLines bool `name:"cba-transaction-lines" help:"Parse CBA transaction lines as well as balance markers" default:"false" env:"CBA_TRANSACTION_LINES"`
}

// BankOptions returns the parser options selected by the config
func (c CommonConfig) BankOptions() bank.Options {
	opts := bank.Options{
		Year:                c.Year,
		CBATransactionLines: c.CBATransactionLines,
	}
	if c.RandomIDs {
		opts.NewID = bank.RandomID
	}
	return opts
}
