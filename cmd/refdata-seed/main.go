package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/bank-statement-categorizer/internal/category"
	"github.com/lox/bank-statement-categorizer/internal/commands"
	"github.com/lox/bank-statement-categorizer/internal/merchant"
	"github.com/lox/bank-statement-categorizer/internal/refdata"
)

type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	Path     string `arg:"" optional:"" help:"SQLite file to write the built-in reference data to" type:"path" default:"./data/refdata.db"`
}

func (c *CLI) Run() error {
	logger, err := commands.SetupLogger(c.LogLevel)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := refdata.Open(ctx, c.Path, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Seed(ctx, category.DefaultRecords(), merchant.DefaultRules())
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("refdata-seed"),
		kong.Description("Write the built-in categories and merchant rules to a SQLite database"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
