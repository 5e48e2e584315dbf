package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

type bankImportCmd struct {
	dealer string
	dryRun bool
	asJSON bool
}

func (*bankImportCmd) Name() string     { return "bank-import" }
func (*bankImportCmd) Synopsis() string { return "load a bank statement CSV into the bank feed" }
func (*bankImportCmd) Usage() string {
	return `ledgerctl bank-import [-dealer id] [-dry-run] [-json] <file.csv>

  Columns: date, merchant, amount (required); status, vehicle_id, id (optional).
  Rows already imported are skipped. Invalid rows are listed and not loaded.
`
}

func (c *bankImportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dealer, "dealer", "", "dealer id (defaults to app.default_dealer_id)")
	f.BoolVar(&c.dryRun, "dry-run", false, "validate without writing")
	f.BoolVar(&c.asJSON, "json", false, "print the result as JSON")
}

func (c *bankImportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	file, err := os.Open(filepath.Clean(f.Arg(0)))
	if err != nil {
		fail("open %s: %v", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	e, err := openEnv(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	dealerID, err := e.dealerID(c.dealer)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}

	result, err := e.bankFeed(c.dryRun).Import(ctx, dealerID, file)
	if err != nil {
		fail("import: %v", err)
		return subcommands.ExitFailure
	}
	if c.asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(result)
	} else {
		fmt.Printf("rows %d, imported %d, skipped %d, errors %d\n",
			result.TotalRows, result.Imported, result.Skipped, result.TotalErrors)
		for _, rowErr := range result.Errors {
			fmt.Println("  " + rowErr.Error())
		}
	}
	if result.TotalErrors > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
