package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type profitCmd struct {
	dealer string
}

func (*profitCmd) Name() string     { return "profit" }
func (*profitCmd) Synopsis() string { return "print a vehicle's profit summary" }
func (*profitCmd) Usage() string {
	return `ledgerctl profit [-dealer id] <vehicle-id>
`
}

func (c *profitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dealer, "dealer", "", "dealer id (defaults to app.default_dealer_id)")
}

func (c *profitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	vehicleID, err := uuid.Parse(f.Arg(0))
	if err != nil {
		fail("invalid vehicle id %q", f.Arg(0))
		return subcommands.ExitUsageError
	}

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

	s, err := e.profit.GetProfitSummary(ctx, dealerID, vehicleID)
	if err != nil {
		fail("profit summary: %v", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "purchase price\t%s\t\n", s.PurchasePrice.StringFixed(2))
	fmt.Fprintf(w, "expenses (%d)\t%s\t\n", s.ExpenseCount, s.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "total cost\t%s\t\n", s.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "sale price\t%s\t\n", s.SalePrice.StringFixed(2))
	fmt.Fprintf(w, "gross profit\t%s\t\n", s.GrossProfit.StringFixed(2))
	fmt.Fprintf(w, "commissions (%d)\t%s\t\n", s.CommissionCount, s.TotalCommissions.StringFixed(2))
	fmt.Fprintf(w, "net profit\t%s\t\n", s.NetProfit.StringFixed(2))
	_ = w.Flush()
	return subcommands.ExitSuccess
}

type exportCmd struct {
	dealer string
	out    string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a vehicle's ledger workbook (xlsx)" }
func (*exportCmd) Usage() string {
	return `ledgerctl export [-dealer id] [-o file] <vehicle-id>
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dealer, "dealer", "", "dealer id (defaults to app.default_dealer_id)")
	f.StringVar(&c.out, "o", "", "output file (defaults to the generated workbook name)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	vehicleID, err := uuid.Parse(f.Arg(0))
	if err != nil {
		fail("invalid vehicle id %q", f.Arg(0))
		return subcommands.ExitUsageError
	}

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

	out := c.out
	if out == "" {
		out = e.export.FileName(vehicleID)
	}
	file, err := os.Create(filepath.Clean(out))
	if err != nil {
		fail("create %s: %v", out, err)
		return subcommands.ExitFailure
	}
	if err := e.export.ExportVehicleLedger(ctx, dealerID, vehicleID, file); err != nil {
		_ = file.Close()
		_ = os.Remove(out)
		fail("export: %v", err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fail("write %s: %v", out, err)
		return subcommands.ExitFailure
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}
