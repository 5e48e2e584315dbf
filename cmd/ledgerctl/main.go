// Command ledgerctl operates on the dealer ledger database directly: outbox
// inspection and recovery, profit summaries and workbook exports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&outboxStatsCmd{}, "outbox")
	commander.Register(&outboxDeadCmd{}, "outbox")
	commander.Register(&outboxRetryCmd{}, "outbox")
	commander.Register(&bankImportCmd{}, "ledger")
	commander.Register(&profitCmd{}, "ledger")
	commander.Register(&exportCmd{}, "ledger")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
