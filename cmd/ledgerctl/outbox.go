package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	eventapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/event"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type outboxStatsCmd struct {
	asJSON bool
}

func (*outboxStatsCmd) Name() string     { return "outbox-stats" }
func (*outboxStatsCmd) Synopsis() string { return "count mirror outbox entries by status" }
func (*outboxStatsCmd) Usage() string {
	return `ledgerctl outbox-stats [-json]
`
}

func (c *outboxStatsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print the counts as JSON")
}

func (c *outboxStatsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	stats, err := e.outbox.GetStats(ctx)
	if err != nil {
		fail("read outbox stats: %v", err)
		return subcommands.ExitFailure
	}
	if c.asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(stats)
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "pending\t%d\n", stats.Pending)
	fmt.Fprintf(w, "processing\t%d\n", stats.Processing)
	fmt.Fprintf(w, "sent\t%d\n", stats.Sent)
	fmt.Fprintf(w, "failed\t%d\n", stats.Failed)
	fmt.Fprintf(w, "dead\t%d\n", stats.Dead)
	fmt.Fprintf(w, "total\t%d\n", stats.Total)
	_ = w.Flush()
	return subcommands.ExitSuccess
}

type outboxDeadCmd struct {
	page     int
	pageSize int
}

func (*outboxDeadCmd) Name() string     { return "outbox-dead" }
func (*outboxDeadCmd) Synopsis() string { return "list mirror postings that exhausted their retries" }
func (*outboxDeadCmd) Usage() string {
	return `ledgerctl outbox-dead [-page n] [-size n]
`
}

func (c *outboxDeadCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "page", 1, "page number")
	f.IntVar(&c.pageSize, "size", 20, "entries per page (max 100)")
}

func (c *outboxDeadCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	result, err := e.outbox.GetDeadLetterEntries(ctx, eventapp.OutboxFilter{Page: c.page, PageSize: c.pageSize})
	if err != nil {
		fail("list dead entries: %v", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tAGGREGATE\tRETRIES\tLAST ERROR")
	for _, entry := range result.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", entry.ID, entry.EventType, entry.AggregateID, entry.RetryCount, entry.LastError)
	}
	_ = w.Flush()
	fmt.Printf("page %d of %d (%d dead)\n", result.Page, result.TotalPages, result.Total)
	return subcommands.ExitSuccess
}

type outboxRetryCmd struct {
	all   bool
	drain bool
}

func (*outboxRetryCmd) Name() string     { return "outbox-retry" }
func (*outboxRetryCmd) Synopsis() string { return "requeue dead mirror postings" }
func (*outboxRetryCmd) Usage() string {
	return `ledgerctl outbox-retry [-drain] <entry-id>
ledgerctl outbox-retry -all [-drain]

  Moves dead entries back to pending. With -drain the pending queue is
  processed immediately instead of waiting for the server's poller.
`
}

func (c *outboxRetryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "requeue every dead entry")
	f.BoolVar(&c.drain, "drain", false, "process pending entries after requeueing")
}

func (c *outboxRetryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.all && f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	if c.all {
		n, err := e.outbox.RetryAllDeadEntries(ctx)
		if err != nil {
			fail("requeue dead entries: %v", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("requeued %d entries\n", n)
	} else {
		id, err := uuid.Parse(f.Arg(0))
		if err != nil {
			fail("invalid entry id %q", f.Arg(0))
			return subcommands.ExitUsageError
		}
		entry, err := e.outbox.RetryDeadEntry(ctx, id)
		if err != nil {
			fail("requeue %s: %v", id, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("requeued %s (%s)\n", entry.ID, entry.EventType)
	}

	if !c.drain {
		return subcommands.ExitSuccess
	}
	total := 0
	for {
		n, err := e.processor.ProcessBatch(ctx)
		if err != nil {
			fail("drain outbox: %v", err)
			return subcommands.ExitFailure
		}
		if n == 0 {
			break
		}
		total += n
	}
	fmt.Printf("processed %d entries\n", total)
	return subcommands.ExitSuccess
}
