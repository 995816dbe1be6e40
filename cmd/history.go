package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/etnz/portfolio-analytics"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type historyCmd struct {
	start  string
	end    string
	period string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio value over time" }
func (*historyCmd) Usage() string {
	return `pva history -start <date> [-end <date>] [-period <period>]

  Revalues the portfolio at the end of every period between start and end,
  and displays the value and its change from one date to the next.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "first date of the history")
	f.StringVar(&c.end, "end", "today", "last date of the history")
	f.StringVar(&c.period, "period", "monthly", "step between two dates: daily, weekly, monthly, quarterly or yearly")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "-start is required")
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	dates := slices.Collect(date.Range{From: start, To: end}.Ends(period))
	if len(dates) == 0 {
		fmt.Fprintf(os.Stderr, "empty range %s to %s\n", start, end)
		return subcommands.ExitUsageError
	}

	cfg, err := portfolio.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	// Each date is priced on its own portfolio, revaluation mutates the reference data.
	entries := make([]renderer.HistoryEntry, len(dates))
	var name string
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, on := range dates {
		g.Go(func() error {
			p, err := cfg.Load(nil)
			if err != nil {
				return err
			}
			if err := p.SetPricingDate(on); err != nil {
				return err
			}
			if i == 0 {
				name = p.Name
			}
			entries[i] = renderer.NewHistoryEntry(p.Snapshot(), len(p.Diagnostics()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error computing history: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(name, entries))
	return subcommands.ExitSuccess
}
