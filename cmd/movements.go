package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/portfolio-analytics/renderer"
	"github.com/google/subcommands"
)

type movementsCmd struct {
	start string
	end   string
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "summarize the trades of a period by asset class" }
func (*movementsCmd) Usage() string {
	return `pva movements -start <date> [-end <date>]

  Groups the trades dated after start and up to end by asset class, and
  compares their cost with their value on end.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "trades on that day are excluded")
	f.StringVar(&c.end, "end", "today", "valuation date")
}

func (c *movementsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "-start is required")
		return subcommands.ExitUsageError
	}
	start, err := parseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := loadPortfolio(end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	movements, log := p.Performance.Movements(start, end)
	printMarkdown(renderer.MovementsMarkdown(start, end, movements, log))
	return subcommands.ExitSuccess
}
