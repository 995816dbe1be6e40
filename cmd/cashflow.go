package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/portfolio-analytics/renderer"
	"github.com/google/subcommands"
)

type cashflowCmd struct {
	start string
	end   string
}

func (*cashflowCmd) Name() string     { return "cashflow" }
func (*cashflowCmd) Synopsis() string { return "project the coupons and redemptions of the bond book" }
func (*cashflowCmd) Usage() string {
	return `pva cashflow [-start <date>] -end <date>

  Lists the coupons and redemptions paid after start and up to end by the
  bonds held on start.
`
}

func (c *cashflowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "today", "pricing date, flows paid on that day are excluded")
	f.StringVar(&c.end, "end", "", "last date of the projection")
}

func (c *cashflowCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := parseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.end == "" {
		c.end = start.AddMonth(12).String()
	}
	end, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := loadPortfolio(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	flows, err := p.CashProjection(start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting cash flows: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CashflowMarkdown(start, end, flows))
	return subcommands.ExitSuccess
}
