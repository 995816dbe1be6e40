package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/portfolio-analytics"
	"github.com/google/subcommands"
)

type positionsCmd struct {
	date string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "export the valued positions as JSON lines" }
func (*positionsCmd) Usage() string {
	return `pva positions [-d <date>]

  Writes one JSON object per position to stdout.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "today", "pricing date")
}

func (c *positionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := loadPortfolio(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := portfolio.EncodePositions(os.Stdout, p.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing positions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
