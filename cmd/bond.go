package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/portfolio-analytics/renderer"
	"github.com/google/subcommands"
)

type bondCmd struct {
	date  string
	price float64
}

func (*bondCmd) Name() string     { return "bond" }
func (*bondCmd) Synopsis() string { return "display the analytics and flows of one bond" }
func (*bondCmd) Usage() string {
	return `pva bond [-d <date>] [-price <clean price>] <id>

  Displays yield, spread, duration and DV01 of a bond with its remaining
  cash flows. With -price, the bond is repriced at that clean price first.
`
}

func (c *bondCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "today", "pricing date")
	f.Float64Var(&c.price, "price", 0, "clean price per 100 face to reprice the bond at")
}

func (c *bondCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "bond id is required")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
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
	def, ok := p.Reference.BondDef(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown bond %q\n", id)
		return subcommands.ExitFailure
	}
	b, ok := p.Reference.Bond(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "bond %q is not alive on %s\n", id, on)
		return subcommands.ExitFailure
	}
	if c.price != 0 {
		if err := b.Reprice(c.price); err != nil {
			fmt.Fprintf(os.Stderr, "Error repricing %q: %v\n", id, err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.BondMarkdown(def, b))
	return subcommands.ExitSuccess
}
