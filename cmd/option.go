package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/portfolio-analytics/renderer"
	"github.com/google/subcommands"
)

type optionCmd struct {
	date  string
	spot  float64
	vol   float64
	price float64
}

func (*optionCmd) Name() string     { return "option" }
func (*optionCmd) Synopsis() string { return "display the price and greeks of one option" }
func (*optionCmd) Usage() string {
	return `pva option [-d <date>] [-spot <spot>] [-vol <vol> | -price <price>] <id>

  Displays the price and greeks of an option contract.
  -spot moves the underlying, greeks are stale unless -vol or -price is given too.
  -vol sets the volatility, -price solves the implied volatility of a market price.
`
}

func (c *optionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "today", "pricing date")
	f.Float64Var(&c.spot, "spot", 0, "underlying spot")
	f.Float64Var(&c.vol, "vol", 0, "volatility as a decimal, 0.2 for 20%")
	f.Float64Var(&c.price, "price", 0, "market price to imply the volatility from")
}

func (c *optionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "option id is required")
		return subcommands.ExitUsageError
	}
	if c.vol != 0 && c.price != 0 {
		fmt.Fprintln(os.Stderr, "-vol and -price are exclusive")
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
	code, ok := p.Reference.OptionCode(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown option %q\n", id)
		return subcommands.ExitFailure
	}
	o, ok := p.Reference.Option(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "option %q is expired on %s\n", id, on)
		return subcommands.ExitFailure
	}
	if c.spot != 0 {
		if err := o.SetSpot(c.spot); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting spot: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	switch {
	case c.vol != 0:
		o.SetVol(c.vol)
	case c.price != 0:
		if err := o.SetPrice(c.price); err != nil {
			fmt.Fprintf(os.Stderr, "Error implying volatility: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	printMarkdown(renderer.OptionMarkdown(code, o))
	return subcommands.ExitSuccess
}
