package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/portfolio-analytics"
	"github.com/google/subcommands"
)

// reportCmd is the shape of the commands printing one report of the portfolio.
type reportCmd struct {
	date string
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "today", "pricing date of the report")
}

func (c *reportCmd) execute(kind portfolio.ReportKind) subcommands.ExitStatus {
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
	report, err := p.Report(kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s report: %v\n", kind, err)
		return subcommands.ExitFailure
	}
	printMarkdown(report)
	return subcommands.ExitSuccess
}

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct{ reportCmd }

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display positions, cash and breakdowns on a date" }
func (*holdingCmd) Usage() string {
	return `pva holding [-d <date>]

  Displays the positions and cash of the portfolio valued in base currency,
  with the currency and asset class breakdowns.
`
}

func (c *holdingCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(portfolio.HoldingReport)
}

type bondsCmd struct{ reportCmd }

func (*bondsCmd) Name() string     { return "bonds" }
func (*bondsCmd) Synopsis() string { return "display the bond book with yields, spreads and durations" }
func (*bondsCmd) Usage() string {
	return `pva bonds [-d <date>]

  Displays every bond position with its analytics, sorted by maturity, and
  the market value weighted yield, spread and duration.
`
}

func (c *bondsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(portfolio.BondsReport)
}

type optionsCmd struct{ reportCmd }

func (*optionsCmd) Name() string     { return "options" }
func (*optionsCmd) Synopsis() string { return "display the option book with greeks and gamma matrices" }
func (*optionsCmd) Usage() string {
	return `pva options [-d <date>]

  Displays every option position with its greeks in base currency, the net
  greeks and the gamma up and gamma down matrices by moneyness and tenor.
`
}

func (c *optionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(portfolio.OptionsReport)
}

type curveCmd struct{ reportCmd }

func (*curveCmd) Name() string     { return "curve" }
func (*curveCmd) Synopsis() string { return "display the bootstrapped zero curve" }
func (*curveCmd) Usage() string {
	return `pva curve [-d <date>]

  Displays the zero rates and discount factors of the curve built from the
  deposit and government quotes nearest to the date.
`
}

func (c *curveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(portfolio.CurveReport)
}
