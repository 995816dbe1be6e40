// Package cmd implements the CLI application to revalue a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/portfolio-analytics"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/renderer"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&holdingCmd{}, "reports")
	c.Register(&bondsCmd{}, "reports")
	c.Register(&optionsCmd{}, "reports")
	c.Register(&cashflowCmd{}, "reports")
	c.Register(&curveCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&movementsCmd{}, "reports")

	c.Register(&bondCmd{}, "instruments")
	c.Register(&optionCmd{}, "instruments")

	c.Register(&positionsCmd{}, "export")
}

// Commands lists every subcommand, for completion.
var Commands = []subcommands.Command{
	&holdingCmd{},
	&bondsCmd{},
	&optionsCmd{},
	&cashflowCmd{},
	&curveCmd{},
	&historyCmd{},
	&movementsCmd{},
	&bondCmd{},
	&optionCmd{},
	&positionsCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "portfolio.yaml", "Path to the portfolio configuration file (YAML format)")
var Verbose = flag.Bool("v", false, "list every diagnostic")
var rawOutput = flag.Bool("raw", false, "print raw markdown instead of rendering it for the terminal")

// loadPortfolio loads the configured portfolio and prices it on a date.
func loadPortfolio(on date.Date) (*portfolio.Portfolio, error) {
	cfg, err := portfolio.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	p, err := cfg.Load(renderer.Markdown{})
	if err != nil {
		return nil, err
	}
	if err := p.SetPricingDate(on); err != nil {
		return nil, err
	}
	logDiagnostics(p)
	return p, nil
}

// logDiagnostics reports the fallbacks taken while pricing.
func logDiagnostics(p *portfolio.Portfolio) {
	d := p.Diagnostics()
	if len(d) == 0 {
		return
	}
	if !*Verbose {
		log.Printf("%s on %s: %d diagnostics, use -v to list them", p.Name, p.On(), len(d))
		return
	}
	for _, e := range d {
		log.Println(e.Error())
	}
}

// parseDate parses a date flag, "today" is accepted.
func parseDate(s string) (date.Date, error) {
	if s == "" || s == "today" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
