package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/portfolio-analytics"
	"github.com/etnz/portfolio-analytics/bond"
	"github.com/etnz/portfolio-analytics/option"
	md "github.com/nao1215/markdown"
)

// BondMarkdown renders the analytics and the remaining flows of one bond.
func BondMarkdown(def portfolio.BondDef, b *bond.Bond) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := def.ID
	if def.Name != "" {
		title += " " + def.Name
	}
	doc.H1(title)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Field", "Value"},
		Rows: [][]string{
			{"Pricing date", b.On.String()},
			{"Maturity", b.Maturity.String()},
			{"Coupon", fmt.Sprintf("%.3f every %d months", b.Coupon, b.Frequency)},
			{"Clean price", fmt.Sprintf("%.4f", b.CleanPrice)},
			{"Accrued", fmt.Sprintf("%.4f", b.Accrued)},
			{"Dirty price", fmt.Sprintf("%.4f", b.DirtyPrice)},
			{"Yield", pct(b.Yield)},
			{"Spread (bp)", bp(b.Spread)},
			{"Duration", fmt.Sprintf("%.4f", b.Duration)},
			{"DV01", fmt.Sprintf("%.4f", b.DV01)},
		},
	})

	doc.H2("Cash flows")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Days", "Amount"},
		Rows:      [][]string{},
	}
	for _, f := range b.CashFlows() {
		table.Rows = append(table.Rows, []string{f.Date.String(), fmt.Sprint(f.Days), fmt.Sprintf("%.4f", f.Amount)})
	}
	doc.Table(table)

	var s strings.Builder
	s.WriteString(doc.String())
	diagnostics(&s, b.Diagnostics())
	return s.String()
}

// OptionMarkdown renders the price and greeks of one contract.
func OptionMarkdown(code option.Code, c *option.Contract) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(code.String())
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Field", "Value"},
		Rows: [][]string{
			{"Underlying", code.Underlying},
			{"Right", c.Right.String()},
			{"Expiry", code.Expiry.String()},
			{"Tenor", fmt.Sprintf("%.4f", c.Tenor)},
			{"Spot", fmt.Sprintf("%.4f", c.Spot)},
			{"Strike", fmt.Sprintf("%.4f", c.Strike)},
			{"Vol", pct(c.Vol)},
			{"Price", fmt.Sprintf("%.4f", c.Price)},
			{"Delta", fmt.Sprintf("%.4f", c.Delta)},
			{"Gamma Up", fmt.Sprintf("%.4f", c.GammaUp)},
			{"Gamma Down", fmt.Sprintf("%.4f", c.GammaDown)},
			{"Vega Up", fmt.Sprintf("%.4f", c.VegaUp)},
			{"Vega Down", fmt.Sprintf("%.4f", c.VegaDown)},
			{"Theta", fmt.Sprintf("%.4f", c.Theta)},
		},
	})

	var s strings.Builder
	s.WriteString(doc.String())
	diagnostics(&s, c.Diagnostics())
	return s.String()
}
