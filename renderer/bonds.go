package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/portfolio-analytics"
	"github.com/etnz/portfolio-analytics/date"
	md "github.com/nao1215/markdown"
)

// BondsMarkdown renders the bond book. Yields are in percent, spreads in basis points.
func BondsMarkdown(b *portfolio.BondBook) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Bonds on %s", b.On))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Average", "Value"},
		Rows: [][]string{
			{"Yield", pct(b.AvgYield)},
			{"Spread (bp)", bp(b.AvgSpread)},
			{"Duration", fmt.Sprintf("%.2f", b.AvgDuration)},
		},
	})

	doc.H2("Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Bond", "Maturity", "Coupon", "Face", "Price", "Market Value", "Yield", "Spread (bp)", "Duration", "DV01", "Rating"},
		Rows:   [][]string{},
	}
	for _, l := range b.Lines {
		table.Rows = append(table.Rows, []string{
			l.ID,
			l.Maturity.String(),
			fmt.Sprintf("%.3f", l.Coupon),
			num(100 * l.Quantity.Float()),
			l.Price.String(),
			l.MTM.String(),
			pct(l.Yield),
			bp(l.Spread),
			fmt.Sprintf("%.2f", l.Duration),
			fmt.Sprintf("%.2f", l.DV01),
			l.Rating,
		})
	}
	doc.Table(table)

	var s strings.Builder
	s.WriteString(doc.String())
	diagnostics(&s, b.Diagnostics)
	return s.String()
}

// CashflowMarkdown renders a cash projection.
func CashflowMarkdown(start, end date.Date, flows []portfolio.ProjectedFlow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Bond cash flows from %s to %s", start, end))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Gross", "Redemption", "Net"},
		Rows:      [][]string{},
	}
	var gross, redemption, net float64
	for _, f := range flows {
		table.Rows = append(table.Rows, []string{f.Date.String(), num(f.Gross), num(f.Redemption), num(f.Net)})
		gross += f.Gross
		redemption += f.Redemption
		net += f.Net
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(num(gross)), md.Bold(num(redemption)), md.Bold(num(net))})
	doc.Table(table)
	return doc.String()
}
