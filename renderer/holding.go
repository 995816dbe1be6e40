package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/portfolio-analytics"
	md "github.com/nao1215/markdown"
)

// HoldingMarkdown renders a snapshot: positions, cash and breakdowns.
func HoldingMarkdown(s *portfolio.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holding on %s", s.On))
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", s.Total()))

	doc.H2("Positions")
	positions := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Instrument", "Class", "Quantity", "Cost", "Price", "FX", "Market Value"},
		Rows:   [][]string{},
	}
	for _, p := range s.Positions {
		positions.Rows = append(positions.Rows, []string{
			p.ID,
			string(p.AssetClass),
			p.Quantity.String(),
			p.CostPrice.String(),
			p.Price.String(),
			fmt.Sprintf("%.4f", p.FXRate),
			p.MTM.String(),
		})
	}
	positions.Rows = append(positions.Rows, []string{md.Bold("Total"), "", "", "", "", "", md.Bold(s.TotalPositions().String())})
	doc.Table(positions)

	doc.H2("Cash")
	cash := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Currency", "Balance", "FX", "Market Value"},
		Rows:      [][]string{},
	}
	for _, c := range s.Cash {
		cash.Rows = append(cash.Rows, []string{c.Currency, c.Amount.String(), fmt.Sprintf("%.4f", c.FXRate), c.MTM.String()})
	}
	cash.Rows = append(cash.Rows, []string{md.Bold("Total"), "", "", md.Bold(s.TotalCash().String())})
	doc.Table(cash)

	doc.H2("Currencies")
	doc.Table(breakdownTable("Currency", s.Currencies))
	doc.H2("Asset Classes")
	doc.Table(breakdownTable("Asset Class", s.Assets))

	var b strings.Builder
	b.WriteString(doc.String())
	diagnostics(&b, s.Diagnostics)
	return b.String()
}

func breakdownTable(key string, rows []portfolio.Breakdown) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{key, "Market Value", "Share"},
		Rows:      [][]string{},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Key, r.Amount.String(), pct(r.Pct)})
	}
	return table
}
