package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/portfolio-analytics"
	md "github.com/nao1215/markdown"
)

// OptionsMarkdown renders the option book with its gamma matrices.
func OptionsMarkdown(o *portfolio.OptionBook) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Options on %s", o.On))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Net", "Value"},
		Rows: [][]string{
			{"Delta", num(o.NetDelta)},
			{"Gamma", num(o.NetGamma)},
			{"Vega", num(o.NetVega)},
			{"Theta", num(o.NetTheta)},
		},
	})

	doc.H2("Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Option", "Quantity", "Price", "Vol", "Tenor", "Delta", "Gamma Up", "Gamma Down", "Vega", "Theta"},
		Rows:   [][]string{},
	}
	for _, l := range o.Lines {
		id := l.ID
		if l.Stale {
			id += " (stale)"
		}
		table.Rows = append(table.Rows, []string{
			id,
			l.Quantity.String(),
			l.Price.String(),
			pct(l.Vol),
			fmt.Sprintf("%.2f", l.Tenor),
			num(l.Delta),
			num(l.GammaUp),
			num(l.GammaDown),
			num((l.VegaUp - l.VegaDown) / 2),
			num(l.Theta),
		})
	}
	doc.Table(table)

	if len(o.Gamma.Tenors) > 0 {
		doc.H2("Gamma Up")
		doc.Table(gammaTable(o.Gamma, o.Gamma.Up))
		doc.H2("Gamma Down")
		doc.Table(gammaTable(o.Gamma, o.Gamma.Down))
	}

	var s strings.Builder
	s.WriteString(doc.String())
	diagnostics(&s, o.Diagnostics)
	return s.String()
}

// gammaTable lays out a matrix with a row per moneyness bucket and a column per tenor.
func gammaTable(m portfolio.GammaMatrix, cells map[portfolio.GammaCell]float64) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Moneyness"},
		Rows:      [][]string{},
	}
	for _, tenor := range m.Tenors {
		table.Header = append(table.Header, fmt.Sprintf("%.2f", tenor))
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	for _, bucket := range portfolio.GammaBuckets {
		row := []string{bucket}
		for _, tenor := range m.Tenors {
			v, ok := cells[portfolio.GammaCell{Bucket: bucket, Tenor: tenor}]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, num(v))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
