package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/portfolio-analytics/curve"
	md "github.com/nao1215/markdown"
)

// CurveMarkdown renders the nodes of a zero curve.
func CurveMarkdown(z *curve.ZeroCurve) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Zero curve on %s", z.On))
	if z.Len() == 0 {
		doc.PlainText("No curve quotes: every discount factor is 1.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Days", "Zero Rate", "Discount Factor"},
		Rows:      [][]string{},
	}
	for _, p := range z.Points() {
		table.Rows = append(table.Rows, []string{p.Date.String(), fmt.Sprint(p.Days), fmt.Sprintf("%.4f%%", 100*p.Rate), fmt.Sprintf("%.6f", p.DF)})
	}
	doc.Table(table)
	return doc.String()
}
