package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/portfolio-analytics"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
	md "github.com/nao1215/markdown"
)

// MovementsMarkdown renders the trades of a window grouped by asset class.
func MovementsMarkdown(start, end date.Date, movements []portfolio.Movement, log diag.Log) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Movements from %s to %s", start, end))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Asset Class", "Trades", "Cost", "Market Value", "Change", "Change %"},
		Rows:      [][]string{},
	}
	for _, m := range movements {
		table.Rows = append(table.Rows, []string{
			string(m.AssetClass),
			fmt.Sprint(m.Trades),
			m.Cost.String(),
			m.MTM.String(),
			m.Change().SignedString(),
			m.Percent().SignedString(),
		})
	}
	doc.Table(table)

	var s strings.Builder
	s.WriteString(doc.String())
	diagnostics(&s, log)
	return s.String()
}
