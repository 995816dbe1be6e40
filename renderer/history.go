package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/portfolio-analytics"
	"github.com/etnz/portfolio-analytics/date"
	md "github.com/nao1215/markdown"
)

// HistoryEntry is the valuation of a portfolio on one date.
type HistoryEntry struct {
	Date        date.Date
	Positions   portfolio.Money
	Cash        portfolio.Money
	Total       portfolio.Money
	Diagnostics int
}

// NewHistoryEntry summarizes a snapshot.
func NewHistoryEntry(s *portfolio.Snapshot, diagnostics int) HistoryEntry {
	return HistoryEntry{
		Date:        s.On,
		Positions:   s.TotalPositions(),
		Cash:        s.TotalCash(),
		Total:       s.Total(),
		Diagnostics: diagnostics,
	}
}

// HistoryMarkdown renders the valuations of a portfolio over several dates.
func HistoryMarkdown(name string, entries []HistoryEntry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", name))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Positions", "Cash", "Value", "Change", "Diagnostics"},
		Rows:   [][]string{},
	}
	for i, e := range entries {
		change := "-"
		if i > 0 {
			change = e.Total.Sub(entries[i-1].Total).SignedString()
		}
		table.Rows = append(table.Rows, []string{
			e.Date.String(),
			e.Positions.String(),
			e.Cash.String(),
			e.Total.String(),
			change,
			fmt.Sprint(e.Diagnostics),
		})
	}
	doc.Table(table)
	return doc.String()
}
