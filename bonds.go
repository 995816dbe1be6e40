package portfolio

import (
	"cmp"
	"maps"
	"slices"

	"github.com/etnz/portfolio-analytics/bond"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

// BondLine is a bond position joined with its analytics.
type BondLine struct {
	Position
	Name     string
	Maturity date.Date
	Coupon   float64
	Yield    float64
	Spread   float64
	Duration float64
	DV01     float64
	Country  string
	Sector   string
	Rating   string
	Ranking  string

	flows []bond.CashFlow
}

// BondBook is the bond sub-portfolio.
type BondBook struct {
	On          date.Date
	Lines       []BondLine // sorted by maturity
	AvgYield    float64    // mtm weighted
	AvgDuration float64
	AvgSpread   float64
	Diagnostics diag.Log
}

// Bonds joins the bond positions of a snapshot with their analytics.
func (l *Ledger) Bonds(s *Snapshot) *BondBook {
	book := &BondBook{On: s.On}
	for _, p := range s.Positions {
		if p.AssetClass != ClassBond {
			continue
		}
		def, _ := l.ref.BondDef(p.ID)
		b, ok := l.ref.Bond(p.ID)
		if !ok {
			book.Diagnostics.Add(diag.InvalidInput, p.ID, "no analytics on %s, bond maturing on %s", s.On, def.Maturity)
			continue
		}
		book.Lines = append(book.Lines, BondLine{
			Position: p,
			Name:     def.Name,
			Maturity: def.Maturity,
			Coupon:   def.Coupon,
			Yield:    b.Yield,
			Spread:   b.Spread,
			Duration: b.Duration,
			DV01:     b.DV01,
			Country:  def.Country,
			Sector:   def.Sector,
			Rating:   def.Rating,
			Ranking:  def.Ranking,
			flows:    b.CashFlows(),
		})
	}
	slices.SortStableFunc(book.Lines, func(a, b BondLine) int {
		if c := compareDate(a.Maturity, b.Maturity); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var mtm, y, d, sp float64
	for _, line := range book.Lines {
		v := line.MTM.Float()
		mtm += v
		y += v * line.Yield
		d += v * line.Duration
		sp += v * line.Spread
	}
	if len(book.Lines) > 0 {
		if mtm == 0 {
			book.Diagnostics.Add(diag.DivisionByZero, "bonds", "total mtm is zero, averages set to 0")
		} else {
			book.AvgYield, book.AvgDuration, book.AvgSpread = y/mtm, d/mtm, sp/mtm
		}
	}
	return book
}

// ProjectedFlow is the bond cash received on one date.
type ProjectedFlow struct {
	Date       date.Date
	Gross      float64 // coupons and redemptions as scheduled
	Redemption float64 // principal repaid at maturity
	Net        float64 // Gross - Redemption
}

// CashProjection sums the scheduled flows of every line falling in
// (start, end], times the position quantity.
//
// Schedules carry the redemption in their final flow; the principal of
// bonds maturing in the window is reported apart and removed from Net so
// that it is not counted as income.
func (b *BondBook) CashProjection(start, end date.Date) []ProjectedFlow {
	window := date.Range{From: start, To: end}
	rows := make(map[date.Date]*ProjectedFlow)
	row := func(d date.Date) *ProjectedFlow {
		r, ok := rows[d]
		if !ok {
			r = &ProjectedFlow{Date: d}
			rows[d] = r
		}
		return r
	}
	for _, line := range b.Lines {
		q := line.Quantity.Float()
		for _, f := range line.flows {
			if window.ContainsOpen(f.Date) {
				row(f.Date).Gross += f.Amount * q
			}
		}
		if window.ContainsOpen(line.Maturity) {
			row(line.Maturity).Redemption += q * 100
		}
	}
	days := slices.SortedFunc(maps.Keys(rows), compareDate)
	flows := make([]ProjectedFlow, 0, len(days))
	for _, d := range days {
		r := rows[d]
		r.Net = r.Gross - r.Redemption
		flows = append(flows, *r)
	}
	return flows
}
