package portfolio

import (
	"cmp"
	"maps"
	"slices"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
	"github.com/shopspring/decimal"
)

// Position is the net holding of one instrument on a pricing date.
type Position struct {
	ID         string
	Quantity   Quantity
	CostPrice  Money // quantity weighted average, in the instrument currency
	Price      Money // in the instrument currency
	Currency   string
	FXRate     float64 // units of currency per unit of base currency
	MTM        Money   // in base currency
	AssetClass AssetClass
}

func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("quantity", p.Quantity)
	w.Append("costPrice", p.CostPrice.Decimal())
	w.Append("price", p.Price.Decimal())
	w.Append("currency", p.Currency)
	w.Append("fx", p.FXRate)
	w.Append("mtm", p.MTM)
	w.Append("assetClass", p.AssetClass)
	return w.MarshalJSON()
}

// CashBalance is the cash held in one currency.
type CashBalance struct {
	Currency string
	Amount   Money
	FXRate   float64
	MTM      Money // in base currency
}

// Breakdown is one row of a currency or asset class breakdown.
type Breakdown struct {
	Key    string
	Amount Money   // in base currency
	Pct    float64 // share of the total, 0.25 means 25%
}

// Snapshot is the state of the portfolio on a pricing date.
//
// It is a plain value computed by Ledger.Rebuild: nothing in it changes
// when the reference data is later moved to another date.
type Snapshot struct {
	On          date.Date
	Base        string
	Positions   []Position    // sorted by id
	Cash        []CashBalance // sorted by currency
	Currencies  []Breakdown   // by decreasing share
	Assets      []Breakdown   // by decreasing share, cash is its own bucket
	Diagnostics diag.Log
}

// Position returns the position of an instrument.
func (s *Snapshot) Position(id string) (Position, bool) {
	i, found := slices.BinarySearchFunc(s.Positions, id, func(p Position, id string) int { return cmp.Compare(p.ID, id) })
	if !found {
		return Position{}, false
	}
	return s.Positions[i], true
}

// TotalPositions returns the value of all positions.
func (s *Snapshot) TotalPositions() Money {
	total := M(0, s.Base)
	for _, p := range s.Positions {
		total = total.Add(p.MTM)
	}
	return total
}

// TotalCash returns the value of all cash balances.
func (s *Snapshot) TotalCash() Money {
	total := M(0, s.Base)
	for _, c := range s.Cash {
		total = total.Add(c.MTM)
	}
	return total
}

// Total returns the value of the portfolio.
func (s *Snapshot) Total() Money { return s.TotalPositions().Add(s.TotalCash()) }

// fxRate reads the rate of a currency and records a fallback.
func (s *Snapshot) fxRate(ref *ReferenceData, currency string) float64 {
	rate, ok := ref.FXRate(currency)
	if !ok {
		s.Diagnostics.Add(diag.MissingPriceData, currency, "no fx rate, using %v", rate)
	}
	return rate
}

// toBase converts an amount at a rate of currency per base.
func (s *Snapshot) toBase(m Money, rate float64) Money {
	if rate == 0 {
		s.Diagnostics.Add(diag.DivisionByZero, m.Currency(), "zero fx rate, valued at 0")
		return M(0, s.Base)
	}
	return m.In(s.Base, rate)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// breakdowns groups positions and cash by currency and by asset class.
func (s *Snapshot) breakdowns() {
	currencies := make(map[string]decimal.Decimal)
	assets := make(map[string]decimal.Decimal)
	for _, p := range s.Positions {
		currencies[p.Currency] = currencies[p.Currency].Add(p.MTM.value)
		assets[string(p.AssetClass)] = assets[string(p.AssetClass)].Add(p.MTM.value)
	}
	for _, c := range s.Cash {
		currencies[c.Currency] = currencies[c.Currency].Add(c.MTM.value)
		assets[string(ClassCash)] = assets[string(ClassCash)].Add(c.MTM.value)
	}
	s.Currencies = s.breakdown("currencies", currencies)
	s.Assets = s.breakdown("assets", assets)
}

// breakdown turns grouped amounts into rows with their share of the total.
// A zero total gives every row a zero share.
func (s *Snapshot) breakdown(name string, groups map[string]decimal.Decimal) []Breakdown {
	var total decimal.Decimal
	for _, k := range sortedKeys(groups) {
		total = total.Add(groups[k])
	}
	if len(groups) > 0 && total.IsZero() {
		s.Diagnostics.Add(diag.DivisionByZero, name, "total is zero, shares set to 0")
	}
	rows := make([]Breakdown, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		row := Breakdown{Key: k, Amount: Money{value: groups[k], cur: s.Base}}
		if !total.IsZero() {
			row.Pct = groups[k].Div(total).InexactFloat64()
		}
		rows = append(rows, row)
	}
	slices.SortStableFunc(rows, func(a, b Breakdown) int { return cmp.Compare(b.Pct, a.Pct) })
	return rows
}
