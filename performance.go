package portfolio

import (
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

// Movement sums the trades of one asset class over a window.
type Movement struct {
	AssetClass AssetClass
	Trades     int
	Cost       Money // traded amount at cost, in base currency
	MTM        Money // the same quantities at the current prices, in base currency
}

// Change returns the value created by the trades since they were made.
func (m Movement) Change() Money { return m.MTM.Sub(m.Cost) }

// Percent returns Change relative to Cost.
func (m Movement) Percent() Percent {
	if m.Cost.IsZero() {
		return 0
	}
	return Percent(100 * m.Change().Float() / m.Cost.Abs().Float())
}

// Performance reports on trades between two dates.
type Performance struct {
	ledger *Ledger
}

// NewPerformance returns the performance view of a ledger.
func NewPerformance(l *Ledger) *Performance { return &Performance{ledger: l} }

// Movements groups the trades dated in (start, end] by asset class.
//
// Trades are valued at the prices of the current pricing date of the
// reference data, which is usually end.
func (p *Performance) Movements(start, end date.Date) ([]Movement, diag.Log) {
	var log diag.Log
	ref := p.ledger.ref
	base := ref.Base()
	groups := make(map[string]*Movement)
	for t := range p.ledger.Trades(end) {
		if !t.Date.After(start) {
			continue
		}
		class, _ := ref.AssetClass(t.ID)
		m, ok := groups[string(class)]
		if !ok {
			m = &Movement{AssetClass: class, Cost: M(0, base), MTM: M(0, base)}
			groups[string(class)] = m
		}
		cur := p.ledger.currency(t.ID)
		rate, ok := ref.FXRate(cur)
		if !ok {
			log.Add(diag.MissingPriceData, cur, "no fx rate, using %v", rate)
		}
		if rate == 0 {
			log.Add(diag.DivisionByZero, t.ID, "zero fx rate, trade on %s ignored", t.Date)
			continue
		}
		price, ok := ref.Price(t.ID)
		if !ok {
			log.Add(diag.MissingPriceData, t.ID, "no price, using %v", price)
		}
		m.Trades++
		m.Cost = m.Cost.Add(Money{value: t.Quantity.value.Mul(t.CostPrice), cur: cur}.In(base, rate))
		m.MTM = m.MTM.Add(M(price, cur).Mul(t.Quantity).In(base, rate))
	}
	movements := make([]Movement, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		movements = append(movements, *groups[k])
	}
	return movements, log
}
