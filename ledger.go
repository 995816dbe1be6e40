package portfolio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
	"github.com/shopspring/decimal"
)

// Trade is a blotter record: a quantity of an instrument bought (positive)
// or sold (negative) at a cost price in the instrument currency.
// Bond quantities are face value / 100.
type Trade struct {
	Date      date.Date       `json:"date"`
	ID        string          `json:"id"`
	Quantity  Quantity        `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Account   string          `json:"account,omitempty"`
}

// CashMovement is a cash blotter record. A pure FX conversion is two
// movements, a debit and a credit.
type CashMovement struct {
	Date    date.Date
	Amount  Money
	Account string
}

// Ledger holds the trade and cash blotters. Records are immutable and
// only ever appended; positions and cash are derived for a pricing date
// by Rebuild.
type Ledger struct {
	ref    *ReferenceData
	trades []Trade
	cash   []CashMovement
}

// NewLedger returns an empty ledger reading prices and analytics from ref.
func NewLedger(ref *ReferenceData) *Ledger {
	return &Ledger{ref: ref}
}

// Reference returns the reference data the ledger reads from.
func (l *Ledger) Reference() *ReferenceData { return l.ref }

func compareDate(a, b date.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// AddTrade appends a trade. Records of the same day keep their insertion order.
func (l *Ledger) AddTrade(t Trade) error {
	if t.ID == "" || t.Date.IsZero() {
		return fmt.Errorf("trade %v: date and id are required: %w", t, diag.ErrInvalidInput)
	}
	if t.Quantity.IsZero() {
		return fmt.Errorf("trade %s on %s: zero quantity: %w", t.ID, t.Date, diag.ErrInvalidInput)
	}
	i, _ := slices.BinarySearchFunc(l.trades, t.Date, func(e Trade, d date.Date) int {
		// position after every trade of the same day.
		if c := compareDate(e.Date, d); c != 0 {
			return c
		}
		return -1
	})
	l.trades = slices.Insert(l.trades, i, t)
	return nil
}

// AddCash appends a cash movement.
func (l *Ledger) AddCash(c CashMovement) error {
	if c.Date.IsZero() || c.Amount.Currency() == "" {
		return fmt.Errorf("cash movement %v: date and currency are required: %w", c, diag.ErrInvalidInput)
	}
	i, _ := slices.BinarySearchFunc(l.cash, c.Date, func(e CashMovement, d date.Date) int {
		if r := compareDate(e.Date, d); r != 0 {
			return r
		}
		return -1
	})
	l.cash = slices.Insert(l.cash, i, c)
	return nil
}

// Trades returns an iterator over trades dated on or before on.
func (l *Ledger) Trades(on date.Date) iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range l.trades {
			if t.Date.After(on) {
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Cash returns an iterator over cash movements dated on or before on.
func (l *Ledger) Cash(on date.Date) iter.Seq[CashMovement] {
	return func(yield func(CashMovement) bool) {
		for _, c := range l.cash {
			if c.Date.After(on) {
				return
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Rebuild derives the snapshot of the portfolio on a pricing date.
//
// The reference data must already be priced on that date. Positions are
// the trades netted by instrument, marked at the reference price and
// converted to base currency. Instruments whose net quantity is zero are
// not positions, but their trades still move cash.
func (l *Ledger) Rebuild(on date.Date) (*Snapshot, error) {
	if l.ref.On() != on {
		return nil, fmt.Errorf("reference data is priced on %s, not %s: %w", l.ref.On(), on, diag.ErrInvalidInput)
	}
	base := l.ref.Base()
	s := &Snapshot{On: on, Base: base}

	type lot struct {
		quantity decimal.Decimal
		cost     decimal.Decimal // sum of quantity x cost price
	}
	lots := make(map[string]*lot)
	var ids []string
	cash := make(map[string]decimal.Decimal)

	for t := range l.Trades(on) {
		lt, ok := lots[t.ID]
		if !ok {
			lt = &lot{}
			lots[t.ID] = lt
			ids = append(ids, t.ID)
		}
		lt.quantity = lt.quantity.Add(t.Quantity.value)
		lt.cost = lt.cost.Add(t.Quantity.value.Mul(t.CostPrice))

		cur := l.currency(t.ID)
		cash[cur] = cash[cur].Sub(t.Quantity.value.Mul(t.CostPrice))
	}
	for c := range l.Cash(on) {
		cash[c.Amount.Currency()] = cash[c.Amount.Currency()].Add(c.Amount.value)
	}

	slices.Sort(ids)
	for _, id := range ids {
		lt := lots[id]
		if lt.quantity.IsZero() {
			continue
		}
		p := Position{ID: id, Quantity: Quantity{lt.quantity}}

		class, known := l.ref.AssetClass(id)
		p.AssetClass = class
		p.Currency = l.currency(id)
		if !known {
			s.Diagnostics.Add(diag.MissingPriceData, id, "unknown instrument, valued at 0")
		}

		price, ok := l.ref.Price(id)
		if !ok && known {
			s.Diagnostics.Add(diag.MissingPriceData, id, "no price on or before %s, using %v", on, price)
		}
		p.CostPrice = Money{value: lt.cost.Div(lt.quantity), cur: p.Currency}
		p.Price = M(price, p.Currency)
		p.FXRate = s.fxRate(l.ref, p.Currency)
		p.MTM = s.toBase(p.Price.Mul(p.Quantity), p.FXRate)
		s.Positions = append(s.Positions, p)
	}

	for _, cur := range sortedKeys(cash) {
		b := CashBalance{Currency: cur, Amount: Money{value: cash[cur], cur: cur}}
		b.FXRate = s.fxRate(l.ref, cur)
		b.MTM = s.toBase(b.Amount, b.FXRate)
		s.Cash = append(s.Cash, b)
	}

	s.breakdowns()
	return s, nil
}

// currency returns the instrument currency, the base currency for unknown instruments.
func (l *Ledger) currency(id string) string {
	if cur, ok := l.ref.Currency(id); ok {
		return cur
	}
	return l.ref.Base()
}
