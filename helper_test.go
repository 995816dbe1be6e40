package portfolio

import (
	"math"
	"testing"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/shopspring/decimal"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

func near(got, want, tol float64) bool { return math.Abs(got-want) <= tol }

const callID = "AAPL251219C00200000"

var pricingDate = date.New(2025, 6, 15)

// trade is a helper to write blotters in tests.
func trade(on date.Date, id string, quantity, cost float64) Trade {
	return Trade{Date: on, ID: id, Quantity: Q(quantity), CostPrice: decimal.NewFromFloat(cost)}
}

// newTestReference returns a EUR universe with a USD equity, a EUR fund, a
// EUR bond and a USD call on the equity, priced up to 2025-06-13.
func newTestReference(t *testing.T) *ReferenceData {
	t.Helper()
	ref := NewReferenceData("EUR")
	ref.SetFX("USD", "EURUSD")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(ref.AddEquity(EquityDef{ID: "AAPL", Currency: "USD"}))
	must(ref.AddFund(FundDef{ID: "WORLD", Currency: "EUR"}))
	must(ref.AddBond(BondDef{ID: "B30", Currency: "EUR", Maturity: date.New(2030, 6, 15), Coupon: 4}))
	must(ref.AddOption(OptionDef{ID: callID, Currency: "USD"}))

	last := date.New(2025, 6, 13)
	ref.AddPrice("AAPL", last, 200)
	ref.AddPrice("AAPL", date.New(2025, 6, 20), 999) // after the pricing date
	ref.AddPrice("EURUSD", last, 1.25)
	ref.AddPrice("B30", last, 100)
	ref.AddPrice("WORLD", last, 50)
	return ref
}

// newTestPortfolio returns the test universe with a ledger, priced on pricingDate.
//
//	AAPL   +10 @ 150 then +10 @ 250   20 held, cost 200 USD
//	WORLD  +100 @ 40 then -100 @ 45   closed
//	B30    +10 @ 99                   1000 face
//	call   +2 @ 10                    no market price
func newTestPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	p := New("test", newTestReference(t), nil)
	trades := []Trade{
		trade(date.New(2025, 1, 2), "AAPL", 10, 150),
		trade(date.New(2025, 2, 1), "AAPL", 10, 250),
		trade(date.New(2025, 1, 2), "WORLD", 100, 40),
		trade(date.New(2025, 3, 1), "WORLD", -100, 45),
		trade(date.New(2025, 1, 2), "B30", 10, 99),
		trade(date.New(2025, 1, 2), callID, 2, 10),
	}
	for _, tr := range trades {
		if err := p.Ledger.AddTrade(tr); err != nil {
			t.Fatal(err)
		}
	}
	for _, c := range []CashMovement{
		{Date: date.New(2025, 1, 1), Amount: EUR(10000)},
		{Date: date.New(2025, 1, 1), Amount: USD(5000)},
	} {
		if err := p.Ledger.AddCash(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.SetPricingDate(pricingDate); err != nil {
		t.Fatal(err)
	}
	return p
}
