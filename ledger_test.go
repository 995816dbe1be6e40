package portfolio

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

func TestLedger_AddTrade(t *testing.T) {
	l := NewLedger(NewReferenceData("EUR"))
	day := date.New(2025, 1, 2)
	for _, tr := range []Trade{
		trade(day.Add(1), "C", 1, 1),
		trade(day, "A", 1, 1),
		trade(day, "B", 1, 1),
	} {
		if err := l.AddTrade(tr); err != nil {
			t.Fatalf("AddTrade(%s) error = %v", tr.ID, err)
		}
	}
	var got []string
	for tr := range l.Trades(day.Add(1)) {
		got = append(got, tr.ID)
	}
	if want := []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("Trades() = %v, want %v", got, want)
	}

	got = got[:0]
	for tr := range l.Trades(day) {
		got = append(got, tr.ID)
	}
	if want := []string{"A", "B"}; !slices.Equal(got, want) {
		t.Errorf("Trades(%s) = %v, want %v", day, got, want)
	}
}

func TestLedger_AddTradeInvalid(t *testing.T) {
	l := NewLedger(NewReferenceData("EUR"))
	testCases := []struct {
		name  string
		trade Trade
	}{
		{"no id", trade(date.New(2025, 1, 2), "", 1, 1)},
		{"no date", trade(date.Date{}, "A", 1, 1)},
		{"zero quantity", trade(date.New(2025, 1, 2), "A", 0, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := l.AddTrade(tc.trade); !errors.Is(err, diag.ErrInvalidInput) {
				t.Errorf("AddTrade() error = %v, want ErrInvalidInput", err)
			}
		})
	}
	if err := l.AddCash(CashMovement{Date: date.New(2025, 1, 2), Amount: M(1, "")}); !errors.Is(err, diag.ErrInvalidInput) {
		t.Errorf("AddCash() without currency error = %v, want ErrInvalidInput", err)
	}
}

func TestLedger_RebuildWrongDate(t *testing.T) {
	p := newTestPortfolio(t)
	_, err := p.Ledger.Rebuild(pricingDate.Add(1))
	if !errors.Is(err, diag.ErrInvalidInput) {
		t.Errorf("Rebuild() on another date error = %v, want ErrInvalidInput", err)
	}
}

func TestLedger_Rebuild(t *testing.T) {
	s := newTestPortfolio(t).Snapshot()

	t.Run("positions", func(t *testing.T) {
		testCases := []struct {
			id       string
			quantity float64
			cost     Money
			price    Money
			mtm      Money
			class    AssetClass
		}{
			{"AAPL", 20, USD(200), USD(200), EUR(3200), ClassEquity},
			{callID, 2, USD(10), USD(1), EUR(1.6), ClassOption},
			{"B30", 10, EUR(99), EUR(100), EUR(1000), ClassBond},
		}
		if len(s.Positions) != len(testCases) {
			t.Fatalf("got %d positions, want %d", len(s.Positions), len(testCases))
		}
		for i, tc := range testCases {
			p := s.Positions[i]
			if p.ID != tc.id {
				t.Errorf("Positions[%d].ID = %q, want %q", i, p.ID, tc.id)
				continue
			}
			if !p.Quantity.Equal(Q(tc.quantity)) {
				t.Errorf("%s quantity = %v, want %v", tc.id, p.Quantity, tc.quantity)
			}
			if !p.CostPrice.Equal(tc.cost) {
				t.Errorf("%s cost price = %v, want %v", tc.id, p.CostPrice, tc.cost)
			}
			if !p.Price.Equal(tc.price) {
				t.Errorf("%s price = %v, want %v", tc.id, p.Price, tc.price)
			}
			if !p.MTM.Equal(tc.mtm) {
				t.Errorf("%s mtm = %v, want %v", tc.id, p.MTM, tc.mtm)
			}
			if p.AssetClass != tc.class {
				t.Errorf("%s asset class = %q, want %q", tc.id, p.AssetClass, tc.class)
			}
		}
	})

	t.Run("closed positions", func(t *testing.T) {
		if p, ok := s.Position("WORLD"); ok {
			t.Errorf("Position(WORLD) = %v, want no position once sold out", p)
		}
	})

	t.Run("cash", func(t *testing.T) {
		want := []CashBalance{
			// 10000 - 100x40 + 100x45 - 10x99
			{Currency: "EUR", Amount: EUR(9510), FXRate: 1, MTM: EUR(9510)},
			// 5000 - 10x150 - 10x250 - 2x10
			{Currency: "USD", Amount: USD(980), FXRate: 1.25, MTM: EUR(784)},
		}
		if len(s.Cash) != len(want) {
			t.Fatalf("Cash = %v, want %v", s.Cash, want)
		}
		for i, w := range want {
			got := s.Cash[i]
			if got.Currency != w.Currency || !got.Amount.Equal(w.Amount) || got.FXRate != w.FXRate || !got.MTM.Equal(w.MTM) {
				t.Errorf("Cash[%d] = %+v, want %+v", i, got, w)
			}
		}
	})

	t.Run("total", func(t *testing.T) {
		if got, want := s.Total(), EUR(14495.6); !got.Equal(want) {
			t.Errorf("Total() = %v, want %v", got, want)
		}
	})

	t.Run("diagnostics", func(t *testing.T) {
		// only the call has no price.
		if got := s.Diagnostics.Count(diag.MissingPriceData); got != 1 {
			t.Errorf("MissingPriceData count = %d, want 1: %v", got, s.Diagnostics)
		}
	})
}

func TestLedger_RebuildDeterministic(t *testing.T) {
	p := newTestPortfolio(t)
	s1, err := p.Ledger.Rebuild(pricingDate)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := p.Ledger.Rebuild(pricingDate)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("Rebuild() is not deterministic:\n%+v\n%+v", s1, s2)
	}
}

func TestLedger_RebuildUnknownInstrument(t *testing.T) {
	ref := NewReferenceData("EUR")
	l := NewLedger(ref)
	if err := l.AddTrade(trade(date.New(2025, 1, 2), "XYZ", 5, 10)); err != nil {
		t.Fatal(err)
	}
	ref.SetPricingDate(pricingDate)
	s, err := l.Rebuild(pricingDate)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := s.Position("XYZ")
	if !ok {
		t.Fatal("Position(XYZ) not found")
	}
	if p.AssetClass != ClassUnknown || p.Currency != "EUR" || !p.MTM.IsZero() {
		t.Errorf("Position(XYZ) = %+v, want an unknown EUR position valued at 0", p)
	}
	if !s.Diagnostics.Has(diag.MissingPriceData) {
		t.Errorf("Diagnostics = %v, want a MissingPriceData", s.Diagnostics)
	}
	if got, want := s.TotalCash(), EUR(-50); !got.Equal(want) {
		t.Errorf("TotalCash() = %v, want %v", got, want)
	}
}
