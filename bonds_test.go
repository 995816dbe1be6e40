package portfolio

import (
	"testing"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

func TestBondBook(t *testing.T) {
	p := newTestPortfolio(t)
	if err := p.Reference.AddBond(BondDef{ID: "B27", Currency: "EUR", Maturity: date.New(2027, 6, 15), Coupon: 2, Frequency: 12}); err != nil {
		t.Fatal(err)
	}
	p.Reference.AddPrice("B27", date.New(2025, 6, 13), 98)
	if err := p.Ledger.AddTrade(trade(date.New(2025, 1, 2), "B27", 30, 97)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPricingDate(pricingDate); err != nil {
		t.Fatal(err)
	}
	book, err := p.Bonds()
	if err != nil {
		t.Fatal(err)
	}

	if len(book.Lines) != 2 || book.Lines[0].ID != "B27" || book.Lines[1].ID != "B30" {
		t.Fatalf("Lines = %v, want B27 then B30 by maturity", book.Lines)
	}
	var mtm, yield, duration, spread float64
	for _, line := range book.Lines {
		b, _ := p.Reference.Bond(line.ID)
		if line.Yield != b.Yield || line.Duration != b.Duration || line.DV01 != b.DV01 {
			t.Errorf("%s analytics = %v %v %v, want the bond's", line.ID, line.Yield, line.Duration, line.DV01)
		}
		mtm += line.MTM.Float()
		yield += line.MTM.Float() * line.Yield
		duration += line.MTM.Float() * line.Duration
		spread += line.MTM.Float() * line.Spread
	}
	if !near(book.AvgYield, yield/mtm, 1e-12) {
		t.Errorf("AvgYield = %v, want %v", book.AvgYield, yield/mtm)
	}
	if !near(book.AvgDuration, duration/mtm, 1e-12) {
		t.Errorf("AvgDuration = %v, want %v", book.AvgDuration, duration/mtm)
	}
	if !near(book.AvgSpread, spread/mtm, 1e-12) {
		t.Errorf("AvgSpread = %v, want %v", book.AvgSpread, spread/mtm)
	}
	// the longer bond weighs 1000 out of 3940.
	if book.AvgDuration <= book.Lines[0].Duration || book.AvgDuration >= book.Lines[1].Duration {
		t.Errorf("AvgDuration = %v, want between %v and %v", book.AvgDuration, book.Lines[0].Duration, book.Lines[1].Duration)
	}
}

func TestBondBook_Single(t *testing.T) {
	book, err := newTestPortfolio(t).Bonds()
	if err != nil {
		t.Fatal(err)
	}
	if !near(book.AvgYield, 0.04, 1e-3) {
		t.Errorf("AvgYield = %v, want about 0.04 for a par bond", book.AvgYield)
	}
	if !near(book.AvgDuration, 4.58, 0.01) {
		t.Errorf("AvgDuration = %v, want 4.58", book.AvgDuration)
	}
	line := book.Lines[0]
	if line.Coupon != 4 || line.Maturity != date.New(2030, 6, 15) {
		t.Errorf("line = %+v, want the B30 definition", line)
	}
}

func TestBondBook_ZeroMTM(t *testing.T) {
	ref := newTestReference(t)
	ref.AddPrice("B30", date.New(2025, 6, 14), 0)
	l := NewLedger(ref)
	l.AddTrade(trade(date.New(2025, 1, 2), "B30", 10, 99))
	ref.SetPricingDate(pricingDate)
	s, err := l.Rebuild(pricingDate)
	if err != nil {
		t.Fatal(err)
	}
	book := l.Bonds(s)
	if book.AvgYield != 0 || !book.Diagnostics.Has(diag.DivisionByZero) {
		t.Errorf("AvgYield = %v diagnostics %v, want 0 and a DivisionByZero", book.AvgYield, book.Diagnostics)
	}
}

func TestCashProjection(t *testing.T) {
	book, err := newTestPortfolio(t).Bonds()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("coupons only", func(t *testing.T) {
		got := book.CashProjection(pricingDate, date.New(2026, 6, 15))
		want := []ProjectedFlow{
			{Date: date.New(2025, 12, 15), Gross: 20, Net: 20},
			{Date: date.New(2026, 6, 15), Gross: 20, Net: 20},
		}
		if len(got) != len(want) {
			t.Fatalf("CashProjection() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("CashProjection()[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("redemption", func(t *testing.T) {
		got := book.CashProjection(date.New(2029, 12, 15), date.New(2030, 6, 15))
		want := ProjectedFlow{Date: date.New(2030, 6, 15), Gross: 1020, Redemption: 1000, Net: 20}
		if len(got) != 1 || got[0] != want {
			t.Errorf("CashProjection() = %+v, want [%+v]", got, want)
		}
	})

	t.Run("window is open at start", func(t *testing.T) {
		got := book.CashProjection(date.New(2025, 12, 15), date.New(2026, 1, 15))
		if len(got) != 0 {
			t.Errorf("CashProjection() = %+v, want no flow", got)
		}
	})
}
