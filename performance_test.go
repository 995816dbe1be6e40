package portfolio

import (
	"testing"

	"github.com/etnz/portfolio-analytics/date"
)

func TestPerformance_Movements(t *testing.T) {
	p := newTestPortfolio(t)
	got, log := p.Performance.Movements(date.New(2025, 1, 15), pricingDate)
	if len(log) != 0 {
		t.Errorf("Movements() diagnostics = %v", log)
	}
	want := []Movement{
		// +10 AAPL at 250 USD, now 200 USD
		{AssetClass: ClassEquity, Trades: 1, Cost: EUR(2000), MTM: EUR(1600)},
		// -100 WORLD at 45, now 50
		{AssetClass: ClassFund, Trades: 1, Cost: EUR(-4500), MTM: EUR(-5000)},
	}
	if len(got) != len(want) {
		t.Fatalf("Movements() = %+v, want %+v", got, want)
	}
	for i, w := range want {
		g := got[i]
		if g.AssetClass != w.AssetClass || g.Trades != w.Trades || !g.Cost.Equal(w.Cost) || !g.MTM.Equal(w.MTM) {
			t.Errorf("Movements()[%d] = %+v, want %+v", i, g, w)
		}
	}
	if got, want := got[0].Percent(), Percent(-20); !got.Equal(want) {
		t.Errorf("equity Percent() = %v, want %v", got, want)
	}
	if got, want := got[1].Change(), EUR(-500); !got.Equal(want) {
		t.Errorf("funds Change() = %v, want %v", got, want)
	}
}

func TestPerformance_EmptyWindow(t *testing.T) {
	p := newTestPortfolio(t)
	got, _ := p.Performance.Movements(pricingDate, pricingDate)
	if len(got) != 0 {
		t.Errorf("Movements() = %+v, want none", got)
	}
}
