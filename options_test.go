package portfolio

import (
	"testing"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

func TestGammaBucket(t *testing.T) {
	testCases := []struct {
		moneyness float64
		want      string
		wantOK    bool
	}{
		{0.4, "", false},
		{0.5, "", false},
		{0.51, "-OTM", true},
		{0.8625, "-OTM", true},
		{0.9, "-13.75%", true},
		{0.95, "-7.5%", true},
		{1, "ATM", true},
		{1.05, "+7.5%", true},
		{1.1, "+13.75%", true},
		{1.3375, "+OTM", true},
		{1.4, "", false},
	}
	for _, tc := range testCases {
		got, ok := GammaBucket(tc.moneyness)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("GammaBucket(%v) = %q, %v, want %q, %v", tc.moneyness, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestOptionBook(t *testing.T) {
	p := newTestPortfolio(t)
	book, err := p.Options()
	if err != nil {
		t.Fatal(err)
	}
	if len(book.Lines) != 1 {
		t.Fatalf("Lines = %v, want the call only", book.Lines)
	}
	line := book.Lines[0]
	c, _ := p.Reference.Option(callID)

	// 2 contracts on a 200 USD spot, at 1.25 USD per EUR.
	const dollars = 2 * 200 / 1.25
	if !near(line.Delta, c.Delta*dollars, 1e-9) {
		t.Errorf("Delta = %v, want %v", line.Delta, c.Delta*dollars)
	}
	if line.Delta <= 0 {
		t.Errorf("Delta = %v, want positive for a long call", line.Delta)
	}
	if !near(line.Theta, c.Theta*2/1.25, 1e-9) {
		t.Errorf("Theta = %v, want %v", line.Theta, c.Theta*2/1.25)
	}
	if !near(book.NetGamma, (line.GammaUp+line.GammaDown)/2, 1e-9) {
		t.Errorf("NetGamma = %v, want the average of gamma up and down", book.NetGamma)
	}
	if !near(book.NetVega, c.Vega()*2/1.25, 1e-9) {
		t.Errorf("NetVega = %v, want %v", book.NetVega, c.Vega()*2/1.25)
	}
	if book.NetDelta != line.Delta || book.NetTheta != line.Theta {
		t.Errorf("net delta %v theta %v, want the single line", book.NetDelta, book.NetTheta)
	}
	if line.Expiry != date.New(2025, 12, 19) || line.Underlying != "AAPL" {
		t.Errorf("line expiry %s underlying %q", line.Expiry, line.Underlying)
	}

	// 187 days to expiry.
	cell := GammaCell{Bucket: "ATM", Tenor: 0.51}
	if len(book.Gamma.Tenors) != 1 || book.Gamma.Tenors[0] != 0.51 {
		t.Errorf("Gamma.Tenors = %v, want [0.51]", book.Gamma.Tenors)
	}
	if book.Gamma.Up[cell] != line.GammaUp || book.Gamma.Down[cell] != line.GammaDown {
		t.Errorf("Gamma = %v %v, want the line in %v", book.Gamma.Up, book.Gamma.Down, cell)
	}
}

func TestOptionBook_Buckets(t *testing.T) {
	ref := newTestReference(t)
	// strikes at 150, 200 and 400 on a 200 spot, two expiries.
	for _, id := range []string{"AAPL251219P00150000", "AAPL260618C00200000", "AAPL251219C00400000"} {
		if err := ref.AddOption(OptionDef{ID: id, Currency: "USD"}); err != nil {
			t.Fatal(err)
		}
	}
	l := NewLedger(ref)
	for _, id := range []string{callID, "AAPL251219P00150000", "AAPL260618C00200000", "AAPL251219C00400000"} {
		if err := l.AddTrade(trade(date.New(2025, 1, 2), id, 1, 5)); err != nil {
			t.Fatal(err)
		}
	}
	ref.SetPricingDate(pricingDate)
	s, err := l.Rebuild(pricingDate)
	if err != nil {
		t.Fatal(err)
	}
	book := l.Options(s)

	if len(book.Lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(book.Lines))
	}
	// 2026-06-18 is 368 days away.
	if got, want := book.Gamma.Tenors, []float64{0.51, 1.01}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Gamma.Tenors = %v, want %v", got, want)
	}
	if _, ok := book.Gamma.Up[GammaCell{Bucket: "-OTM", Tenor: 0.51}]; !ok {
		t.Errorf("Gamma.Up = %v, want the 150 put in -OTM", book.Gamma.Up)
	}
	if _, ok := book.Gamma.Up[GammaCell{Bucket: "ATM", Tenor: 1.01}]; !ok {
		t.Errorf("Gamma.Up = %v, want the long call in ATM", book.Gamma.Up)
	}
	// the 400 call is at twice the spot.
	if got := book.Diagnostics.Count(diag.InvalidInput); got != 1 {
		t.Errorf("InvalidInput count = %d, want 1: %v", got, book.Diagnostics)
	}
	var sum float64
	for _, v := range book.Gamma.Up {
		sum += v
	}
	var lines float64
	for _, line := range book.Lines {
		if line.Strike != 400 {
			lines += line.GammaUp
		}
	}
	if !near(sum, lines, 1e-9) {
		t.Errorf("sum of the matrix = %v, want %v", sum, lines)
	}
}
