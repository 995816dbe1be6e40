package portfolio

import (
	"slices"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
	"github.com/etnz/portfolio-analytics/option"
)

// OptionLine is an option position joined with its greeks.
//
// Delta and gammas are in base currency per unit move of the underlying
// times its spot, vegas and theta are in base currency.
type OptionLine struct {
	Position
	Underlying string
	Right      option.Right
	Strike     float64
	Expiry     date.Date
	Tenor      float64
	Spot       float64
	Vol        float64
	Moneyness  float64 // strike / spot
	Stale      bool

	Delta     float64
	GammaUp   float64
	GammaDown float64
	VegaUp    float64
	VegaDown  float64
	Theta     float64
}

// GammaBuckets are the moneyness buckets of a gamma matrix, from low to high strikes.
var GammaBuckets = []string{"-OTM", "-13.75%", "-7.5%", "ATM", "+7.5%", "+13.75%", "+OTM"}

// gammaEdges bound the buckets, each one is (edge[i], edge[i+1]] in strike / spot.
var gammaEdges = []float64{0.5, 0.8625, 0.925, 0.975, 1.025, 1.075, 1.1375, 1.3375}

// GammaBucket returns the bucket of a strike / spot ratio.
func GammaBucket(moneyness float64) (string, bool) {
	for i := 1; i < len(gammaEdges); i++ {
		if moneyness > gammaEdges[i-1] && moneyness <= gammaEdges[i] {
			return GammaBuckets[i-1], true
		}
	}
	return "", false
}

// GammaCell addresses a gamma matrix cell.
type GammaCell struct {
	Bucket string
	Tenor  float64 // rounded to 0.01 year
}

// GammaMatrix sums dollar gammas by moneyness bucket and tenor.
type GammaMatrix struct {
	Tenors []float64 // sorted
	Up     map[GammaCell]float64
	Down   map[GammaCell]float64
}

// OptionBook is the option sub-portfolio.
type OptionBook struct {
	On          date.Date
	Lines       []OptionLine // sorted by id
	NetDelta    float64
	NetGamma    float64 // average of gamma up and gamma down
	NetVega     float64 // average of vega up and vega down
	NetTheta    float64
	Gamma       GammaMatrix
	Diagnostics diag.Log
}

// Options joins the option positions of a snapshot with their greeks.
func (l *Ledger) Options(s *Snapshot) *OptionBook {
	book := &OptionBook{
		On: s.On,
		Gamma: GammaMatrix{
			Up:   make(map[GammaCell]float64),
			Down: make(map[GammaCell]float64),
		},
	}
	var vegaUp, vegaDown, gammaUp, gammaDown float64
	for _, p := range s.Positions {
		if p.AssetClass != ClassOption {
			continue
		}
		c, ok := l.ref.Option(p.ID)
		if !ok {
			book.Diagnostics.Add(diag.MissingPriceData, p.ID, "no greeks on %s", s.On)
			continue
		}
		code, _ := l.ref.OptionCode(p.ID)
		def := l.ref.options[p.ID]
		if p.FXRate == 0 {
			book.Diagnostics.Add(diag.DivisionByZero, p.ID, "zero fx rate, greeks set to 0")
			continue
		}
		// per contract greeks to base currency amounts.
		q := p.Quantity.Float() / p.FXRate
		line := OptionLine{
			Position:   p,
			Underlying: def.Underlying,
			Right:      c.Right,
			Strike:     c.Strike,
			Expiry:     code.Expiry,
			Tenor:      c.Tenor,
			Spot:       c.Spot,
			Vol:        c.Vol,
			Moneyness:  c.Moneyness() + 1,
			Stale:      c.Stale(),
			Delta:      c.Delta * c.Spot * q,
			GammaUp:    c.GammaUp * c.Spot * q,
			GammaDown:  c.GammaDown * c.Spot * q,
			VegaUp:     c.VegaUp * q,
			VegaDown:   c.VegaDown * q,
			Theta:      c.Theta * q,
		}
		book.Lines = append(book.Lines, line)

		book.NetDelta += line.Delta
		book.NetTheta += line.Theta
		gammaUp += line.GammaUp
		gammaDown += line.GammaDown
		vegaUp += line.VegaUp
		vegaDown += line.VegaDown

		bucket, ok := GammaBucket(line.Moneyness)
		if !ok {
			book.Diagnostics.Add(diag.InvalidInput, p.ID, "strike / spot %.4f outside the gamma matrix", line.Moneyness)
			continue
		}
		cell := GammaCell{Bucket: bucket, Tenor: option.RoundTenor(line.Tenor)}
		book.Gamma.Up[cell] += line.GammaUp
		book.Gamma.Down[cell] += line.GammaDown
		if !slices.Contains(book.Gamma.Tenors, cell.Tenor) {
			book.Gamma.Tenors = append(book.Gamma.Tenors, cell.Tenor)
		}
	}
	// vega down is the price change of a fall in vol, its sign is flipped.
	book.NetGamma = (gammaUp + gammaDown) / 2
	book.NetVega = (vegaUp - vegaDown) / 2
	slices.Sort(book.Gamma.Tenors)
	return book
}
