// Package option values vanilla European options with a closed form price,
// finite difference greeks and an implied volatility solver.
package option

import (
	"fmt"
	"math"

	"github.com/etnz/portfolio-analytics/diag"
)

// Right is call or put.
type Right int

const (
	Call Right = iota
	Put
)

func (r Right) String() string {
	if r == Call {
		return "call"
	}
	return "put"
}

const (
	impliedVolTolerance = 0.01 // in price
	impliedVolMaxIter   = 20
	minVol              = 1e-4
	maxVol              = 5
)

// Contract is one European option with its analytics.
//
// Price and greeks are consistent with Spot, Vol and Tenor after every
// mutator, except SetSpot which only marks the contract stale.
type Contract struct {
	Right    Right
	Spot     float64
	Strike   float64
	Rate     float64 // domestic rate, continuous
	Dividend float64 // foreign rate or dividend yield, continuous
	Tenor    float64 // years to expiry
	Vol      float64 // annualized, 0.2 means 20%

	Price     float64
	Delta     float64
	GammaUp   float64 // delta change for a 5% spot rise
	GammaDown float64 // delta change for a 5% spot fall
	VegaUp    float64 // per vol point, from a 5 points rise
	VegaDown  float64 // per vol point, from a 5 points fall
	Theta     float64 // price change over one day

	stale bool
	log   diag.Log
}

// New creates a contract and computes its price and greeks from vol.
func New(right Right, spot, strike, rate, dividend, tenor, vol float64) (*Contract, error) {
	if spot <= 0 || strike <= 0 {
		return nil, fmt.Errorf("spot %v and strike %v must be positive: %w", spot, strike, diag.ErrInvalidInput)
	}
	c := &Contract{
		Right:    right,
		Spot:     spot,
		Strike:   strike,
		Rate:     rate,
		Dividend: dividend,
		Tenor:    tenor,
		Vol:      vol,
	}
	c.Recompute()
	return c, nil
}

func (c *Contract) inputs() inputs {
	return inputs{
		right:    c.Right,
		spot:     c.Spot,
		strike:   c.Strike,
		rate:     c.Rate,
		dividend: c.Dividend,
		tenor:    c.Tenor,
		vol:      c.Vol,
	}
}

// Recompute prices the contract at its current vol and refreshes every greek.
// It clears the stale flag.
func (c *Contract) Recompute() {
	c.log = nil
	c.apply(c.inputs().compute())
}

func (c *Contract) apply(g greeks) {
	c.Price = g.price
	c.Delta = g.delta
	c.GammaUp = g.gammaUp
	c.GammaDown = g.gammaDown
	c.VegaUp = g.vegaUp
	c.VegaDown = g.vegaDown
	c.Theta = g.theta
	c.stale = false
	if c.inputs().degenerate() {
		c.log.Add(diag.InvalidInput, "", "vol %v tenor %v: priced at discounted intrinsic value", c.Vol, c.Tenor)
	}
}

// SetVol sets the volatility and recomputes price and greeks.
func (c *Contract) SetVol(vol float64) {
	c.Vol = vol
	c.Recompute()
}

// SetPrice solves the volatility implied by a market price, then recomputes
// price and greeks at that volatility.
//
// The stored Price is the model price at the implied vol, within 0.01 of
// price when the solver converged.
func (c *Contract) SetPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("option price %v: %w", price, diag.ErrInvalidInput)
	}
	vol, log := impliedVol(c.inputs(), price)
	c.Vol = vol
	c.Recompute()
	c.log.Merge("", log)
	return nil
}

// SetSpot updates the spot only.
//
// Price, vol and greeks are left as they are: the vol should be read again
// from a surface at the new moneyness before being trusted, which is the
// caller's decision. The contract reports Stale until Recompute, SetVol or
// SetPrice is called.
func (c *Contract) SetSpot(spot float64) error {
	if spot <= 0 {
		return fmt.Errorf("spot %v: %w", spot, diag.ErrInvalidInput)
	}
	c.Spot = spot
	c.stale = true
	c.log.Add(diag.InvalidInput, "spot", "spot moved to %v, greeks are stale", spot)
	return nil
}

// Stale reports whether the spot changed since greeks were last computed.
func (c *Contract) Stale() bool { return c.stale }

// Vega is the central one vol point sensitivity.
func (c *Contract) Vega() float64 { return (c.VegaUp - c.VegaDown) / 2 }

// Moneyness returns Strike/Spot - 1.
func (c *Contract) Moneyness() float64 { return c.Strike/c.Spot - 1 }

// Diagnostics returns the fallbacks taken by the last recompute.
func (c *Contract) Diagnostics() diag.Log { return c.log }

// impliedVol finds the vol whose price matches target with Newton-Raphson,
// starting from the vol in the inputs.
//
// The derivative is the one point vega scaled by 100. The solver stops when
// the price error is below 0.01 or after 20 iterations. Vols are kept in
// [0.0001, 5]. A zero vega stops the search with a DivisionByZero.
func impliedVol(in inputs, target float64) (float64, diag.Log) {
	var log diag.Log
	if in.vol < minVol || in.vol > maxVol || math.IsNaN(in.vol) {
		in.vol = 0.2
	}
	for i := 0; ; i++ {
		g := in.compute()
		f := g.price - target
		if math.Abs(f) < impliedVolTolerance {
			return in.vol, log
		}
		if i == impliedVolMaxIter {
			log.Add(diag.NonConvergence, "vol", "price error %.4f after %d iterations", f, i)
			return in.vol, log
		}
		dfx := (g.vegaUp - g.vegaDown) / 2 * 100
		if dfx == 0 {
			log.Add(diag.DivisionByZero, "vol", "zero vega at vol %.4f", in.vol)
			return in.vol, log
		}
		in.vol = min(max(in.vol-f/dfx, minVol), maxVol)
	}
}
