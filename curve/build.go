package curve

import (
	"math"
	"slices"

	"github.com/etnz/portfolio-analytics/bond"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

const (
	govtFrequency = 6 // government bonds pay semi-annual coupons

	bootstrapTolerance = 0.001 // in price
	bootstrapMaxIter   = 20
	maxRate            = 1.0
)

// Build returns the zero curve as of on.
//
// deposits and govts map a tenor in days to a quote in percent: a simple
// ACT/360 deposit rate, and the par yield of a government bond paying a
// semi-annual coupon equal to that yield.
//
// Deposits are converted directly. Government tenors beyond the last known
// node are then bootstrapped in ascending order: the zero rate at the bond
// maturity is the one that reprices the bond to its value at its own yield.
// Flows before the last node use the known curve, flows after it use a rate
// interpolated between the last node and the trial rate.
func Build(on date.Date, deposits, govts map[int]float64) (*ZeroCurve, diag.Log) {
	var log diag.Log
	z := &ZeroCurve{On: on}

	for _, tenor := range sortedTenors(deposits) {
		if tenor <= 0 {
			log.Add(diag.InvalidInput, "deposit", "tenor %d days ignored", tenor)
			continue
		}
		r := deposits[tenor] / 100
		z.points = append(z.points, Point{Date: on.Add(tenor), Days: tenor, Rate: r, DF: discountFactor(r, tenor)})
	}

	for _, tenor := range sortedTenors(govts) {
		if n := len(z.points); n > 0 && tenor <= z.points[n-1].Days {
			continue
		}
		if tenor <= 0 {
			log.Add(diag.InvalidInput, "govt", "tenor %d days ignored", tenor)
			continue
		}
		r, l := z.bootstrap(tenor, govts[tenor])
		log.Merge("govt", l)
		z.points = append(z.points, Point{Date: on.Add(tenor), Days: tenor, Rate: r, DF: discountFactor(r, tenor)})
	}
	return z, log
}

func sortedTenors(quotes map[int]float64) []int {
	tenors := make([]int, 0, len(quotes))
	for t := range quotes {
		tenors = append(tenors, t)
	}
	slices.Sort(tenors)
	return tenors
}

// bootstrap solves the zero rate at tenor days for a par government bond.
//
// The root is searched with Newton steps kept inside a bracket that shrinks
// on every iteration; a step leaving the bracket is replaced by bisection.
func (z *ZeroCurve) bootstrap(tenor int, yield float64) (float64, diag.Log) {
	var log diag.Log
	flows := bond.Schedule(z.On.Add(tenor), yield, govtFrequency, z.On)
	target := bond.PresentValue(flows, yield/100)

	// simple rates below -360/days give negative discount factors.
	lo, hi := math.Max(-0.05, -0.5*360/float64(tenor)), maxRate
	r := yield / 100
	for i := 0; ; i++ {
		pv, dpv := z.trialValue(flows, tenor, r)
		f := pv - target
		if math.Abs(f) < bootstrapTolerance {
			return r, log
		}
		if i == bootstrapMaxIter {
			log.Add(diag.NonConvergence, "", "tenor %d: price error %.4f after %d iterations", tenor, f, i)
			return r, log
		}
		// value decreases with the rate.
		if f > 0 {
			lo = r
		} else {
			hi = r
		}
		next := (lo + hi) / 2
		if dpv != 0 {
			if n := r - f/dpv; n > lo && n < hi {
				next = n
			}
		}
		r = next
	}
}

// trialValue prices flows when the node at tenor days has the rate r, and
// returns the value and its derivative in r.
func (z *ZeroCurve) trialValue(flows []bond.CashFlow, tenor int, r float64) (pv, dpv float64) {
	n := len(z.points)
	for _, f := range flows {
		if n > 0 && f.Days <= z.points[n-1].Days {
			pv += f.Amount * discountFactor(z.rateAt(f.Days), f.Days)
			continue
		}
		// weight of the trial rate in the interpolated rate.
		w, base := 1.0, r
		if n > 0 {
			last := z.points[n-1]
			w = float64(f.Days-last.Days) / float64(tenor-last.Days)
			base = last.Rate
		}
		rate := base + w*(r-base)
		df := discountFactor(rate, f.Days)
		pv += f.Amount * df
		dpv += -f.Amount * df * df * float64(f.Days) / 360 * w
	}
	return pv, dpv
}
