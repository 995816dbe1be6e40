package bond

import (
	"math"

	"github.com/etnz/portfolio-analytics/diag"
)

const (
	halfYearDays = 182.5

	yieldTolerance  = 0.01 // in price
	yieldMaxIter    = 10
	spreadGuess     = 0.01
	spreadTolerance = 0.001 // in price
	spreadMaxIter   = 10

	basisPoint = 0.0001
)

// PresentValue discounts flows at the semi-annual compounded yield y.
//
//	P(y) = Σ flow / (1+y/2)^(days/182.5)
func PresentValue(flows []CashFlow, y float64) float64 {
	pv, _ := presentValue(flows, y)
	return pv
}

// presentValue returns P(y) and its analytic derivative dP/dy.
func presentValue(flows []CashFlow, y float64) (pv, dpv float64) {
	for _, f := range flows {
		t := float64(f.Days) / halfYearDays
		pv += f.Amount / math.Pow(1+y/2, t)
		dpv += -f.Amount * t / 2 * math.Pow(1+y/2, -t-1)
	}
	return pv, dpv
}

// SolveYield finds y such that PresentValue(flows, y) equals dirty, using
// Newton-Raphson from guess.
//
// The solver stops when the price error is below 0.01 or after 10
// iterations, in which case the last iterate is returned and a
// NonConvergence diagnostic is recorded.
func SolveYield(flows []CashFlow, dirty, guess float64) (float64, diag.Log) {
	var log diag.Log
	y := guess
	for i := 0; ; i++ {
		pv, dpv := presentValue(flows, y)
		f := pv - dirty
		if math.Abs(f) < yieldTolerance {
			return y, log
		}
		if i == yieldMaxIter {
			log.Add(diag.NonConvergence, "yield", "price error %.4f after %d iterations", f, i)
			return y, log
		}
		if dpv == 0 {
			log.Add(diag.DivisionByZero, "yield", "zero derivative at y=%.6f", y)
			return y, log
		}
		y -= f / dpv
	}
}

// zeroRates converts the curve discount factors at each flow date into
// simple ACT/360 zero rates.
func zeroRates(flows []CashFlow, zc Curve) []float64 {
	zeros := make([]float64, len(flows))
	for i, f := range flows {
		if f.Days <= 0 {
			continue
		}
		df := zc.DiscountFactor(f.Date)
		zeros[i] = (1/df - 1) * 360 / float64(f.Days)
	}
	return zeros
}

// spreadValue returns Σ flow/(1+(zero+s)·days/360) and its derivative in s.
func spreadValue(flows []CashFlow, zeros []float64, s float64) (pv, dpv float64) {
	for i, f := range flows {
		a := float64(f.Days) / 360
		den := 1 + (zeros[i]+s)*a
		pv += f.Amount / den
		dpv += -f.Amount * a / (den * den)
	}
	return pv, dpv
}

// SolveSpread finds the constant spread s over the zero rates such that the
// flows discounted at zero+s match dirty.
//
// It starts at 1%, stops when the price error is below 0.001 or after 10
// iterations.
func SolveSpread(flows []CashFlow, zeros []float64, dirty float64) (float64, diag.Log) {
	var log diag.Log
	s := spreadGuess
	for i := 0; ; i++ {
		pv, dpv := spreadValue(flows, zeros, s)
		f := pv - dirty
		if math.Abs(f) < spreadTolerance {
			return s, log
		}
		if i == spreadMaxIter {
			log.Add(diag.NonConvergence, "spread", "price error %.4f after %d iterations", f, i)
			return s, log
		}
		if dpv == 0 {
			log.Add(diag.DivisionByZero, "spread", "zero derivative at s=%.6f", s)
			return s, log
		}
		s -= f / dpv
	}
}

// duration is the yield-discounted, time weighted average life of the flows in years.
func duration(flows []CashFlow, y, dirty float64) float64 {
	if dirty == 0 {
		return 0
	}
	var sum float64
	for _, f := range flows {
		pv := f.Amount / math.Pow(1+y/2, float64(f.Days)/halfYearDays)
		sum += float64(f.Days) / 365 * pv
	}
	return sum / dirty
}

// dv01 is the symmetric one basis point price move, (P(y-1bp) - P(y+1bp)) / 2, scaled by 1000.
func dv01(flows []CashFlow, y float64) float64 {
	return (PresentValue(flows, y-basisPoint) - PresentValue(flows, y+basisPoint)) / 2 * 1000
}
