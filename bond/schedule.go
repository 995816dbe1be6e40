package bond

import (
	"github.com/etnz/portfolio-analytics/date"
)

// CashFlow is one scheduled payment of a bond, per 100 of face value.
type CashFlow struct {
	Date   date.Date
	Amount float64
	Days   int // calendar days from the pricing date
}

// couponPerPeriod returns the coupon paid every period, coupon being the annual rate in percent points.
func couponPerPeriod(coupon float64, frequency int) float64 {
	return coupon / (12 / float64(frequency))
}

// periodDays is the fixed length of a coupon period used for accrual.
func periodDays(frequency int) int {
	return int(365 / (12 / float64(frequency)))
}

// Schedule returns the bullet bond cash flows paid strictly after on, sorted by date.
//
// Payment dates are obtained by stepping back from maturity by frequency
// months. Every date is anchored on the maturity day of the month, and
// clamped to the last day of shorter months (a 31st maturity pays on the
// 30th of June and the 28th or 29th of February).
//
// The last flow is the final coupon plus the redemption of 100.
func Schedule(maturity date.Date, coupon float64, frequency int, on date.Date) []CashFlow {
	if !maturity.After(on) || frequency <= 0 {
		return nil
	}
	cpn := couponPerPeriod(coupon, frequency)

	// count periods first, so that flows are appended in chronological order.
	n := 1
	for maturity.AddMonth(-n * frequency).After(on) {
		n++
	}

	flows := make([]CashFlow, 0, n)
	for k := n - 1; k >= 0; k-- {
		d := maturity.AddMonth(-k * frequency)
		amount := cpn
		if k == 0 {
			amount += 100
		}
		flows = append(flows, CashFlow{Date: d, Amount: amount, Days: d.Sub(on)})
	}
	return flows
}

// lastCoupon returns the coupon date preceding the first flow of a schedule of n flows.
func lastCoupon(maturity date.Date, frequency, n int) date.Date {
	return maturity.AddMonth(-n * frequency)
}
