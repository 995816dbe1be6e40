// Package bond values bullet bonds: cash-flow schedule, accrued interest,
// yield, spread over a zero curve, duration and DV01.
//
// Prices are per 100 of face value, the coupon is the annual rate in percent
// points (4 means 4%), and yields and spreads are decimals (0.04 means 4%).
package bond

import (
	"fmt"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

// Curve provides discount factors by date, typically a zero coupon curve.
type Curve interface {
	DiscountFactor(on date.Date) float64
}

// Terms are the static characteristics of a bullet bond.
type Terms struct {
	Maturity  date.Date
	Coupon    float64 // annual, in percent points
	Frequency int     // months between coupons
}

func (t Terms) validate() error {
	if t.Frequency <= 0 || 12%t.Frequency != 0 {
		return fmt.Errorf("coupon frequency %d months does not divide a year: %w", t.Frequency, diag.ErrInvalidInput)
	}
	if t.Coupon < 0 {
		return fmt.Errorf("negative coupon %v: %w", t.Coupon, diag.ErrInvalidInput)
	}
	return nil
}

// Bond holds the analytics of one bullet bond for a pricing date.
//
// The analytics are always consistent with the clean price, pricing date
// and curve: Reprice and Revalue are the only way to change them and both
// recompute every dependent value before returning.
type Bond struct {
	Terms

	On         date.Date
	CleanPrice float64
	Accrued    float64
	DirtyPrice float64
	Yield      float64
	Spread     float64
	Duration   float64 // in years
	DV01       float64

	flows []CashFlow
	curve Curve
	log   diag.Log
}

// New builds and values a bond as of on.
//
// It fails with diag.ErrInvalidInput when the clean price is negative, the
// frequency does not divide a year or the bond has matured.
func New(terms Terms, on date.Date, clean float64, zc Curve) (*Bond, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	if clean < 0 {
		return nil, fmt.Errorf("clean price %v: %w", clean, diag.ErrInvalidInput)
	}
	b := &Bond{Terms: terms, CleanPrice: clean}
	if err := b.Revalue(on, zc); err != nil {
		return nil, err
	}
	return b, nil
}

// Reprice sets a new clean price and recomputes dirty price, yield, spread,
// duration and DV01. The schedule and accrued interest are unchanged.
//
// A negative price is rejected and leaves the bond untouched.
func (b *Bond) Reprice(clean float64) error {
	if clean < 0 {
		return fmt.Errorf("clean price %v: %w", clean, diag.ErrInvalidInput)
	}
	b.CleanPrice = clean
	b.price()
	return nil
}

// Revalue moves the bond to a new pricing date and curve, and recomputes
// everything from the cash-flow schedule onward.
func (b *Bond) Revalue(on date.Date, zc Curve) error {
	if !b.Maturity.After(on) {
		return fmt.Errorf("bond maturing on %s is not alive on %s: %w", b.Maturity, on, diag.ErrInvalidInput)
	}
	b.On = on
	b.curve = zc
	b.flows = Schedule(b.Maturity, b.Coupon, b.Frequency, on)

	last := lastCoupon(b.Maturity, b.Frequency, len(b.flows))
	b.Accrued = couponPerPeriod(b.Coupon, b.Frequency) * float64(on.Sub(last)) / float64(periodDays(b.Frequency))
	b.price()
	return nil
}

// price recomputes the price dependent analytics.
func (b *Bond) price() {
	b.log = nil
	b.DirtyPrice = b.CleanPrice + b.Accrued

	var log diag.Log
	b.Yield, log = SolveYield(b.flows, b.DirtyPrice, b.Coupon/100)
	b.log.Merge("", log)

	if b.curve != nil {
		b.Spread, log = SolveSpread(b.flows, zeroRates(b.flows, b.curve), b.DirtyPrice)
		b.log.Merge("", log)
	} else {
		b.Spread = 0
		b.log.Add(diag.MissingPriceData, "spread", "no zero curve")
	}

	b.Duration = duration(b.flows, b.Yield, b.DirtyPrice)
	b.DV01 = dv01(b.flows, b.Yield)
}

// CashFlows returns a copy of the remaining cash flows, sorted by date.
func (b *Bond) CashFlows() []CashFlow {
	flows := make([]CashFlow, len(b.flows))
	copy(flows, b.flows)
	return flows
}

// Diagnostics returns the fallbacks taken by the last recompute.
func (b *Bond) Diagnostics() diag.Log { return b.log }
