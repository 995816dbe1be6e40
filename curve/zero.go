// Package curve builds zero coupon discount curves from money market
// deposits and government par yields.
package curve

import (
	"slices"

	"github.com/etnz/portfolio-analytics/date"
)

// Point is one node of a zero curve.
type Point struct {
	Date date.Date
	Days int     // from the curve date
	Rate float64 // simple ACT/360 zero rate, decimal
	DF   float64 // 1/(1+Rate*Days/360)
}

// discountFactor is the single day count convention of the curve.
func discountFactor(rate float64, days int) float64 {
	return 1 / (1 + rate*float64(days)/360)
}

// ZeroCurve is a zero coupon curve as of a date.
//
// Nodes are strictly increasing in date. Rates between nodes are linearly
// interpolated in days, and the first or last rate is used beyond them.
type ZeroCurve struct {
	On     date.Date
	points []Point
}

// Points returns a copy of the curve nodes.
func (z *ZeroCurve) Points() []Point { return slices.Clone(z.points) }

// Len returns the number of nodes.
func (z *ZeroCurve) Len() int { return len(z.points) }

// rateAt interpolates the zero rate at a number of days from the curve date.
func (z *ZeroCurve) rateAt(days int) float64 {
	n := len(z.points)
	i, found := slices.BinarySearchFunc(z.points, days, func(p Point, d int) int { return p.Days - d })
	switch {
	case found:
		return z.points[i].Rate
	case i == 0:
		return z.points[0].Rate
	case i == n:
		return z.points[n-1].Rate
	}
	a, b := z.points[i-1], z.points[i]
	w := float64(days-a.Days) / float64(b.Days-a.Days)
	return a.Rate + w*(b.Rate-a.Rate)
}

// Rate returns the interpolated zero rate at a date, 0 on an empty curve.
func (z *ZeroCurve) Rate(on date.Date) float64 {
	if len(z.points) == 0 {
		return 0
	}
	return z.rateAt(on.Sub(z.On))
}

// DiscountFactor returns the discount factor at a date. Dates on or before
// the curve date, and any date on an empty curve, are not discounted.
func (z *ZeroCurve) DiscountFactor(on date.Date) float64 {
	days := on.Sub(z.On)
	if days <= 0 || len(z.points) == 0 {
		return 1
	}
	return discountFactor(z.rateAt(days), days)
}
