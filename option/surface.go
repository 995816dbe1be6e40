package option

import (
	"math"
	"slices"
)

// Surface holds implied volatilities by tenor and moneyness (Strike/Spot - 1).
//
// Tenors are rounded to 0.01 year so that options of the same expiry share a
// row. Several quotes on the same node are averaged.
type Surface struct {
	rows map[float64]map[float64]node
}

type node struct {
	sum float64
	n   int
}

func (n node) vol() float64 { return n.sum / float64(n.n) }

// RoundTenor rounds a year fraction to the surface grid.
func RoundTenor(tenor float64) float64 { return math.Round(tenor*100) / 100 }

// Add records an implied vol.
func (s *Surface) Add(tenor, moneyness, vol float64) {
	if s.rows == nil {
		s.rows = make(map[float64]map[float64]node)
	}
	tenor = RoundTenor(tenor)
	row, ok := s.rows[tenor]
	if !ok {
		row = make(map[float64]node)
		s.rows[tenor] = row
	}
	n := row[moneyness]
	n.sum += vol
	n.n++
	row[moneyness] = n
}

// Len returns the number of nodes.
func (s *Surface) Len() int {
	n := 0
	for _, row := range s.rows {
		n += len(row)
	}
	return n
}

// Point is one node of the surface.
type Point struct {
	Tenor, Moneyness, Vol float64
}

// Points returns the nodes sorted by tenor then moneyness.
func (s *Surface) Points() []Point {
	var points []Point
	for _, t := range s.tenors() {
		row := s.rows[t]
		for _, m := range sortedKeys(row) {
			points = append(points, Point{Tenor: t, Moneyness: m, Vol: row[m].vol()})
		}
	}
	return points
}

func (s *Surface) tenors() []float64 {
	tenors := make([]float64, 0, len(s.rows))
	for t := range s.rows {
		tenors = append(tenors, t)
	}
	slices.Sort(tenors)
	return tenors
}

func sortedKeys(row map[float64]node) []float64 {
	keys := make([]float64, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Vol interpolates the surface: linearly along moneyness within each tenor
// row, then linearly across tenors. Beyond the grid the nearest value is
// used. It returns false on an empty surface.
func (s *Surface) Vol(tenor, moneyness float64) (float64, bool) {
	tenors := s.tenors()
	if len(tenors) == 0 {
		return 0, false
	}
	vols := make([]float64, len(tenors))
	for i, t := range tenors {
		row := s.rows[t]
		xs := sortedKeys(row)
		ys := make([]float64, len(xs))
		for j, x := range xs {
			ys[j] = row[x].vol()
		}
		vols[i] = interpolate(xs, ys, moneyness)
	}
	return interpolate(tenors, vols, tenor), true
}

// interpolate is a linear interpolation of y(x) on sorted xs, flat outside.
func interpolate(xs, ys []float64, x float64) float64 {
	i, found := slices.BinarySearch(xs, x)
	switch {
	case found:
		return ys[i]
	case i == 0:
		return ys[0]
	case i == len(xs):
		return ys[len(ys)-1]
	}
	w := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + w*(ys[i]-ys[i-1])
}
