package option

import "math"

// inputs are the market inputs of the closed form.
type inputs struct {
	right    Right
	spot     float64
	strike   float64
	rate     float64 // domestic
	dividend float64 // foreign rate or dividend yield
	tenor    float64 // years
	vol      float64
}

func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// degenerate reports inputs where the closed form is undefined.
func (in inputs) degenerate() bool { return in.vol <= 0 || in.tenor <= 0 }

// intrinsic returns the discounted intrinsic value and its delta.
func (in inputs) intrinsic() (price, delta float64) {
	t := math.Max(in.tenor, 0)
	fwd := in.spot * math.Exp(-in.dividend*t)
	k := in.strike * math.Exp(-in.rate*t)
	switch in.right {
	case Call:
		if fwd > k {
			return fwd - k, 1
		}
		return 0, 0
	default:
		if k > fwd {
			return k - fwd, -1
		}
		return 0, 0
	}
}

func (in inputs) d1d2() (d1, d2 float64) {
	sd := in.vol * math.Sqrt(in.tenor)
	d1 = (math.Log(in.spot/in.strike) + (in.rate-in.dividend+in.vol*in.vol/2)*in.tenor) / sd
	return d1, d1 - sd
}

// price is the Garman-Kohlhagen closed form, Black-Scholes when dividend is zero.
func (in inputs) price() float64 {
	if in.degenerate() {
		p, _ := in.intrinsic()
		return p
	}
	d1, d2 := in.d1d2()
	fwd := in.spot * math.Exp(-in.dividend*in.tenor)
	k := in.strike * math.Exp(-in.rate*in.tenor)
	if in.right == Call {
		return fwd*normCdf(d1) - k*normCdf(d2)
	}
	return k*normCdf(-d2) - fwd*normCdf(-d1)
}

// delta is N(d1) for a call and N(d1)-1 for a put.
func (in inputs) delta() float64 {
	if in.degenerate() {
		_, d := in.intrinsic()
		return d
	}
	d1, _ := in.d1d2()
	if in.right == Call {
		return normCdf(d1)
	}
	return normCdf(d1) - 1
}

// bumps used by the finite difference greeks.
const (
	gammaBump = 0.05      // relative spot move
	vegaBump  = 5         // vol points
	thetaBump = 1.0 / 365 // one calendar day
)

type greeks struct {
	price, delta       float64
	gammaUp, gammaDown float64
	vegaUp, vegaDown   float64
	theta              float64
}

// compute evaluates price and greeks. Bumped inputs are copies, the receiver is never changed.
func (in inputs) compute() greeks {
	g := greeks{price: in.price(), delta: in.delta()}

	up, down := in, in
	up.spot *= 1 + gammaBump
	down.spot *= 1 - gammaBump
	g.gammaUp = up.delta() - g.delta
	g.gammaDown = g.delta - down.delta()

	up, down = in, in
	up.vol += vegaBump / 100.0
	down.vol -= vegaBump / 100.0
	g.vegaUp = (up.price() - g.price) / vegaBump
	g.vegaDown = (down.price() - g.price) / vegaBump

	roll := in
	roll.tenor -= thetaBump
	g.theta = roll.price() - g.price
	return g
}
