package curve

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/etnz/portfolio-analytics/bond"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

var (
	testDeposits = map[int]float64{30: 4.0, 90: 4.1, 180: 4.2}
	testGovts    = map[int]float64{30: 3.9, 365: 4.4, 730: 4.6, 1095: 4.7, 1825: 4.9, 3650: 5.1, 7300: 5.3, 10950: 5.4}
)

func TestBuildMonotonic(t *testing.T) {
	on := date.New(2023, time.January, 2)
	z, log := Build(on, testDeposits, testGovts)
	if len(log) != 0 {
		t.Errorf("Build() diagnostics = %v, want none", log)
	}
	points := z.Points()
	// the 30 days government quote is below the last deposit and is not bootstrapped.
	if len(points) != 10 {
		t.Fatalf("Build() returned %d points, want 10: %v", len(points), points)
	}
	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			t.Errorf("points[%d].Date = %v is not after %v", i, points[i].Date, points[i-1].Date)
		}
		if points[i].DF >= points[i-1].DF {
			t.Errorf("points[%d].DF = %v, want less than %v", i, points[i].DF, points[i-1].DF)
		}
	}
	if got, want := points[0].Date, on.Add(30); got != want {
		t.Errorf("first point Date = %v, want %v", got, want)
	}
	if got, want := points[0].DF, 1/(1+0.04*30/360.0); math.Abs(got-want) > 1e-15 {
		t.Errorf("first point DF = %v, want %v", got, want)
	}
}

func TestBuildReprices(t *testing.T) {
	on := date.New(2023, time.January, 2)
	z, _ := Build(on, testDeposits, testGovts)
	for _, tenor := range []int{365, 730, 1825, 10950} {
		yield := testGovts[tenor]
		flows := bond.Schedule(on.Add(tenor), yield, 6, on)
		want := bond.PresentValue(flows, yield/100)
		var got float64
		for _, f := range flows {
			got += f.Amount * z.DiscountFactor(f.Date)
		}
		if math.Abs(got-want) > 0.001 {
			t.Errorf("tenor %d: curve value %.6f, want %.6f", tenor, got, want)
		}
	}
}

func TestBuildGovtOnly(t *testing.T) {
	on := date.New(2023, time.January, 2)
	z, log := Build(on, nil, map[int]float64{365: 4.0, 730: 4.5})
	if len(log) != 0 {
		t.Errorf("Build() diagnostics = %v, want none", log)
	}
	if z.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", z.Len())
	}
	p := z.Points()
	if p[1].DF >= p[0].DF {
		t.Errorf("DF not decreasing: %v", p)
	}
}

func TestZeroCurveInterpolation(t *testing.T) {
	on := date.New(2023, time.January, 2)
	z, _ := Build(on, map[int]float64{30: 4.0, 90: 5.0}, nil)

	testCases := []struct {
		name string
		days int
		want float64
	}{
		{"before first node", 10, 0.04},
		{"on a node", 30, 0.04},
		{"between nodes", 60, 0.045},
		{"after last node", 400, 0.05},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := on.Add(tc.days)
			if got := z.Rate(d); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Rate(%v) = %v, want %v", d, got, tc.want)
			}
			if got, want := z.DiscountFactor(d), 1/(1+tc.want*float64(tc.days)/360); math.Abs(got-want) > 1e-12 {
				t.Errorf("DiscountFactor(%v) = %v, want %v", d, got, want)
			}
		})
	}
	if got := z.DiscountFactor(on); got != 1 {
		t.Errorf("DiscountFactor(on) = %v, want 1", got)
	}
	if got := new(ZeroCurve).DiscountFactor(on.Add(100)); got != 1 {
		t.Errorf("empty curve DiscountFactor() = %v, want 1", got)
	}
}

func TestQuotesBuildNearest(t *testing.T) {
	q := NewQuotes()
	d1 := date.New(2023, time.January, 2)
	d2 := date.New(2023, time.January, 10)
	q.AddDeposit(d1, 30, 4.0)
	q.AddDeposit(d2, 30, 4.5)
	q.AddGovt(d1, 365, 4.4)
	q.AddGovt(d2, 365, 4.8)

	testCases := []struct {
		name    string
		on      date.Date
		want    float64
		missing bool
	}{
		{"on the first quote date", d1, 0.040, false},
		{"closer to the first", date.New(2023, time.January, 5), 0.040, true},
		{"tie goes to the earlier", date.New(2023, time.January, 6), 0.040, true},
		{"closer to the second", date.New(2023, time.January, 7), 0.045, true},
		{"after the last", date.New(2023, time.March, 1), 0.045, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			z, log := q.Build(tc.on)
			if z.On != tc.on {
				t.Errorf("curve On = %v, want %v", z.On, tc.on)
			}
			if got := z.Points()[0].Rate; got != tc.want {
				t.Errorf("deposit rate = %v, want %v", got, tc.want)
			}
			if got := log.Has(diag.MissingPriceData); got != tc.missing {
				t.Errorf("Has(MissingPriceData) = %v, want %v: %v", got, tc.missing, log)
			}
		})
	}
}

func TestQuotesBuildEmpty(t *testing.T) {
	z, log := NewQuotes().Build(date.New(2023, time.January, 2))
	if z.Len() != 0 {
		t.Errorf("Len() = %d, want 0", z.Len())
	}
	if got := log.Count(diag.MissingPriceData); got != 2 {
		t.Errorf("Count(MissingPriceData) = %d, want 2: %v", got, log)
	}
}

const testQuotes = `{
  "us": {
    "2023-01-02": {"deposits": {"30": 4.0, "90": 4.1}, "govt": {"365": 4.4, "730": 4.6}},
    "2023-01-03": {"deposits": {"30": 4.1, "90": 4.2}, "govt": {"365": 4.5, "730": 4.7}}
  },
  "ch": {
    "2023-01-02": {"deposits": {"30": 1.0}, "govt": {"365": 1.2}}
  }
}`

func TestDecodeQuotes(t *testing.T) {
	q, err := DecodeQuotes(strings.NewReader(testQuotes), "$.us")
	if err != nil {
		t.Fatalf("DecodeQuotes() error = %v", err)
	}
	z, log := q.Build(date.New(2023, time.January, 3))
	if len(log) != 0 {
		t.Errorf("Build() diagnostics = %v, want none", log)
	}
	if z.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", z.Len())
	}
	if got := z.Points()[0].Rate; math.Abs(got-0.041) > 1e-12 {
		t.Errorf("deposit rate = %v, want 0.041", got)
	}

	ch, err := DecodeQuotes(strings.NewReader(testQuotes), "$.ch")
	if err != nil {
		t.Fatalf("DecodeQuotes($.ch) error = %v", err)
	}
	if z, _ := ch.Build(date.New(2023, time.January, 2)); z.Len() != 2 {
		t.Errorf("ch Len() = %d, want 2", z.Len())
	}
}

func TestDecodeQuotesErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		path string
	}{
		{"not json", `{`, "$.us"},
		{"unknown country", testQuotes, "$.fr"},
		{"not an object", `{"us": 3}`, "$.us"},
		{"invalid date", `{"us": {"2023-13-01": {}}}`, "$.us"},
		{"invalid tenor", `{"us": {"2023-01-02": {"deposits": {"1m": 4.0}}}}`, "$.us"},
		{"invalid quote", `{"us": {"2023-01-02": {"govt": {"365": "4.0"}}}}`, "$.us"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeQuotes(strings.NewReader(tc.doc), tc.path); err == nil {
				t.Error("DecodeQuotes() error = nil, want an error")
			}
		})
	}
}

func TestBuildInvalidTenor(t *testing.T) {
	_, log := Build(date.New(2023, time.January, 2), map[int]float64{0: 4.0, 30: 4.0}, nil)
	if !log.Has(diag.InvalidInput) {
		t.Errorf("Build() diagnostics = %v, want an InvalidInput", log)
	}
	if errors.Is(log.Err(), diag.ErrNonConvergence) {
		t.Errorf("Build() unexpected NonConvergence: %v", log)
	}
}
