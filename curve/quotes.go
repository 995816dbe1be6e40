package curve

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

// table holds one history of quotes per tenor in days.
type table map[int]*date.History[float64]

func (t table) add(on date.Date, tenor int, quote float64) {
	h, ok := t[tenor]
	if !ok {
		h = new(date.History[float64])
		t[tenor] = h
	}
	h.Append(on, quote)
}

// nearest returns the quotes of the quote date closest to on, ties going to
// the earlier date. A tenor not quoted on that date uses its last earlier quote.
func (t table) nearest(on date.Date) (date.Date, map[int]float64, bool) {
	histories := make([]*date.History[float64], 0, len(t))
	for _, h := range t {
		histories = append(histories, h)
	}
	var best date.Date
	found := false
	for d := range date.Iterate(histories...) {
		if !found || abs(d.Sub(on)) < abs(best.Sub(on)) {
			best, found = d, true
		}
		if d.After(on) {
			// dates only get further away from here.
			break
		}
	}
	if !found {
		return date.Date{}, nil, false
	}
	quotes := make(map[int]float64, len(t))
	for tenor, h := range t {
		if q, ok := h.ValueAsOf(best); ok {
			quotes[tenor] = q
		}
	}
	return best, quotes, true
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Quotes are the market quotes history of one country, in percent.
type Quotes struct {
	deposits table
	govts    table
}

// NewQuotes returns an empty quote history.
func NewQuotes() *Quotes {
	return &Quotes{deposits: make(table), govts: make(table)}
}

// AddDeposit records a money market rate quoted on a date.
func (q *Quotes) AddDeposit(on date.Date, tenor int, rate float64) { q.deposits.add(on, tenor, rate) }

// AddGovt records a government par yield quoted on a date.
func (q *Quotes) AddGovt(on date.Date, tenor int, yield float64) { q.govts.add(on, tenor, yield) }

// Build selects, for each leg, the quotes nearest to on and builds the zero curve.
// Every call rebuilds the curve from scratch.
func (q *Quotes) Build(on date.Date) (*ZeroCurve, diag.Log) {
	var log diag.Log
	dd, deposits, ok := q.deposits.nearest(on)
	if !ok {
		log.Add(diag.MissingPriceData, "deposit", "no deposit quotes")
	} else if dd != on {
		log.Add(diag.MissingPriceData, "deposit", "no quotes on %s, using %s", on, dd)
	}
	gd, govts, ok := q.govts.nearest(on)
	if !ok {
		log.Add(diag.MissingPriceData, "govt", "no government quotes")
	} else if gd != on {
		log.Add(diag.MissingPriceData, "govt", "no quotes on %s, using %s", on, gd)
	}
	z, l := Build(on, deposits, govts)
	log.Merge("", l)
	return z, log
}

// DecodeQuotes reads quotes from a JSON document.
//
// path is a JSONPath expression selecting the quote table of one country,
// for instance "$.us", in a document like
//
//	{"us": {"2023-01-03": {"deposits": {"30": 4.3, "90": 4.6}, "govt": {"365": 4.7}}}}
//
// Tenors are in days and quotes in percent.
func DecodeQuotes(r io.Reader, path string) (*Quotes, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode curve quotes: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot select %q in curve quotes: %w", path, err)
	}
	// filters return a list even for a single match.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	days, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("curve quotes at %q: want an object of dates, got %T", path, jval)
	}

	q := NewQuotes()
	var errs []error
	for day, legs := range days {
		on, err := date.Parse(day)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		legs, ok := legs.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Errorf("quotes on %s: want an object, got %T", day, legs))
			continue
		}
		for leg, add := range map[string]func(date.Date, int, float64){"deposits": q.AddDeposit, "govt": q.AddGovt} {
			quotes, ok := legs[leg].(map[string]any)
			if !ok {
				continue
			}
			for tenor, quote := range quotes {
				t, err := strconv.Atoi(tenor)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s on %s: invalid tenor %q: %w", leg, day, tenor, err))
					continue
				}
				v, ok := quote.(float64)
				if !ok {
					errs = append(errs, fmt.Errorf("%s on %s: tenor %d: not a number %v", leg, day, t, quote))
					continue
				}
				add(on, t, v)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return q, nil
}
