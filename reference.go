package portfolio

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/portfolio-analytics/bond"
	"github.com/etnz/portfolio-analytics/curve"
	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
	"github.com/etnz/portfolio-analytics/option"
)

// Prices used when an instrument has no price on or before the pricing date.
const (
	missingBondPrice   = 100
	missingEquityPrice = 0
	missingFXRate      = 1
	missingOptionPrice = 1
)

// OptionSettings are the market inputs of option pricing that are not quoted.
type OptionSettings struct {
	Rate     float64 `yaml:"rate"`     // domestic rate, continuous
	Dividend float64 `yaml:"dividend"` // dividend yield of the underlying
	Vol      float64 `yaml:"vol"`      // used when the surface is empty
}

// ReferenceData is the instrument universe and its market data, and the
// analytics of every bond and option as of a pricing date.
//
// Nothing is computed lazily: SetPricingDate rebuilds, in that order, the
// zero curve, the volatility surface, the bond analytics and the option
// analytics. Lookups then read from that state.
type ReferenceData struct {
	base     string
	fx       map[string]string // currency -> price series id of the currency per base rate
	bonds    map[string]BondDef
	equities map[string]EquityDef
	funds    map[string]FundDef
	options  map[string]OptionDef
	codes    map[string]option.Code
	prices   map[string]*date.History[float64]
	quotes   *curve.Quotes
	settings OptionSettings

	// state for the pricing date.
	on           date.Date
	zero         *curve.ZeroCurve
	surface      *option.Surface
	bondModels   map[string]*bond.Bond
	optionModels map[string]*option.Contract
	log          diag.Log
}

// NewReferenceData returns an empty universe valued in base currency.
func NewReferenceData(base string) *ReferenceData {
	return &ReferenceData{
		base:         base,
		fx:           make(map[string]string),
		bonds:        make(map[string]BondDef),
		equities:     make(map[string]EquityDef),
		funds:        make(map[string]FundDef),
		options:      make(map[string]OptionDef),
		codes:        make(map[string]option.Code),
		prices:       make(map[string]*date.History[float64]),
		quotes:       curve.NewQuotes(),
		settings:     OptionSettings{Vol: 0.2},
		zero:         &curve.ZeroCurve{},
		surface:      &option.Surface{},
		bondModels:   make(map[string]*bond.Bond),
		optionModels: make(map[string]*option.Contract),
	}
}

// Base returns the reporting currency.
func (r *ReferenceData) Base() string { return r.base }

// On returns the current pricing date.
func (r *ReferenceData) On() date.Date { return r.on }

func (r *ReferenceData) declared(id string) bool {
	_, b := r.bonds[id]
	_, e := r.equities[id]
	_, f := r.funds[id]
	_, o := r.options[id]
	return b || e || f || o
}

// AddBond declares a bond.
func (r *ReferenceData) AddBond(d BondDef) error {
	if err := d.validate(); err != nil {
		return err
	}
	if r.declared(d.ID) {
		return fmt.Errorf("security %q already declared: %w", d.ID, diag.ErrInvalidInput)
	}
	r.bonds[d.ID] = d
	return nil
}

// AddEquity declares a single name equity.
func (r *ReferenceData) AddEquity(d EquityDef) error {
	if err := d.validate(); err != nil {
		return err
	}
	if r.declared(d.ID) {
		return fmt.Errorf("security %q already declared: %w", d.ID, diag.ErrInvalidInput)
	}
	r.equities[d.ID] = d
	return nil
}

// AddFund declares a fund.
func (r *ReferenceData) AddFund(d FundDef) error {
	if err := d.validate(); err != nil {
		return err
	}
	if r.declared(d.ID) {
		return fmt.Errorf("security %q already declared: %w", d.ID, diag.ErrInvalidInput)
	}
	r.funds[d.ID] = d
	return nil
}

// AddOption declares a listed option.
func (r *ReferenceData) AddOption(d OptionDef) error {
	c, err := d.code()
	if err != nil {
		return err
	}
	if r.declared(d.ID) {
		return fmt.Errorf("security %q already declared: %w", d.ID, diag.ErrInvalidInput)
	}
	r.options[d.ID] = d
	r.codes[d.ID] = c
	return nil
}

// SetFX declares the price series id of a currency, quoted as units of
// currency per unit of base currency.
func (r *ReferenceData) SetFX(currency, id string) { r.fx[currency] = id }

// AddPrice records a closing price. FX rates are prices too.
func (r *ReferenceData) AddPrice(id string, on date.Date, price float64) {
	h, ok := r.prices[id]
	if !ok {
		h = new(date.History[float64])
		r.prices[id] = h
	}
	h.Append(on, price)
}

// SetQuotes replaces the curve quotes.
func (r *ReferenceData) SetQuotes(q *curve.Quotes) { r.quotes = q }

// SetOptionSettings replaces the option pricing inputs.
func (r *ReferenceData) SetOptionSettings(s OptionSettings) { r.settings = s }

// price returns the last price on or before the pricing date.
func (r *ReferenceData) price(id string) (float64, bool) {
	h, ok := r.prices[id]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(r.on)
}

// SetPricingDate revalues the whole universe as of on and returns what fell back to defaults.
func (r *ReferenceData) SetPricingDate(on date.Date) diag.Log {
	r.on = on
	r.log = nil

	// curve
	zero, log := r.quotes.Build(on)
	r.zero = zero
	r.log.Merge("curve", log)

	// surface
	r.surface = r.buildSurface()

	// bonds
	r.bondModels = make(map[string]*bond.Bond, len(r.bonds))
	for _, id := range slices.Sorted(maps.Keys(r.bonds)) {
		d := r.bonds[id]
		if !d.Maturity.After(on) {
			continue
		}
		clean, ok := r.price(id)
		if !ok {
			clean = missingBondPrice
			r.log.Add(diag.MissingPriceData, id, "no price on or before %s, using %v", on, clean)
		}
		b, err := bond.New(bond.Terms{Maturity: d.Maturity, Coupon: d.Coupon, Frequency: d.Frequency}, on, clean, r.zero)
		if err != nil {
			r.log.Add(diag.InvalidInput, id, "%v", err)
			continue
		}
		r.log.Merge(id, b.Diagnostics())
		r.bondModels[id] = b
	}

	// options
	r.optionModels = make(map[string]*option.Contract, len(r.options))
	for _, id := range slices.Sorted(maps.Keys(r.options)) {
		if !r.codes[id].Expiry.After(on) {
			continue
		}
		c, log := r.buildOption(id)
		r.log.Merge(id, log)
		if c != nil {
			r.optionModels[id] = c
		}
	}
	return r.log
}

// buildSurface implies a vol from every option quoted on the pricing date.
func (r *ReferenceData) buildSurface() *option.Surface {
	s := &option.Surface{}
	for _, id := range slices.Sorted(maps.Keys(r.options)) {
		code := r.codes[id]
		tenor := float64(code.Expiry.Sub(r.on)) / 365
		if tenor <= 0 {
			continue
		}
		spot, ok := r.price(r.options[id].Underlying)
		if !ok || spot <= 0 {
			continue
		}
		price, ok := r.price(id)
		if !ok {
			continue
		}
		c, err := option.New(code.Right, spot, code.Strike, r.settings.Rate, r.settings.Dividend, tenor, r.settings.Vol)
		if err != nil {
			continue
		}
		if err := c.SetPrice(price); err != nil || len(c.Diagnostics()) > 0 {
			continue
		}
		s.Add(tenor, c.Moneyness(), c.Vol)
	}
	return s
}

// buildOption values one option. The spot is the price of the underlying,
// the vol is implied from the option price or read from the surface.
func (r *ReferenceData) buildOption(id string) (*option.Contract, diag.Log) {
	var log diag.Log
	code := r.codes[id]
	def := r.options[id]
	tenor := float64(code.Expiry.Sub(r.on)) / 365

	spot, ok := r.price(def.Underlying)
	if !ok || spot <= 0 {
		log.Add(diag.MissingPriceData, "spot", "no price for underlying %q", def.Underlying)
		return nil, log
	}
	vol, ok := r.surface.Vol(tenor, code.Strike/spot-1)
	if !ok {
		vol = r.settings.Vol
	}
	c, err := option.New(code.Right, spot, code.Strike, r.settings.Rate, r.settings.Dividend, tenor, vol)
	if err != nil {
		log.Add(diag.InvalidInput, "", "%v", err)
		return nil, log
	}
	if price, ok := r.price(id); ok {
		if err := c.SetPrice(price); err != nil {
			log.Add(diag.InvalidInput, "price", "%v", err)
		}
	} else {
		log.Add(diag.MissingPriceData, "price", "valued at surface vol %.4f", vol)
	}
	log.Merge("", c.Diagnostics())
	return c, log
}

// Diagnostics returns the fallbacks of the last SetPricingDate.
func (r *ReferenceData) Diagnostics() diag.Log { return r.log }

// Price returns the price of an instrument on the pricing date, in its currency.
//
// Without a price on or before that date, it returns the documented default
// (100 for bonds, 0 for equities and funds, 1 for options) and false.
func (r *ReferenceData) Price(id string) (float64, bool) {
	if p, ok := r.price(id); ok {
		return p, true
	}
	switch {
	case r.isBond(id):
		return missingBondPrice, false
	case r.isOption(id):
		return missingOptionPrice, false
	default:
		return missingEquityPrice, false
	}
}

func (r *ReferenceData) isBond(id string) bool {
	_, ok := r.bonds[id]
	return ok
}

func (r *ReferenceData) isOption(id string) bool {
	_, ok := r.options[id]
	return ok
}

// AssetClass returns the asset class of an instrument, false if unknown.
func (r *ReferenceData) AssetClass(id string) (AssetClass, bool) {
	if _, ok := r.bonds[id]; ok {
		return ClassBond, true
	}
	if d, ok := r.equities[id]; ok {
		return d.AssetClass, true
	}
	if d, ok := r.funds[id]; ok {
		return d.AssetClass, true
	}
	if _, ok := r.options[id]; ok {
		return ClassOption, true
	}
	return ClassUnknown, false
}

// Currency returns the currency of an instrument, false if unknown.
func (r *ReferenceData) Currency(id string) (string, bool) {
	if d, ok := r.bonds[id]; ok {
		return d.Currency, true
	}
	if d, ok := r.equities[id]; ok {
		return d.Currency, true
	}
	if d, ok := r.funds[id]; ok {
		return d.Currency, true
	}
	if d, ok := r.options[id]; ok {
		return d.Currency, true
	}
	return "", false
}

// FXRate returns units of currency per unit of base currency on the pricing
// date. The base currency is always 1. A missing rate returns 1 and false.
func (r *ReferenceData) FXRate(currency string) (float64, bool) {
	if currency == r.base {
		return 1, true
	}
	id, ok := r.fx[currency]
	if !ok {
		return missingFXRate, false
	}
	rate, ok := r.price(id)
	if !ok {
		return missingFXRate, false
	}
	return rate, true
}

// Bond returns the analytics of a bond alive on the pricing date.
func (r *ReferenceData) Bond(id string) (*bond.Bond, bool) {
	b, ok := r.bondModels[id]
	return b, ok
}

// BondDef returns the static definition of a bond.
func (r *ReferenceData) BondDef(id string) (BondDef, bool) {
	d, ok := r.bonds[id]
	return d, ok
}

// Option returns the analytics of an option on the pricing date.
func (r *ReferenceData) Option(id string) (*option.Contract, bool) {
	c, ok := r.optionModels[id]
	return c, ok
}

// OptionCode returns the decoded symbol of an option, with its tenor on the pricing date.
func (r *ReferenceData) OptionCode(id string) (option.Code, bool) {
	c, ok := r.codes[id]
	if !ok {
		return c, false
	}
	c.Tenor = float64(c.Expiry.Sub(r.on)) / 365
	return c, true
}

// Curve returns the zero curve of the pricing date.
func (r *ReferenceData) Curve() *curve.ZeroCurve { return r.zero }

// Surface returns the volatility surface of the pricing date.
func (r *ReferenceData) Surface() *option.Surface { return r.surface }

// Securities returns the ids of all declared instruments, sorted.
func (r *ReferenceData) Securities() []string {
	ids := slices.Collect(maps.Keys(r.bonds))
	ids = slices.AppendSeq(ids, maps.Keys(r.equities))
	ids = slices.AppendSeq(ids, maps.Keys(r.funds))
	ids = slices.AppendSeq(ids, maps.Keys(r.options))
	slices.Sort(ids)
	return ids
}
