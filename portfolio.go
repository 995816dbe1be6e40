package portfolio

import (
	"errors"
	"fmt"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

// ReportKind selects a report of the portfolio.
type ReportKind int

const (
	HoldingReport ReportKind = iota
	BondsReport
	OptionsReport
	CurveReport
)

func (k ReportKind) String() string {
	switch k {
	case HoldingReport:
		return "holding"
	case BondsReport:
		return "bonds"
	case OptionsReport:
		return "options"
	case CurveReport:
		return "curve"
	default:
		return fmt.Sprintf("report(%d)", int(k))
	}
}

// ReportGenerator renders a report of a priced portfolio.
type ReportGenerator interface {
	Generate(kind ReportKind, p *Portfolio) (string, error)
}

// ErrNotPriced is returned by readers of a portfolio before its first pricing date.
var ErrNotPriced = errors.New("portfolio has no pricing date")

// Portfolio ties together the reference data, the ledger and the reports.
type Portfolio struct {
	Name        string
	Reference   *ReferenceData
	Ledger      *Ledger
	Performance *Performance
	Reports     ReportGenerator

	snapshot *Snapshot
	log      diag.Log
}

// New returns a portfolio over ref with an empty ledger.
func New(name string, ref *ReferenceData, reports ReportGenerator) *Portfolio {
	l := NewLedger(ref)
	return &Portfolio{
		Name:        name,
		Reference:   ref,
		Ledger:      l,
		Performance: NewPerformance(l),
		Reports:     reports,
	}
}

// SetPricingDate revalues the reference data and rebuilds the snapshot on a date.
//
// The previous snapshot stays visible until the new one is complete.
func (p *Portfolio) SetPricingDate(on date.Date) error {
	var log diag.Log
	log.Merge("reference", p.Reference.SetPricingDate(on))
	s, err := p.Ledger.Rebuild(on)
	if err != nil {
		return fmt.Errorf("cannot price %s on %s: %w", p.Name, on, err)
	}
	log.Merge("snapshot", s.Diagnostics)
	p.snapshot, p.log = s, log
	return nil
}

// On returns the pricing date, zero before the first SetPricingDate.
func (p *Portfolio) On() date.Date {
	if p.snapshot == nil {
		return date.Date{}
	}
	return p.snapshot.On
}

// Snapshot returns the current snapshot, nil before the first SetPricingDate.
func (p *Portfolio) Snapshot() *Snapshot { return p.snapshot }

// Diagnostics returns the fallbacks taken by the last SetPricingDate.
func (p *Portfolio) Diagnostics() diag.Log { return p.log }

// Bonds returns the bond book of the current snapshot.
func (p *Portfolio) Bonds() (*BondBook, error) {
	if p.snapshot == nil {
		return nil, ErrNotPriced
	}
	return p.Ledger.Bonds(p.snapshot), nil
}

// Options returns the option book of the current snapshot.
func (p *Portfolio) Options() (*OptionBook, error) {
	if p.snapshot == nil {
		return nil, ErrNotPriced
	}
	return p.Ledger.Options(p.snapshot), nil
}

// CashProjection returns the bond flows expected in (start, end] for the
// bonds held on the pricing date.
func (p *Portfolio) CashProjection(start, end date.Date) ([]ProjectedFlow, error) {
	b, err := p.Bonds()
	if err != nil {
		return nil, err
	}
	return b.CashProjection(start, end), nil
}

// Report renders a report with the portfolio generator.
func (p *Portfolio) Report(kind ReportKind) (string, error) {
	if p.snapshot == nil {
		return "", ErrNotPriced
	}
	if p.Reports == nil {
		return "", fmt.Errorf("no report generator for %s", kind)
	}
	return p.Reports.Generate(kind, p)
}
