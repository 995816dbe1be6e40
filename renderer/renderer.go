// Package renderer turns portfolio reports into markdown.
package renderer

import (
	"fmt"

	"github.com/etnz/portfolio-analytics"
)

// Markdown is the markdown report generator of a portfolio.
type Markdown struct{}

// Generate implements portfolio.ReportGenerator.
func (Markdown) Generate(kind portfolio.ReportKind, p *portfolio.Portfolio) (string, error) {
	switch kind {
	case portfolio.HoldingReport:
		return HoldingMarkdown(p.Snapshot()), nil
	case portfolio.BondsReport:
		b, err := p.Bonds()
		if err != nil {
			return "", err
		}
		return BondsMarkdown(b), nil
	case portfolio.OptionsReport:
		o, err := p.Options()
		if err != nil {
			return "", err
		}
		return OptionsMarkdown(o), nil
	case portfolio.CurveReport:
		return CurveMarkdown(p.Reference.Curve()), nil
	default:
		return "", fmt.Errorf("unknown report %s", kind)
	}
}

var _ portfolio.ReportGenerator = Markdown{}
