package portfolio

import (
	"fmt"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
	"github.com/etnz/portfolio-analytics/option"
)

// AssetClass groups positions in the asset breakdown.
type AssetClass string

const (
	ClassBond    AssetClass = "bond"
	ClassEquity  AssetClass = "equity"
	ClassFund    AssetClass = "funds"
	ClassOption  AssetClass = "option"
	ClassCash    AssetClass = "cash"
	ClassUnknown AssetClass = "unknown"
)

// BondDef describes a bullet bond of the universe.
type BondDef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Currency  string    `json:"currency"`
	Maturity  date.Date `json:"maturity"`
	Coupon    float64   `json:"coupon"`              // annual, in percent points
	Frequency int       `json:"frequency,omitempty"` // months, 6 by default
	Country   string    `json:"country,omitempty"`
	Sector    string    `json:"sector,omitempty"`
	Rating    string    `json:"rating,omitempty"`
	Ranking   string    `json:"ranking,omitempty"`
}

// EquityDef describes a single name equity.
type EquityDef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Currency   string     `json:"currency"`
	AssetClass AssetClass `json:"assetClass,omitempty"`
}

// FundDef describes a collective investment, its asset class says what it is exposed to
// ("equities", "bonds", "funds").
type FundDef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Currency   string     `json:"currency"`
	AssetClass AssetClass `json:"assetClass,omitempty"`
}

// OptionDef describes a listed European option. The id is its OCC symbol.
type OptionDef struct {
	ID         string `json:"id"`
	Currency   string `json:"currency"`
	Underlying string `json:"underlying,omitempty"` // id of the spot price series, the symbol root by default
}

func (d *BondDef) validate() error {
	if d.ID == "" {
		return fmt.Errorf("bond without id: %w", diag.ErrInvalidInput)
	}
	if d.Frequency == 0 {
		d.Frequency = 6
	}
	if d.Frequency < 0 || 12%d.Frequency != 0 {
		return fmt.Errorf("bond %q: frequency %d months: %w", d.ID, d.Frequency, diag.ErrInvalidInput)
	}
	if d.Maturity.IsZero() {
		return fmt.Errorf("bond %q: missing maturity: %w", d.ID, diag.ErrInvalidInput)
	}
	if d.Currency == "" {
		return fmt.Errorf("bond %q: missing currency: %w", d.ID, diag.ErrInvalidInput)
	}
	return nil
}

func (d *EquityDef) validate() error {
	if d.ID == "" || d.Currency == "" {
		return fmt.Errorf("equity %q: id and currency are required: %w", d.ID, diag.ErrInvalidInput)
	}
	if d.AssetClass == "" {
		d.AssetClass = ClassEquity
	}
	return nil
}

func (d *FundDef) validate() error {
	if d.ID == "" || d.Currency == "" {
		return fmt.Errorf("fund %q: id and currency are required: %w", d.ID, diag.ErrInvalidInput)
	}
	if d.AssetClass == "" {
		d.AssetClass = ClassFund
	}
	return nil
}

// code checks the option symbol and returns it decoded.
func (d *OptionDef) code() (option.Code, error) {
	if d.Currency == "" {
		return option.Code{}, fmt.Errorf("option %q: missing currency: %w", d.ID, diag.ErrInvalidInput)
	}
	c, err := option.ParseCode(d.ID, date.Date{})
	if err != nil {
		return option.Code{}, err
	}
	if d.Underlying == "" {
		d.Underlying = c.Underlying
	}
	return c, nil
}
