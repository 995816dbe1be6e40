package portfolio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// scanLines calls decode for every non empty line of a JSONL stream and
// joins the errors, each prefixed by its line number.
func scanLines(r io.Reader, decode func(line []byte) error) error {
	var errs []error
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}
		if err := decode(line); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", n, err))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DecodeTrades reads a trade blotter, one JSON trade per line.
func DecodeTrades(r io.Reader) ([]Trade, error) {
	var trades []Trade
	err := scanLines(r, func(line []byte) error {
		var t Trade
		if err := json.Unmarshal(line, &t); err != nil {
			return err
		}
		trades = append(trades, t)
		return nil
	})
	return trades, err
}

// amountCmd is a specialized struct to read an amount in two fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money { return M(a.Amount, a.Currency) }

// DecodeCash reads a cash blotter, one JSON movement per line.
func DecodeCash(r io.Reader) ([]CashMovement, error) {
	var cash []CashMovement
	err := scanLines(r, func(line []byte) error {
		var temp struct {
			amountCmd
			Date    date.Date `json:"date"`
			Account string    `json:"account"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return err
		}
		cash = append(cash, CashMovement{Date: temp.Date, Amount: temp.Money(), Account: temp.Account})
		return nil
	})
	return cash, err
}

// DecodeSecurities reads instrument definitions into ref. Each line is a
// definition with a "type" of bond, equity, fund or option.
func DecodeSecurities(r io.Reader, ref *ReferenceData) error {
	return scanLines(r, func(line []byte) error {
		var identifier struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return fmt.Errorf("could not identify security type: %w", err)
		}
		switch identifier.Type {
		case "bond":
			var d BondDef
			if err := json.Unmarshal(line, &d); err != nil {
				return err
			}
			return ref.AddBond(d)
		case "equity":
			var d EquityDef
			if err := json.Unmarshal(line, &d); err != nil {
				return err
			}
			return ref.AddEquity(d)
		case "fund":
			var d FundDef
			if err := json.Unmarshal(line, &d); err != nil {
				return err
			}
			return ref.AddFund(d)
		case "option":
			var d OptionDef
			if err := json.Unmarshal(line, &d); err != nil {
				return err
			}
			return ref.AddOption(d)
		default:
			return fmt.Errorf("unknown security type %q", identifier.Type)
		}
	})
}

// DecodePrices reads closing prices into ref, one {"id","on","price"} per line.
func DecodePrices(r io.Reader, ref *ReferenceData) error {
	return scanLines(r, func(line []byte) error {
		var p struct {
			ID    string    `json:"id"`
			On    date.Date `json:"on"`
			Price float64   `json:"price"`
		}
		if err := json.Unmarshal(line, &p); err != nil {
			return err
		}
		if p.ID == "" || p.On.IsZero() {
			return fmt.Errorf("price %s: id and date are required", line)
		}
		ref.AddPrice(p.ID, p.On, p.Price)
		return nil
	})
}

// EncodePositions writes the positions of a snapshot, one JSON object per line.
func EncodePositions(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	for _, p := range s.Positions {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding position %q: %w", p.ID, err)
		}
	}
	return nil
}
