package option

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/etnz/portfolio-analytics/date"
	"github.com/etnz/portfolio-analytics/diag"
)

// occCode matches listed option symbols like SPY230317C00400000:
// underlying, expiry as YYMMDD, right, strike in thousandths.
var occCode = regexp.MustCompile(`^([A-Z]+)(\d{6})([CP])(\d{8})$`)

// Code is a decoded listed option symbol.
type Code struct {
	Underlying string
	Expiry     date.Date
	Right      Right
	Strike     float64
	Tenor      float64 // years from the pricing date to expiry
}

// ParseCode decodes a listed option symbol as of a pricing date.
func ParseCode(code string, on date.Date) (Code, error) {
	m := occCode.FindStringSubmatch(code)
	if m == nil {
		return Code{}, fmt.Errorf("option code %q does not match UNDERLYING+YYMMDD+C|P+STRIKE: %w", code, diag.ErrInvalidInput)
	}
	yy, _ := strconv.Atoi(m[2][0:2])
	mm, _ := strconv.Atoi(m[2][2:4])
	dd, _ := strconv.Atoi(m[2][4:6])
	if mm < 1 || mm > 12 || dd < 1 || dd > date.DaysIn(2000+yy, time.Month(mm)) {
		return Code{}, fmt.Errorf("option code %q has an invalid expiry %s: %w", code, m[2], diag.ErrInvalidInput)
	}
	expiry := date.New(2000+yy, time.Month(mm), dd)

	strike, _ := strconv.Atoi(m[4])

	right := Call
	if m[3] == "P" {
		right = Put
	}
	return Code{
		Underlying: m[1],
		Expiry:     expiry,
		Right:      right,
		Strike:     float64(strike) / 1000,
		Tenor:      float64(expiry.Sub(on)) / 365,
	}, nil
}

func (c Code) String() string {
	r := "C"
	if c.Right == Put {
		r = "P"
	}
	return fmt.Sprintf("%s%s%s%08d", c.Underlying, c.Expiry.Format("060102"), r, int(math.Round(c.Strike*1000)))
}
