package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/portfolio-analytics/diag"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// diagnostics writes a bullet list of fallbacks, nothing when there are none.
func diagnostics(w io.Writer, log diag.Log) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Diagnostics\n\n")
		for _, d := range log {
			fmt.Fprintf(w, "- %s\n", d.Error())
		}
		return len(log) > 0
	})
}

// pct formats a ratio, 0.0412 is "4.12%".
func pct(ratio float64) string { return fmt.Sprintf("%.2f%%", 100*ratio) }

// bp formats a decimal rate in basis points.
func bp(rate float64) string { return fmt.Sprintf("%.0f", 1e4*rate) }

// num formats a float with thousand separators and two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b bytes.Buffer
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if sign == "-" && b.String() == "0" && frac == ".00" {
		sign = ""
	}
	return sign + b.String() + frac
}
