// Package diag defines the error taxonomy shared by the analytics packages.
//
// The analytics never fail on a missing price, a solver that runs out of
// iterations or a zero total: they substitute a documented fallback value and
// record what happened in a Log returned alongside the result. Only invalid
// inputs are returned as errors, wrapping ErrInvalidInput.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	InvalidInput Kind = iota
	MissingPriceData
	NonConvergence
	DivisionByZero
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingPriceData = errors.New("missing price data")
	ErrNonConvergence   = errors.New("solver did not converge")
	ErrDivisionByZero   = errors.New("division by zero")
)

// Err returns the sentinel error matching the kind.
func (k Kind) Err() error {
	switch k {
	case InvalidInput:
		return ErrInvalidInput
	case MissingPriceData:
		return ErrMissingPriceData
	case NonConvergence:
		return ErrNonConvergence
	case DivisionByZero:
		return ErrDivisionByZero
	default:
		panic(fmt.Sprintf("unknown diagnostic kind %d", k))
	}
}

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case MissingPriceData:
		return "MissingPriceData"
	case NonConvergence:
		return "NonConvergence"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic records one fallback taken while computing a value.
type Diagnostic struct {
	Kind    Kind
	Subject string // instrument id, currency, curve tenor...
	Detail  string
}

// Error makes a Diagnostic usable as an error that matches its kind sentinel with errors.Is.
func (d Diagnostic) Error() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Subject, d.Kind.Err())
	}
	return fmt.Sprintf("%s: %s: %s", d.Subject, d.Kind.Err(), d.Detail)
}

func (d Diagnostic) Unwrap() error { return d.Kind.Err() }

// Log is an ordered list of diagnostics. The zero value is ready to use.
type Log []Diagnostic

// Add appends a diagnostic.
func (l *Log) Add(kind Kind, subject, format string, args ...any) {
	*l = append(*l, Diagnostic{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)})
}

// Merge appends all diagnostics of other, prefixing their subject when prefix is not empty.
func (l *Log) Merge(prefix string, other Log) {
	for _, d := range other {
		if prefix != "" {
			if d.Subject == "" {
				d.Subject = prefix
			} else {
				d.Subject = prefix + "/" + d.Subject
			}
		}
		*l = append(*l, d)
	}
}

// Count returns the number of diagnostics of a given kind.
func (l Log) Count(kind Kind) int {
	n := 0
	for _, d := range l {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Has reports whether the log contains at least one diagnostic of the given kind.
func (l Log) Has(kind Kind) bool { return l.Count(kind) > 0 }

// Err joins all diagnostics into one error, nil if the log is empty.
func (l Log) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errors.Join(errs...)
}

func (l Log) String() string {
	var b strings.Builder
	for _, d := range l {
		b.WriteString(d.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
