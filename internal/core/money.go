// Package core holds the expense domain model shared by the ledger,
// aggregator and draft layers: money handling, the category enumeration,
// payload validation and the failure taxonomy.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency amount in cents. Calculations stay in integer cents;
// the decimal form exists only at the wire and display boundaries.
type Money struct {
	Cents int64
}

// FromFloat converts a decimal amount (as received on the wire) to cents
// with half-up rounding.
func FromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Float returns the decimal value for wire encoding and display.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// MarshalJSON encodes the amount as a plain JSON number, matching the
// remote contract ("amount": 12.34).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts any JSON number. Range checks happen during
// validation, not here.
func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", string(b), err)
	}
	*m = FromFloat(v)
	return nil
}

// ParseAmount converts user-entered text to cents. It accepts both dot and
// comma decimal separators and applies half-up rounding on the third decimal
// place. Signs, zero and non-numeric input are rejected: an expense amount
// is always strictly positive.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, &ValidationError{Fields: []string{FieldAmount}}
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, &ValidationError{Fields: []string{FieldAmount}}
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, &ValidationError{Fields: []string{FieldAmount}}
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, &ValidationError{Fields: []string{FieldAmount}}
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, &ValidationError{Fields: []string{FieldAmount}}
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, &ValidationError{Fields: []string{FieldAmount}}
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, &ValidationError{Fields: []string{FieldAmount}}
	}
	return Money{Cents: cents}, nil
}
