// Package core holds the domain model shared by the parser, classifier,
// selection flow and aggregator.
//
// This file contains money parsing and formatting. Amounts are kept as
// integer cents; floats appear only at the display boundary.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (3.50) and comma (3,50)
// decimal separators are accepted; the comma is normalized to a dot.
// Only strictly positive amounts are valid.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
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
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// ParseMoney is the Money-typed convenience form of ParseDecimalToCents.
func ParseMoney(s string) (Money, error) {
	cents, err := ParseDecimalToCents(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: cents}, nil
}

// Euros returns the amount as a float64 for display and sheet cells.
// Calculations stay in cents.
func (m Money) Euros() float64 {
	return float64(m.Cents) / 100.0
}

// Decimal renders the amount as a plain decimal string ("3.50"), the form
// used inside selection payloads.
func (m Money) Decimal() string {
	neg := ""
	c := m.Cents
	if c < 0 {
		neg = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", neg, c/100, c%100)
}

// Format renders the amount for user-facing messages ("3.50€").
func (m Money) Format() string {
	return m.Decimal() + "€"
}
