// Package core holds the transaction domain model shared by every other
// package: signed money amounts, validation, and calendar math.
//
// This file contains amount parsing and formatting. Amounts arrive from
// forms, JSON payloads, and bank CSV exports in a handful of shapes
// ("-42.50", "$1,160.78", "(42.50)") and are normalized to signed cents.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string to signed cents with half-up
// rounding on the third decimal place.
//
// Accepted forms: an optional leading "+" or "-", an optional "$" sign,
// thousands separators, and accounting-style parentheses for negatives.
//
// Examples:
//
//	ParseAmount("12.34")      -> 1234
//	ParseAmount("-42.50")     -> -4250
//	ParseAmount("$1,160.78")  -> 116078
//	ParseAmount("(3.00)")     -> -300
//	ParseAmount("12.346")     -> 1235 (rounds up)
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	switch {
	case strings.HasPrefix(s, "-"):
		neg = !neg
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
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
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
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
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
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
	if neg {
		cents = -cents
	}
	return cents, nil
}

// ParseAmountFloat converts a dollar value to signed cents with half-up
// rounding. NaN and infinities are rejected.
func ParseAmountFloat(dollars float64) (int64, error) {
	if dollars != dollars || dollars > float64(1<<62)/100 || dollars < -float64(1<<62)/100 {
		return 0, ErrInvalidAmount
	}
	cents := dollars * 100
	if cents >= 0 {
		return int64(cents + 0.5), nil
	}
	return int64(cents - 0.5), nil
}

// Dollars returns the dollar value as a float64 for JSON payloads and
// display. Use cents for arithmetic.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// Abs returns the non-negative magnitude.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// FormatUSD renders the absolute magnitude with a dollar sign and
// thousands grouping, e.g. "$1,234.56". Direction is never encoded here.
func (m Money) FormatUSD() string {
	cents := m.Cents
	if cents < 0 {
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100
	return "$" + groupThousands(dollars) + "." + pad2(rem)
}

// FormatSignedUSD renders the magnitude with an explicit leading sign:
// "+" for non-negative amounts, "-" otherwise.
func (m Money) FormatSignedUSD() string {
	if m.Cents < 0 {
		return "-" + m.FormatUSD()
	}
	return "+" + m.FormatUSD()
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
