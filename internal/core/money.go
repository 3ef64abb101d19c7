// Package core implements the income statement calculation engine.
//
// This file contains numeric coercion and currency formatting. Form values
// arrive as free-text strings; this layer turns them into safe, non-negative
// numbers and renders derived figures as USD. It never returns errors: a
// value that cannot be parsed contributes zero.
package core

import (
	"math"
	"strconv"
	"strings"
)

// roundEpsilon counters binary floating-point truncation before rounding,
// so values like 1.005 round up instead of sitting just below the boundary.
const roundEpsilon = 1e-9

// Amount pairs a monetary value with its USD rendering. Every derived figure
// in a Statement is an Amount; the JSON shape {"value", "formatted"} is a
// wire contract relied on by stored statements and must not change.
type Amount struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// USD builds an Amount from n, rounding the value to two decimals.
func USD(n float64) Amount {
	v := RoundTwo(n)
	return Amount{Value: v, Formatted: FormatUSD(v)}
}

// SafeNumber converts a raw form value to a non-negative number.
// Empty strings and unparseable input yield 0; negative values are clamped
// to 0 rather than rejected, so a half-filled form never fails.
func SafeNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// RoundTwo rounds n to two decimals, half-up, nudged by an epsilon to
// counter float drift (0.1+0.2 style artifacts).
func RoundTwo(n float64) float64 {
	if n < 0 {
		return -math.Round((-n+roundEpsilon)*100) / 100
	}
	return math.Round((n+roundEpsilon)*100) / 100
}

// FormatUSD renders n as USD with en-US digit grouping and exactly two
// fraction digits, e.g. 1234.5 -> "$1,234.50" and -200 -> "-$200.00".
func FormatUSD(n float64) string {
	n = RoundTwo(n)
	neg := math.Signbit(n) && n != 0
	if neg {
		n = -n
	}
	s := strconv.FormatFloat(n, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent renders a ratio percentage with one decimal and a % suffix.
func FormatPercent(n float64) string {
	return strconv.FormatFloat(n, 'f', 1, 64) + "%"
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
// Ratio computations must never propagate NaN or Inf into a statement.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
