// Package format provides display formatting helpers for naira amounts,
// phone numbers, and reporting date ranges.
package format

import (
	"fmt"
	"math"
	"strings"
)

// NairaSign is the currency prefix used across all amount formatters.
const NairaSign = "₦"

// NairaCompact renders an amount in the short dashboard style: amounts under
// one thousand are shown whole, larger amounts are truncated to one decimal
// with a K/M/B suffix. Truncation, not rounding: ₦1,980 renders as ₦1.9K.
func NairaCompact(amount float64) string {
	neg := ""
	if amount < 0 {
		neg = "-"
		amount = -amount
	}

	switch {
	case amount < 1_000:
		return fmt.Sprintf("%s%s%d", neg, NairaSign, int64(amount))
	case amount < 1_000_000:
		return neg + NairaSign + trimZero(truncate1(amount/1_000)) + "K"
	case amount < 1_000_000_000:
		return neg + NairaSign + trimZero(truncate1(amount/1_000_000)) + "M"
	default:
		return neg + NairaSign + trimZero(truncate1(amount/1_000_000_000)) + "B"
	}
}

// NairaPrecise renders an amount in the report style: two decimals, rounded,
// with a K/M/B suffix. Amounts under one thousand are shown whole.
func NairaPrecise(amount float64) string {
	neg := ""
	if amount < 0 {
		neg = "-"
		amount = -amount
	}

	switch {
	case amount < 1_000:
		return fmt.Sprintf("%s%s%d", neg, NairaSign, int64(amount))
	case amount < 1_000_000:
		return fmt.Sprintf("%s%s%.2fK", neg, NairaSign, amount/1_000)
	case amount < 1_000_000_000:
		return fmt.Sprintf("%s%s%.2fM", neg, NairaSign, amount/1_000_000)
	default:
		return fmt.Sprintf("%s%s%.2fB", neg, NairaSign, amount/1_000_000_000)
	}
}

// NairaFull renders an amount with thousands separators and two decimals,
// for invoice and payment detail views.
func NairaFull(amount float64) string {
	neg := ""
	if amount < 0 {
		neg = "-"
		amount = -amount
	}

	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	return fmt.Sprintf("%s%s%s.%02d", neg, NairaSign, group(whole), frac)
}

// truncate1 drops everything past the first decimal place.
func truncate1(v float64) string {
	return fmt.Sprintf("%.1f", math.Trunc(v*10)/10)
}

// trimZero strips a trailing ".0" so 1.0K renders as 1K.
func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// group inserts comma separators into a non-negative integer.
func group(n int64) string {
	s := fmt.Sprintf("%d", n)
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
