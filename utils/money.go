package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParsePriceCents converts a display price such as "$1,234.50" into cents.
// An empty string is a zero price.
func ParsePriceCents(s string) (int64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid price %q: negative", s)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// FormatCents renders cents as a fixed two-decimal string, e.g. 1250 -> "12.50".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatUSD renders cents with a dollar sign, e.g. 1250 -> "$12.50".
func FormatUSD(cents int64) string {
	return "$" + FormatCents(cents)
}
