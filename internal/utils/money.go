package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a currency field from a request. Unparsable input is an
// explicit error, never a silent zero; an absent field should be handled by
// the caller with ParseAmountOrZero so the fallback stays documented.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "rp")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("nominal kosong")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("nominal tidak valid: %q", s)
	}
	return d, nil
}

// ParseAmountOrZero is the one sanctioned empty-field fallback: an empty
// string means zero, anything else must parse.
func ParseAmountOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}

// FormatRupiah renders an amount with thousand separators for PDF output.
func FormatRupiah(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	whole := amount.Abs().Round(0).BigInt().String()

	var out strings.Builder
	for i, c := range whole {
		if i != 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sRp%s", sign, out.String())
}
