package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "€", "", "EUR", "", "eur", "")

// ParseAmount reads a bank or user supplied amount. It accepts both decimal
// separators ("1.234,56", "1,234.56", "-12,5") and a trailing minus sign.
// Unlike a float parse, failure is reported instead of yielding zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = amountNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, &ParseError{Input: raw, Reason: "empty amount"}
	}
	if strings.HasSuffix(s, "-") && !strings.HasPrefix(s, "-") {
		s = "-" + strings.TrimSuffix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseError{Input: raw, Reason: "not a number"}
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals. Rounding only happens here.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
