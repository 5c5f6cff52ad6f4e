package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/canopy/internal/constants"
)

// FormatMinor renders an amount of minor units as a major-unit decimal
// string, e.g. 1050 -> "10.50".
func FormatMinor(minor int64) string {
	return decimal.New(minor, -constants.MinorUnitDigits).StringFixed(constants.MinorUnitDigits)
}

// ParseMinor parses a major-unit amount ("150", "150.5", "150.50") into
// minor units. More decimal places than the currency carries is an error.
func ParseMinor(amountStr string) (int64, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	shifted := d.Shift(constants.MinorUnitDigits)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", amountStr, constants.MinorUnitDigits)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount too large: %s", amountStr)
	}
	return shifted.IntPart(), nil
}
