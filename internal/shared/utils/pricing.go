package utils

import (
	"fmt"
	"strings"
)

// FormatPrice formats the price for display based on currency code.
// The price parameter is expected to be in the smallest currency unit (cents).
// For example, 1999 would be €19,99 for EUR or $19.99 for USD.
func FormatPrice(price int64, currency string) string {
	units := price / 100
	cents := price % 100
	if cents < 0 {
		cents = -cents
	}

	switch strings.ToUpper(currency) {
	case "EUR":
		return fmt.Sprintf("%d,%02d €", units, cents)
	case "USD":
		return fmt.Sprintf("$%d.%02d", units, cents)
	case "GBP":
		return fmt.Sprintf("£%d.%02d", units, cents)
	default:
		return fmt.Sprintf("%d.%02d %s", units, cents, strings.ToUpper(currency))
	}
}
