package query

import (
	"fmt"
	"math"
)

// FormatAmount renders a magnitude in Indian business notation: Crore above
// 1e7, Lakh above 1e5, Thousand above 1e3, plain rupees below. Purely
// presentational; the numeric value itself is never rounded for computation.
func FormatAmount(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 10_000_000:
		return fmt.Sprintf("₹%.1fCr", v/10_000_000)
	case abs >= 100_000:
		return fmt.Sprintf("₹%.1fL", v/100_000)
	case abs >= 1_000:
		return fmt.Sprintf("₹%.1fK", v/1_000)
	default:
		return fmt.Sprintf("₹%.0f", v)
	}
}

// FormatOptionalAmount formats a possibly-missing value; nil or non-numeric
// input renders as "N/A".
func FormatOptionalAmount(v any) string {
	f, ok := numericValue(v)
	if !ok {
		return "N/A"
	}
	return FormatAmount(f)
}
