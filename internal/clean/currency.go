package clean

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyNoisePattern = regexp.MustCompile(`[₹$€£,\s]`)
	amountSuffixPattern  = regexp.MustCompile(`(?i)^(-?\d+\.?\d*)\s*(K|M|B|Cr|L|Lakh|Lakhs|Crore|Crores)$`)
)

var suffixMultipliers = map[string]float64{
	"K":      1_000,
	"M":      1_000_000,
	"B":      1_000_000_000,
	"CR":     10_000_000,
	"CRORE":  10_000_000,
	"CRORES": 10_000_000,
	"L":      100_000,
	"LAKH":   100_000,
	"LAKHS":  100_000,
}

// NormalizeCurrency parses a currency or numeric value, tolerating currency
// glyphs, thousands separators, and Indian/Western magnitude suffixes
// ("1.2Cr", "2 Lakh", "1.5M"). Returns ok=false for blank or unparseable
// input; never panics.
func NormalizeCurrency(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, false
	}

	cleaned := currencyNoisePattern.ReplaceAllString(v, "")
	if cleaned == "" {
		return 0, false
	}

	multiplier := 1.0
	if m := amountSuffixPattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
		if mult, ok := suffixMultipliers[strings.ToUpper(m[2])]; ok {
			multiplier = mult
		}
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f * multiplier, true
}
