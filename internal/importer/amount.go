package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseNumber reads both "1.234,56" and "1,234.56". When only one separator
// kind is present it is the decimal mark unless it repeats.
func parseNumber(s string) (float64, error) {
	clean := strings.NewReplacer(" ", "", "\u00a0", "", "'", "").Replace(strings.TrimSpace(s))

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			clean = european(clean)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") > 1 {
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.Replace(clean, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}

func european(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ",", ".")
}
