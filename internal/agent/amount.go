package agent

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// parseDecimal reads a native number as-is, or the first numeric run inside
// a string with thousands separators removed.
func parseDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		m := amountRegex.FindString(x)
		if m == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// ParseAmount resolves an entry amount. Only strictly positive values are
// accepted.
func ParseAmount(v any) (decimal.Decimal, bool) {
	d, ok := parseDecimal(v)
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
