package actionable

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money renders a whole-dollar amount with thousands separators, e.g. $12,346.
func Money(v float64) string {
	return printer.Sprintf("$%d", decimal.NewFromFloat(finite(v)).Round(0).IntPart())
}

// Percent renders a whole percentage, e.g. 67%.
func Percent(v float64) string {
	return decimal.NewFromFloat(finite(v)).Round(0).String() + "%"
}

// finite maps NaN and ±Inf to 0; decimal cannot represent them.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatNumber abbreviates large numbers with K/M suffixes.
func FormatNumber(num float64, prefix, suffix string) string {
	switch {
	case num >= 1_000_000:
		return fmt.Sprintf("%s%.1fM%s", prefix, num/1_000_000, suffix)
	case num >= 1_000:
		return fmt.Sprintf("%s%.1fK%s", prefix, num/1_000, suffix)
	default:
		return fmt.Sprintf("%s%.0f%s", prefix, num, suffix)
	}
}

func fill(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
