package quaver

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber evaluates a literal parameter. Suffixes convert to the units
// the catalog works in: Hz for frequencies, seconds for durations and linear
// gain for decibels. A single a/b fraction is allowed.
func parseNumber(expr string) (n float64, ok bool) {
	for _, t := range []struct {
		suffix string
		conv   func(float64) float64
	}{
		{"khz", func(n float64) float64 { return n * 1e3 }},
		{"hz", nil},
		{"ms", func(n float64) float64 { return n / 1e3 }},
		{"db", func(n float64) float64 { return math.Pow(10, n/20) }}, // 0db = 1
		{"s", nil},
	} {
		if len(expr) <= len(t.suffix) || !strings.HasSuffix(expr, t.suffix) {
			continue
		}
		if n, ok = evaluateExpr(expr[:len(expr)-len(t.suffix)]); !ok {
			return 0, false
		}
		if t.conv != nil {
			n = t.conv(n)
		}
		return finite(n)
	}
	if n, ok = evaluateExpr(expr); !ok {
		return 0, false
	}
	return finite(n)
}

func finite(n float64) (float64, bool) {
	if math.IsInf(n, 0) || n != n {
		return 0, false
	}
	return n, true
}

// evaluateExpr handles a plain float or a single division such as 1/3.
func evaluateExpr(expr string) (float64, bool) {
	if n, err := strconv.ParseFloat(expr, 64); err == nil {
		return n, true
	}
	num, den, found := strings.Cut(expr, "/")
	if !found {
		return 0, false
	}
	a, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	b, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, false
	}
	return a / b, true
}
