package view

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber renders v the way a browser stringifies a number: shortest
// round-trip decimal, exponent notation outside [1e-6, 1e21).
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if sign == "-" {
			return mant + "e-" + digits
		}
		return mant + "e+" + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
