package unitconv

import (
	"math"
	"strconv"
)

// Decimal places kept in conversion results.
const (
	LinearPrecision      = 10
	TemperaturePrecision = 4
)

// Round rounds v to places decimal digits. The exact binary value of v is
// rounded, ties going to even, so 2.675 (stored as 2.67499...) rounds to 2.67.
// NaN and ±Inf are returned as is.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatValue renders a result in plain decimal notation with the fewest
// digits that parse back to the same float64. Exponents are never used.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
