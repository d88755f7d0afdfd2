// Package sigfig truncates floating point values to a number of significant figures.
//
// Truncation works on the shortest decimal representation that round-trips the
// value, so binary noise such as 0.29 being stored as 0.28999999999999998 does not
// drop a digit. The result is always rounded toward zero.
package sigfig

import (
	"math"
	"strconv"
	"strings"
)

// Truncate returns value truncated toward zero to digits significant figures.
// Zero, NaN and infinite values are returned unchanged, as is any value when digits is 0.
func Truncate(value float64, digits uint) float64 {
	if digits == 0 || value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}

	// d.dddde±XX
	formatted := strconv.FormatFloat(value, 'e', -1, 64)

	mantissa, exponent, _ := strings.Cut(formatted, "e")

	negative := strings.HasPrefix(mantissa, "-")
	mantissa = strings.TrimPrefix(mantissa, "-")

	significand := strings.Replace(mantissa, ".", "", 1)
	if len(significand) <= int(digits) {
		return value
	}

	significand = significand[:digits]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}

	b.WriteString(significand[:1])

	if len(significand) > 1 {
		b.WriteByte('.')
		b.WriteString(significand[1:])
	}

	b.WriteByte('e')
	b.WriteString(exponent)

	truncated, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return value
	}

	return truncated
}
