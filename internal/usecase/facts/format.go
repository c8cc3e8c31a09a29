package facts

import (
	"math"
	"strconv"
	"strings"
)

// money renders a dollar amount with thousands separators and two decimals,
// e.g. 1234567.5 -> "$1,234,567.50".
func money(v float64) string {
	return "$" + commaFloat(v)
}

// commaFloat formats v with two decimals and comma-grouped integer digits.
func commaFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	grouped := groupDigits(s[:dot]) + s[dot:]
	if neg {
		return "-" + grouped
	}
	return grouped
}

// commaInt formats n with comma-grouped digits.
func commaInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	grouped := groupDigits(s)
	if neg {
		return "-" + grouped
	}
	return grouped
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// round2 rounds to two decimal places, halves away from zero being close
// enough for display-grade price data.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// orNone renders an optional string the way the reports expect missing
// values to look.
func orNone(p *string) string {
	if p == nil {
		return "None"
	}
	return *p
}
