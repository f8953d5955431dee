// Package counter animates numeric count-ups and formats their values.
package counter

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatNumber rounds v to an integer and abbreviates it: millions as "M",
// thousands as "K" (one decimal, half-up, trailing ".0" dropped), smaller
// values comma-grouped.
func FormatNumber(v float64) string {
	n := int64(math.Round(v))
	switch {
	case n >= 1_000_000:
		return abbreviate(n, 1_000_000, "M")
	case n >= 1_000:
		return abbreviate(n, 1_000, "K")
	default:
		return humanize.Comma(n)
	}
}

func abbreviate(n, div int64, suffix string) string {
	tenths := (n*10 + div/2) / div
	whole := tenths / 10
	frac := tenths % 10
	if frac == 0 {
		return strconv.FormatInt(whole, 10) + suffix
	}
	return strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(frac, 10) + suffix
}
