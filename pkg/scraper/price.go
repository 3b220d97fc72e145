package scraper

import (
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// stripSpaces removes all whitespace, including the non-breaking and narrow
// no-break spaces Polish shops use as thousands separators.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseSplitPrice combines an integer part and a fractional part ("1299",
// "99") into a price.
func ParseSplitPrice(whole, fraction string) (decimal.Decimal, error) {
	whole = stripSpaces(whole)
	fraction = stripSpaces(fraction)
	if fraction == "" {
		fraction = "00"
	}
	return parsePrice(whole + "." + fraction)
}

// ParseGroupedPrice parses prices written like "1 234,56".
func ParseGroupedPrice(text string) (decimal.Decimal, error) {
	return parsePrice(strings.ReplaceAll(stripSpaces(text), ",", "."))
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" || strings.HasPrefix(s, ".") {
		return decimal.Zero, eris.Errorf("parse price %q: no digits", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, eris.Wrapf(err, "parse price %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, eris.Errorf("parse price %q: negative", s)
	}
	return d, nil
}
