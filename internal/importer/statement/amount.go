package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountCleaner = strings.NewReplacer(",", "", "원", "", "₩", "", "$", "", " ", "", "\u00a0", "")

// parseAmount reads a statement amount such as "1,234,500", "-3,000원" or
// "(12.50)". Parentheses mean a negative value.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := amountCleaner.Replace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
