package currency

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code supported by the tracker.
type Currency string

const (
	KRW Currency = "KRW"
	USD Currency = "USD"
)

var ErrUnsupported = fmt.Errorf("unsupported currency")

func (c Currency) Valid() bool {
	return c == KRW || c == USD
}

// Parse returns KRW for an empty string.
func Parse(s string) (Currency, error) {
	if s == "" {
		return KRW, nil
	}

	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, s)
	}

	return c, nil
}

// ToKRW converts an amount in c to KRW using the USD→KRW rate.
func ToKRW(amount decimal.Decimal, c Currency, usdKRW decimal.Decimal) decimal.Decimal {
	if c == USD {
		return amount.Mul(usdKRW)
	}

	return amount
}

// Format renders an amount with the currency's symbol and minor-unit precision.
func Format(amount decimal.Decimal, c Currency) string {
	code := string(c)
	if code == "" {
		code = string(KRW)
	}

	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()

	return money.New(minor, code).Display()
}
