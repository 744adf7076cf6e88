package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

func TestParse(t *testing.T) {
	c, err := currency.Parse("")
	require.NoError(t, err)
	assert.Equal(t, currency.KRW, c)

	c, err = currency.Parse("USD")
	require.NoError(t, err)
	assert.Equal(t, currency.USD, c)

	_, err = currency.Parse("EUR")
	assert.ErrorIs(t, err, currency.ErrUnsupported)
}

func TestToKRW(t *testing.T) {
	rate := decimal.NewFromInt(1400)

	got := currency.ToKRW(decimal.NewFromInt(10), currency.USD, rate)
	assert.True(t, got.Equal(decimal.NewFromInt(14000)))

	got = currency.ToKRW(decimal.NewFromInt(10), currency.KRW, rate)
	assert.True(t, got.Equal(decimal.NewFromInt(10)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$12.50", currency.Format(decimal.RequireFromString("12.5"), currency.USD))
	assert.Contains(t, currency.Format(decimal.NewFromInt(1500), currency.KRW), "1,500")
}
