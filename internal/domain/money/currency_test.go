package money_test

import (
	"testing"

	"github.com/jhoicas/Timesheet-api/internal/domain/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCurrency(t *testing.T) {
	code, err := money.NormalizeCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	code, err = money.NormalizeCurrency(" BRL ")
	require.NoError(t, err)
	assert.Equal(t, "BRL", code)

	_, err = money.NormalizeCurrency("XYZW")
	assert.Error(t, err)
	_, err = money.NormalizeCurrency("")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := money.Format(decimal.RequireFromString("1234.5"), "USD")
	assert.Contains(t, out, "USD ")
	assert.Contains(t, out, "234")
}

func TestFitsScale(t *testing.T) {
	for _, v := range []string{"1", "1.5", "1.25", "1.2500", "0.01"} {
		assert.True(t, money.FitsScale(decimal.RequireFromString(v)), v)
	}
	for _, v := range []string{"1.333", "0.004", "12.345"} {
		assert.False(t, money.FitsScale(decimal.RequireFromString(v)), v)
	}
}
