package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/decimal"
)

func TestFromInt(t *testing.T) {
	d := decimal.FromInt(100000)
	assert.True(t, d.Equal(dec.NewFromInt(100000)))
}

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestMustFromString(t *testing.T) {
	d := decimal.MustFromString("999.99")
	assert.True(t, d.Equal(dec.RequireFromString("999.99")))

	assert.Panics(t, func() {
		decimal.MustFromString("invalid")
	})
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.NewFromInt(100),
		dec.NewFromInt(200),
		dec.NewFromInt(300),
	}
	result := decimal.Sum(values)
	assert.True(t, result.Equal(dec.NewFromInt(600)))
}

func TestSum_Empty(t *testing.T) {
	result := decimal.Sum([]dec.Decimal{})
	assert.True(t, result.IsZero())
}

func TestSumOf(t *testing.T) {
	type row struct{ amount dec.Decimal }
	rows := []row{
		{dec.RequireFromString("100.10")},
		{dec.RequireFromString("0.90")},
	}

	result := decimal.SumOf(rows, func(r row) dec.Decimal { return r.amount })
	assert.True(t, result.Equal(dec.NewFromInt(101)))
}

func TestSumOfOptional(t *testing.T) {
	type row struct{ vat *dec.Decimal }

	t.Run("all nil", func(t *testing.T) {
		result := decimal.SumOfOptional([]row{{}, {}}, func(r row) *dec.Decimal { return r.vat })
		assert.Nil(t, result)
	})

	t.Run("mixed", func(t *testing.T) {
		rows := []row{{decimal.Ptr(dec.NewFromInt(20))}, {}, {decimal.Ptr(dec.NewFromInt(5))}}
		result := decimal.SumOfOptional(rows, func(r row) *dec.Decimal { return r.vat })
		require.NotNil(t, result)
		assert.True(t, result.Equal(dec.NewFromInt(25)))
	})
}

func TestIsPositive(t *testing.T) {
	assert.True(t, decimal.IsPositive(dec.NewFromInt(1)))
	assert.False(t, decimal.IsPositive(dec.Zero))
	assert.False(t, decimal.IsPositive(dec.NewFromInt(-1)))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"100000", "100000.00"},
		{"20000.5", "20000.50"},
		{"0", "0.00"},
		{"12.345", "12.35"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, decimal.FormatAmount(dec.RequireFromString(tt.input)))
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10", "10"},
		{"1.500", "1.5"},
		{"0.1234567", "0.123457"},
		{"3.000000", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, decimal.FormatQuantity(dec.RequireFromString(tt.input)))
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"75", "75.00"},
		{"75.5", "75.50"},
		{"75.123", "75.123"},
		{"75.1234", "75.1234"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, decimal.FormatRate(dec.RequireFromString(tt.input)))
		})
	}
}

func TestFormatOrdered(t *testing.T) {
	assert.Equal(t, "12.5", decimal.FormatOrdered(dec.RequireFromString("12.5000000")))
	assert.Equal(t, "0.1234568", decimal.FormatOrdered(dec.RequireFromString("0.12345678")))
}
