package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Ptr returns a pointer to d, for optional amounts
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// SumOf sums the decimals selected from each element
func SumOf[T any](items []T, selector func(T) decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, item := range items {
		result = result.Add(selector(item))
	}
	return result
}

// SumOfOptional sums the non-nil decimals selected from each element.
// It returns nil when every selected value is nil.
func SumOfOptional[T any](items []T, selector func(T) *decimal.Decimal) *decimal.Decimal {
	var result *decimal.Decimal
	for _, item := range items {
		v := selector(item)
		if v == nil {
			continue
		}
		if result == nil {
			result = Ptr(Zero)
		}
		*result = result.Add(*v)
	}
	return result
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// FormatAmount renders money with exactly two fraction digits ("0.00").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatQuantity renders up to six fraction digits without trailing zeros ("0.######").
func FormatQuantity(d decimal.Decimal) string {
	return d.Round(6).String()
}

// FormatRate renders a currency rate with two to four fraction digits ("0.00##").
func FormatRate(d decimal.Decimal) string {
	r := d.Round(4)
	if r.Equal(r.Round(2)) {
		return r.StringFixed(2)
	}
	return r.String()
}

// FormatOrdered renders up to seven fraction digits without trailing zeros ("0.#######").
func FormatOrdered(d decimal.Decimal) string {
	return d.Round(7).String()
}
