package conv

import "github.com/ericlagergren/decimal"

// Amounts are decimal(36,18) in the database but every aggregate the admin
// surfaces is quantized to 8 fractional digits, truncated toward zero.
const AmountPrecision = 8

var zeroRounded decimal.Big

func init() {
	zeroRounded = decimal.Big{}
	zeroRounded.Context = decimal.Context128
	zeroRounded.Context.RoundingMode = decimal.ToZero
	zeroRounded.Quantize(AmountPrecision)
}

// NewDecimalWithPrecision returns a zero amount carrying the shared context.
func NewDecimalWithPrecision() *decimal.Big {
	z := zeroRounded
	return &z
}

// CloneToPrecision copies the given amount and quantizes the copy.
func CloneToPrecision(amount *decimal.Big) *decimal.Big {
	dec := &decimal.Big{}
	dec.Context = decimal.Context128
	dec.Context.RoundingMode = decimal.ToZero
	dec.Copy(amount)
	dec.Quantize(AmountPrecision)
	return dec
}

// RoundToPrecision quantizes the amount in place.
func RoundToPrecision(amount *decimal.Big) *decimal.Big {
	amount.Context = decimal.Context128
	amount.Context.RoundingMode = decimal.ToZero
	amount.Quantize(AmountPrecision)
	return amount
}

// Sum folds the given amounts into a fresh decimal. A nil element counts
// as zero, so scan results of empty aggregates can be passed through as is.
func Sum(amounts ...*decimal.Big) *decimal.Big {
	total := NewDecimalWithPrecision()
	for _, a := range amounts {
		if a == nil {
			continue
		}
		total.Add(total, a)
	}
	return total
}
