// Package curve holds the integer math shared by the reference venues.
package curve

import (
	"math/big"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"
)

// RatioPrecision is the number of decimal places kept by Ratio.
const RatioPrecision = 24

// MulDivFloor returns floor(a*b/c) and false when c is zero or the result does not fit
// in 64 bits.
func MulDivFloor(a, b, c uint64) (uint64, bool) {
	if c == 0 {
		return 0, false
	}
	q := uint128.From64(a).Mul64(b).Div64(c)
	if q.Hi != 0 {
		return 0, false
	}
	return q.Lo, true
}

// MulDivCeil returns ceil(a*b/c) and false when c is zero or the result does not fit
// in 64 bits.
func MulDivCeil(a, b, c uint64) (uint64, bool) {
	if c == 0 {
		return 0, false
	}
	q, r := uint128.From64(a).Mul64(b).QuoRem64(c)
	if r != 0 {
		q = q.Add64(1)
	}
	if q.Hi != 0 {
		return 0, false
	}
	return q.Lo, true
}

// ConstantProductOut is the output of selling in against reserves (src, dst) on an
// x*y=k curve, rounded down: floor(in*dst/(src+in)).
func ConstantProductOut(src, dst, in uint64) uint64 {
	den := uint128.From64(src).Add64(in)
	if den.IsZero() {
		return 0
	}
	return uint128.From64(in).Mul64(dst).Div(den).Lo
}

// ConstantProductIn is the input needed to buy out from reserves (src, dst), rounded
// up: ceil(src*out/(dst-out)). It reports false when out drains the pool or the input
// does not fit in 64 bits.
func ConstantProductIn(src, dst, out uint64) (uint64, bool) {
	if out >= dst {
		return 0, false
	}
	return MulDivCeil(src, out, dst-out)
}

// Ratio returns num/den as a decimal over the full u64 range, or zero when either side
// is zero.
func Ratio(num, den uint64) decimal.Decimal {
	if num == 0 || den == 0 {
		return decimal.Zero
	}
	n := decimal.NewFromBigInt(new(big.Int).SetUint64(num), 0)
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(den), 0)
	return n.DivRound(d, RatioPrecision)
}
