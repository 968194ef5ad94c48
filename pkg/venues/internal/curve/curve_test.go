package curve

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulDiv(t *testing.T) {
	t.Parallel()
	v, ok := MulDivFloor(10, 3, 4)
	require.True(t, ok)
	assert.Equal(t, uint64(7), v)

	v, ok = MulDivCeil(10, 3, 4)
	require.True(t, ok)
	assert.Equal(t, uint64(8), v)

	v, ok = MulDivFloor(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, ok = MulDivFloor(math.MaxUint64, 2, 1)
	assert.False(t, ok)
	_, ok = MulDivCeil(1, 1, 0)
	assert.False(t, ok)
}

func TestConstantProduct(t *testing.T) {
	t.Parallel()
	// 1_000_000 x 1_000_000 pool, sell 1000: 1000*1e6/1_001_000 = 999.000999
	assert.Equal(t, uint64(999), ConstantProductOut(1_000_000, 1_000_000, 1000))
	assert.Equal(t, uint64(0), ConstantProductOut(0, 0, 0))

	in, ok := ConstantProductIn(1_000_000, 1_000_000, 999)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), in)
	assert.Equal(t, uint64(999), ConstantProductOut(1_000_000, 1_000_000, in))

	_, ok = ConstantProductIn(1_000_000, 1_000_000, 1_000_000)
	assert.False(t, ok)

	// ExactIn never pays out more than the reserve
	assert.Less(t, ConstantProductOut(1, 1_000_000, math.MaxUint64), uint64(1_000_000))
}

func TestRatio(t *testing.T) {
	t.Parallel()
	assert.True(t, decimal.RequireFromString("0.003").Equal(Ratio(30, 10000)))
	assert.True(t, Ratio(0, 5).IsZero())
	assert.True(t, Ratio(5, 0).IsZero())

	// denominators past the signed range
	r := Ratio(1, 1<<63)
	assert.True(t, r.IsPositive(), r.String())
	assert.True(t, decimal.RequireFromString("0.000000000000000000108420").Equal(r), r.String())
	assert.True(t, decimal.RequireFromString("0.5").Equal(Ratio(1<<62, 1<<63)))
	assert.True(t, decimal.NewFromInt(1).Equal(Ratio(math.MaxUint64, math.MaxUint64)))
}
