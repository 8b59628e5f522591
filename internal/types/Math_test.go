package types

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedAddOverflow(t *testing.T) {
	_, err := CheckedAdd(MaxUint128, sdkmath.OneInt())
	require.ErrorIs(t, err, ErrOverflow)

	sum, err := CheckedAdd(sdkmath.NewInt(2), sdkmath.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, "5", sum.String())
}

func TestCheckedSubUnderflow(t *testing.T) {
	_, err := CheckedSub(sdkmath.NewInt(2), sdkmath.NewInt(3))
	require.ErrorIs(t, err, ErrOverflow)
	assert.Contains(t, err.Error(), "cannot sub 3 from 2")
}

func TestCheckedMulOverflow(t *testing.T) {
	_, err := CheckedMul(MaxUint128, sdkmath.NewInt(2))
	require.ErrorIs(t, err, ErrOverflow)

	_, err = CheckedMul(MaxUint128.Mul(MaxUint128), MaxUint128)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedQuoByZero(t *testing.T) {
	_, err := CheckedQuo(sdkmath.NewInt(2), sdkmath.ZeroInt())
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestMultiplyRatioKeepsWideProduct(t *testing.T) {
	res, err := MultiplyRatio(MaxUint128, MaxUint128, MaxUint128)
	require.NoError(t, err)
	assert.True(t, res.Equal(MaxUint128))

	res, err = MultiplyRatio(sdkmath.NewInt(7), sdkmath.NewInt(3), sdkmath.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "10", res.String())

	_, err = MultiplyRatio(sdkmath.NewInt(7), sdkmath.NewInt(3), sdkmath.ZeroInt())
	require.ErrorIs(t, err, ErrDivideByZero)

	_, err = MultiplyRatio(MaxUint128, MaxUint128, sdkmath.OneInt())
	require.ErrorIs(t, err, ErrOverflow)
}

func TestPow10(t *testing.T) {
	res, err := Pow10(6)
	require.NoError(t, err)
	assert.Equal(t, "1000000", res.String())

	_, err = Pow10(38)
	require.NoError(t, err)

	_, err = Pow10(39)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestIsUint128(t *testing.T) {
	assert.True(t, IsUint128(MaxUint128))
	assert.False(t, IsUint128(MaxUint128.AddRaw(1)))
	assert.False(t, IsUint128(sdkmath.NewInt(-1)))
	assert.False(t, IsUint128(sdkmath.Int{}))
}
