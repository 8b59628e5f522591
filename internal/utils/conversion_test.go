package utils

import (
	"math"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplay(t *testing.T) {
	v, err := ToDisplay(sdkmath.NewInt(2_500_000), 6)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = ToDisplay(sdkmath.NewInt(42), 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	_, err = ToDisplay(sdkmath.NewInt(1), 19)
	assert.ErrorIs(t, err, ErrInvalidDecimals)
	_, err = ToDisplay(sdkmath.Int{}, 6)
	assert.ErrorIs(t, err, ErrAmountNil)
	_, err = ToDisplay(sdkmath.NewInt(-1), 6)
	assert.ErrorIs(t, err, ErrAmountNegative)
}

func TestFromDisplay(t *testing.T) {
	v, err := FromDisplay(2.5, 6)
	require.NoError(t, err)
	assert.Equal(t, sdkmath.NewInt(2_500_000), v)

	// 0.1 + 0.2 is not exactly 0.3 in binary
	v, err = FromDisplay(0.1+0.2, 6)
	require.NoError(t, err)
	assert.Equal(t, sdkmath.NewInt(300_000), v)

	v, err = FromDisplay(0.0000019, 6)
	require.NoError(t, err)
	assert.Equal(t, sdkmath.NewInt(1), v)

	v, err = FromDisplay(0, 6)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = FromDisplay(math.NaN(), 6)
	assert.ErrorIs(t, err, ErrNotFinite)
	_, err = FromDisplay(-1, 6)
	assert.ErrorIs(t, err, ErrAmountNegative)
	_, err = FromDisplay(1, 30)
	assert.ErrorIs(t, err, ErrInvalidDecimals)
}
