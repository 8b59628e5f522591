package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig())

	assert.Equal(t, DefaultMarketParameters, Market)
	assert.Equal(t, DefaultBech32Prefix, Bech32Prefix)
	assert.Equal(t, DefaultWebPort, WebPort)
	assert.False(t, DatabaseEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ZLL_ASSET_A", "cw20:CPA")
	t.Setenv("ZLL_LP_PHASE_BLOCKS", "10")
	t.Setenv("ZLL_BLOCK_INTERVAL", "250ms")
	t.Setenv("ZLL_BASE_PRICE_A", "250")
	t.Setenv("ZLL_BASE_PRICE_B", "1")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "6543")

	require.NoError(t, LoadConfig())

	assert.Equal(t, "cw20:CPA", Market.AssetA)
	assert.Equal(t, uint64(10), Market.LpPhaseBlocks)
	assert.Equal(t, 250*time.Millisecond, Market.BlockInterval)
	assert.True(t, Market.HasBalanceCheck())
	assert.True(t, DatabaseEnabled())
	assert.Equal(t, 6543, DBPort)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("ZLL_ALPHA", "-1")
	require.ErrorContains(t, LoadConfig(), "ZLL_ALPHA must be a valid uint64")

	t.Setenv("ZLL_ALPHA", "")
	t.Setenv("ZLL_BLOCK_INTERVAL", "0s")
	require.ErrorContains(t, LoadConfig(), "ZLL_BLOCK_INTERVAL must be a positive duration")

	t.Setenv("ZLL_BLOCK_INTERVAL", "")
	t.Setenv("ZLL_ASSET_B", "uluna")
	require.ErrorContains(t, LoadConfig(), "must differ")
}

func TestDecimalsOf(t *testing.T) {
	assert.Equal(t, 6, DecimalsOf("uusd"))
	assert.Equal(t, 18, DecimalsOf("wei"))
	assert.Equal(t, DefaultDenomDecimals, DecimalsOf("ukrw"))
}
