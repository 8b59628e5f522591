package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhasesFrom(t *testing.T) {
	params := MarketParameters{LpPhaseBlocks: 1_000, AmmPhaseBlocks: 1_000, SettlementPhaseBlocks: 1_000}

	phases, err := params.PhasesFrom(1_000)
	require.NoError(t, err)
	assert.Equal(t, MarketPhasesInfo{
		MarketStartedAt:       1_000,
		LpPhaseEndsAt:         2_000,
		AmmPhaseEndsAt:        3_000,
		SettlementPhaseEndsAt: 4_000,
	}, phases)

	params.AmmPhaseBlocks = 0
	_, err = params.PhasesFrom(1_000)
	require.ErrorIs(t, err, ErrInvalidPhases)
}

func TestHasBalanceCheck(t *testing.T) {
	assert.False(t, MarketParameters{}.HasBalanceCheck())
	assert.False(t, MarketParameters{BasePrices: [2]string{"1", ""}}.HasBalanceCheck())
	assert.True(t, MarketParameters{BasePrices: [2]string{"250", "1"}}.HasBalanceCheck())
}
