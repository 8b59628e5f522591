package types

import (
	"time"
)

// MarketParameters describes the single market a node deploys and drives.
type MarketParameters struct {
	// AssetA and AssetB are native denoms, or "cw20:<SYMBOL>" for a token the
	// node creates itself. AssetA is the borrow side of the balance check.
	AssetA string
	AssetB string

	BlocksPerYear uint64
	Alpha         uint64

	// Phase lengths in blocks, counted from the market start height.
	LpPhaseBlocks         uint64
	AmmPhaseBlocks        uint64
	SettlementPhaseBlocks uint64

	BlockInterval time.Duration

	// BasePrices enables the balanced-deposit check when both are set.
	BasePrices [2]string
}

// PhasesFrom lays the phase lengths out from a start height.
func (p MarketParameters) PhasesFrom(startedAt uint64) (MarketPhasesInfo, error) {
	lpEnds := startedAt + p.LpPhaseBlocks
	ammEnds := lpEnds + p.AmmPhaseBlocks
	return NewMarketPhasesInfo(startedAt, lpEnds, ammEnds, ammEnds+p.SettlementPhaseBlocks)
}

// HasBalanceCheck reports whether both base prices are configured.
func (p MarketParameters) HasBalanceCheck() bool {
	return p.BasePrices[0] != "" && p.BasePrices[1] != ""
}
