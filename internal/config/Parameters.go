/*

This file contains the default parameters of a locally driven market.

They reproduce the lifecycle used by the end-to-end scenarios: a thousand
blocks per phase, a LUNA/UST pair and the chain's yearly block count.

*/

package config

import (
	"time"

	"github.com/elys-network/zll/internal/types"
)

const (
	DefaultBech32Prefix   = "zll"
	DefaultChainID        = "zll-local-1"
	DefaultMarketOperator = "market-operator"
	DefaultWebPort        = "8080"
	DefaultGRPCPort       = "9090"

	// DefaultStartHeight is the height the market is deployed at.
	DefaultStartHeight uint64 = 1_000
)

// DefaultMarketParameters is used for every variable that is not set.
var DefaultMarketParameters = types.MarketParameters{
	AssetA: "uluna", // Borrow side of the balance check and the collateral of the scenario.
	AssetB: "uusd",

	BlocksPerYear: 4_204_800, // 7.5s blocks.
	// Rationale: time to expiry is measured in years, so the AMM phase of a
	// short local market truncates to zero and interest stays zero.

	Alpha: 200_000_000_000, // Risk parameter of the oblivious put, kept for when pricing lands.

	LpPhaseBlocks:         1_000,
	AmmPhaseBlocks:        1_000,
	SettlementPhaseBlocks: 1_000,
	// Rationale: long enough for the scripted scenario to act in every phase,
	// short enough that SetHeight jumps stay cheap.

	BlockInterval: 5 * time.Second,

	// No balance check unless both prices are configured.
	BasePrices: [2]string{"", ""},
}
