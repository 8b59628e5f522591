/*

This file contains the pool-facing types: the pair description stored by a
liquidity pool and the live reserves it reports.

*/

package types

import (
	sdkmath "cosmossdk.io/math"
)

// PairType names the pricing curve of a pool.
type PairType struct {
	Xyk *struct{} `json:"xyk,omitempty"`
}

func XykPairType() PairType {
	return PairType{Xyk: &struct{}{}}
}

// PairInfo describes a pool contract and its share token.
type PairInfo struct {
	AssetInfos     AssetInfos `json:"asset_infos"`
	ContractAddr   string     `json:"contract_addr"`
	LiquidityToken string     `json:"liquidity_token"` // empty until the share token reply arrives
	PairType       PairType   `json:"pair_type"`
}

// PoolResponse holds the live reserves and the share supply, read at call time.
type PoolResponse struct {
	Assets     [2]Asset    `json:"assets"`
	TotalShare sdkmath.Int `json:"total_share"`
}

// BalanceCheck configures the optional balanced-deposit check of a pool:
// base prices in the market's base currency and decimals, in pool order.
type BalanceCheck struct {
	BasePrices [2]string `json:"base_prices"`
	Decimals   [2]uint8  `json:"decimals"`
}

// SimulateProvideResponse previews the shares a deposit would mint.
type SimulateProvideResponse struct {
	Share sdkmath.Int `json:"share"`
}

// SimulateWithdrawResponse previews the refund for burning shares.
type SimulateWithdrawResponse struct {
	Refund [2]Asset `json:"refund"`
}
