/*

Wire messages of the market and the liquidity pool. Every enum follows the
externally tagged JSON form: `{"variant": {...fields}}`, with exactly one
variant set per message. Payloads naming several variants fail to decode.

*/

package types

import (
	sdkmath "cosmossdk.io/math"
)

// MarketInstantiateMsg creates a market and, through a sub-message, its pool.
type MarketInstantiateMsg struct {
	MarketOperator           string           `json:"market_operator"`
	LiquidityPoolCodeID      uint64           `json:"liquidity_pool_code_id"`
	LiquidityPoolTokenCodeID uint64           `json:"liquidity_pool_token_code_id"`
	AssetInfos               AssetInfos       `json:"asset_infos"`
	MarketPhasesInfo         MarketPhasesInfo `json:"market_phases_info"`
	BlocksPerYear            uint64           `json:"blocks_per_year"`
	Alpha                    uint64           `json:"alpha"`
	BalanceCheck             *BalanceCheck    `json:"balance_check,omitempty"`
}

type MarketExecuteMsg struct {
	Borrow *BorrowMsg `json:"borrow,omitempty"`
}

type BorrowMsg struct {
	ExpectedBorrow    Asset `json:"expected_borrow"`
	PledgedCollateral Asset `json:"pledged_collateral"`
}

type MarketQueryMsg struct {
	GetMarketOperator   *struct{}               `json:"get_market_operator,omitempty"`
	GetLiquidityPool    *struct{}               `json:"get_liquidity_pool,omitempty"`
	GetMarketPhase      *struct{}               `json:"get_market_phase,omitempty"`
	GetMarketPhasesInfo *struct{}               `json:"get_market_phases_info,omitempty"`
	GetBorrowingTerms   *GetBorrowingTermsQuery `json:"get_borrowing_terms,omitempty"`
}

type GetBorrowingTermsQuery struct {
	PledgedCollateral Asset `json:"pledged_collateral"`
}

type MarketOperatorResponse struct {
	MarketOperator string `json:"market_operator"`
}

type LiquidityPoolResponse struct {
	LiquidityPool string `json:"liquidity_pool"`
}

type MarketPhaseResponse struct {
	Phase MarketPhase `json:"phase"`
}

type MarketPhasesInfoResponse = MarketPhasesInfo

type BorrowingTermsResponse = BorrowingTerms

// PoolInstantiateMsg creates a pool and, through a sub-message, its share token.
type PoolInstantiateMsg struct {
	AssetInfos   AssetInfos    `json:"asset_infos"`
	TokenCodeID  uint64        `json:"token_code_id"`
	FactoryAddr  string        `json:"factory_addr"`
	BalanceCheck *BalanceCheck `json:"balance_check,omitempty"`
}

type PoolExecuteMsg struct {
	ProvideLiquidity *ProvideLiquidityMsg `json:"provide_liquidity,omitempty"`
	Receive          *Cw20ReceiveMsg      `json:"receive,omitempty"`
}

type ProvideLiquidityMsg struct {
	Assets [2]Asset `json:"assets"`
}

// PoolHookMsg is the payload a share holder attaches to a cw20 send into the pool.
type PoolHookMsg struct {
	WithdrawLiquidity *struct{} `json:"withdraw_liquidity,omitempty"`
}

type PoolQueryMsg struct {
	Pair             *struct{}              `json:"pair,omitempty"`
	Pool             *struct{}              `json:"pool,omitempty"`
	SimulateProvide  *SimulateProvideQuery  `json:"simulate_provide,omitempty"`
	SimulateWithdraw *SimulateWithdrawQuery `json:"simulate_withdraw,omitempty"`
}

type SimulateProvideQuery struct {
	Assets [2]Asset `json:"assets"`
}

type SimulateWithdrawQuery struct {
	Share sdkmath.Int `json:"share"`
}

// Empty is the payload of argument-less variants.
var Empty = &struct{}{}
