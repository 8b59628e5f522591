package node

import (
	"fmt"
	"strings"
	"time"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

// Status is a snapshot of the chain head and the market phase at that height.
type Status struct {
	ChainID string            `json:"chain_id"`
	Height  uint64            `json:"height"`
	Time    string            `json:"time"`
	Phase   types.MarketPhase `json:"phase"`
}

func (n *Node) Status() Status {
	block := n.chain.Block()
	return Status{
		ChainID: block.ChainID,
		Height:  block.Height,
		Time:    block.Time.Format(time.RFC3339),
		Phase:   n.phases.PhaseAt(block.Height),
	}
}

func (n *Node) queryMarket(msg types.MarketQueryMsg, out any) error {
	return n.chain.QueryWasmSmart(n.market, msg, out)
}

func (n *Node) queryPool(msg types.PoolQueryMsg, out any) error {
	return n.chain.QueryWasmSmart(n.pool, msg, out)
}

func (n *Node) MarketOperator() (types.MarketOperatorResponse, error) {
	var resp types.MarketOperatorResponse
	err := n.queryMarket(types.MarketQueryMsg{GetMarketOperator: types.Empty}, &resp)
	return resp, err
}

func (n *Node) LiquidityPool() (types.LiquidityPoolResponse, error) {
	var resp types.LiquidityPoolResponse
	err := n.queryMarket(types.MarketQueryMsg{GetLiquidityPool: types.Empty}, &resp)
	return resp, err
}

func (n *Node) MarketPhase() (types.MarketPhaseResponse, error) {
	var resp types.MarketPhaseResponse
	err := n.queryMarket(types.MarketQueryMsg{GetMarketPhase: types.Empty}, &resp)
	return resp, err
}

func (n *Node) MarketPhasesInfo() (types.MarketPhasesInfoResponse, error) {
	var resp types.MarketPhasesInfoResponse
	err := n.queryMarket(types.MarketQueryMsg{GetMarketPhasesInfo: types.Empty}, &resp)
	return resp, err
}

func (n *Node) BorrowingTerms(pledged types.Asset) (types.BorrowingTermsResponse, error) {
	var resp types.BorrowingTermsResponse
	err := n.queryMarket(types.MarketQueryMsg{GetBorrowingTerms: &types.GetBorrowingTermsQuery{PledgedCollateral: pledged}}, &resp)
	return resp, err
}

func (n *Node) PoolState() (types.PoolResponse, error) {
	var resp types.PoolResponse
	err := n.queryPool(types.PoolQueryMsg{Pool: types.Empty}, &resp)
	return resp, err
}

func (n *Node) Pair() (types.PairInfo, error) {
	var resp types.PairInfo
	err := n.queryPool(types.PoolQueryMsg{Pair: types.Empty}, &resp)
	return resp, err
}

func (n *Node) SimulateProvide(assets [2]types.Asset) (types.SimulateProvideResponse, error) {
	var resp types.SimulateProvideResponse
	err := n.queryPool(types.PoolQueryMsg{SimulateProvide: &types.SimulateProvideQuery{Assets: assets}}, &resp)
	return resp, err
}

func (n *Node) SimulateWithdraw(share types.SimulateWithdrawQuery) (types.SimulateWithdrawResponse, error) {
	var resp types.SimulateWithdrawResponse
	err := n.queryPool(types.PoolQueryMsg{SimulateWithdraw: &share}, &resp)
	return resp, err
}

func (n *Node) RecentReceipts(limit int) []types.CallReceipt {
	return n.chain.RecentReceipts(limit)
}

// ResolveAsset maps a native denom, a token address or a "cw20:<SYMBOL>" name onto one of the pooled assets.
func (n *Node) ResolveAsset(name string) (types.AssetInfo, error) {
	if addr, ok := n.tokens[strings.TrimPrefix(name, TokenAssetPrefix)]; ok {
		return types.TokenAssetInfoOf(addr), nil
	}
	for _, info := range n.infos {
		switch {
		case info.IsNativeToken() && info.NativeToken.Denom == name:
			return info, nil
		case !info.IsNativeToken() && info.Token.ContractAddr == name:
			return info, nil
		}
	}
	return types.AssetInfo{}, host.ErrQuery.Wrapf("asset %s is not traded by market %s", name, n.market)
}

// String is used in logs.
func (s Status) String() string {
	return fmt.Sprintf("%s@%d (%s)", s.ChainID, s.Height, s.Phase)
}
