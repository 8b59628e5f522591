/*

Package node deploys one market on an in-process chain and drives it block by
block. It owns the addresses of the market, its pool and the pool's share
token, and answers the read-only questions the web API and the CLI ask.

*/

package node

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/elys-network/zll/internal/chain"
	"github.com/elys-network/zll/internal/cw20"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/market"
	"github.com/elys-network/zll/internal/pool"
	"github.com/elys-network/zll/internal/types"
)

const (
	// TokenAssetPrefix marks a market asset the node creates as a cw20 token.
	TokenAssetPrefix = "cw20:"

	tokenDecimals uint8 = 6
	marketLabel         = "ZLL market"
)

// TokenSupply is minted to the operator for every cw20 asset the node creates.
var TokenSupply = sdkmath.NewInt(1_000_000_000_000_000)

type Options struct {
	Params       types.MarketParameters
	Operator     string // address, or a label an address is derived from
	Bech32Prefix string
	ChainID      string
	StartHeight  uint64
	StartTime    time.Time
	Recorder     chain.ReceiptRecorder

	// DecimalsOf reports the display precision of a native denom.
	DecimalsOf func(denom string) int
}

type Node struct {
	log   zerolog.Logger
	chain *chain.Chain

	params    types.MarketParameters
	phases    types.MarketPhasesInfo
	operator  string
	market    string
	pool      string
	lpToken   string
	infos     types.AssetInfos
	tokens    map[string]string // symbol -> token address
	decimals  func(denom string) int
	lastPhase types.MarketPhase
}

// Bootstrap stores the contract codes, creates the cw20 assets and deploys the market.
func Bootstrap(opts Options) (*Node, error) {
	if opts.DecimalsOf == nil {
		opts.DecimalsOf = func(string) int { return int(tokenDecimals) }
	}
	c := chain.New(chain.Options{
		Bech32Prefix:  opts.Bech32Prefix,
		ChainID:       opts.ChainID,
		StartHeight:   opts.StartHeight,
		StartTime:     opts.StartTime,
		BlockInterval: opts.Params.BlockInterval,
		Recorder:      opts.Recorder,
	})

	n := &Node{
		log:      logger.GetForComponent("node"),
		chain:    c,
		params:   opts.Params,
		tokens:   make(map[string]string),
		decimals: opts.DecimalsOf,
	}

	n.operator = opts.Operator
	if _, err := c.API().AddrValidate(opts.Operator); err != nil {
		n.operator = c.API().AddrMake(opts.Operator)
		n.log.Debug().Str("label", opts.Operator).Str("operator", n.operator).Msg("Derived operator address from label")
	}

	phases, err := opts.Params.PhasesFrom(c.Block().Height)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out market phases: %w", err)
	}
	n.phases = phases

	tokenCode := c.StoreCode(cw20.NewContract())
	poolCode := c.StoreCode(pool.NewContract())
	marketCode := c.StoreCode(market.NewContract())

	for i, name := range []string{opts.Params.AssetA, opts.Params.AssetB} {
		info, err := n.createAsset(tokenCode, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create asset %s: %w", name, err)
		}
		n.infos[i] = info
	}

	balanceCheck, err := n.balanceCheck()
	if err != nil {
		return nil, err
	}

	marketAddr, resp, err := c.Instantiate(marketCode, n.operator, types.MarketInstantiateMsg{
		MarketOperator:           n.operator,
		LiquidityPoolCodeID:      poolCode,
		LiquidityPoolTokenCodeID: tokenCode,
		AssetInfos:               n.infos,
		MarketPhasesInfo:         phases,
		BlocksPerYear:            opts.Params.BlocksPerYear,
		Alpha:                    opts.Params.Alpha,
		BalanceCheck:             balanceCheck,
	}, nil, marketLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate market: %w", err)
	}
	n.market = marketAddr

	var ok bool
	if n.pool, ok = resp.Attribute("liquidity_pool_addr"); !ok {
		return nil, fmt.Errorf("market %s did not report its liquidity pool", marketAddr)
	}
	if n.lpToken, ok = resp.Attribute("liquidity_token_addr"); !ok {
		return nil, fmt.Errorf("pool %s did not report its liquidity token", n.pool)
	}
	n.lastPhase = phases.PhaseAt(c.Block().Height)

	n.log.Info().
		Str("market", n.market).
		Str("pool", n.pool).
		Str("lpToken", n.lpToken).
		Str("assets", n.infos[0].String()+"/"+n.infos[1].String()).
		Uint64("startedAt", phases.MarketStartedAt).
		Uint64("lpPhaseEndsAt", phases.LpPhaseEndsAt).
		Uint64("ammPhaseEndsAt", phases.AmmPhaseEndsAt).
		Uint64("settlementPhaseEndsAt", phases.SettlementPhaseEndsAt).
		Msg("Market deployed")

	return n, nil
}

// createAsset returns a native asset info, or instantiates a cw20 token for "cw20:<SYMBOL>".
func (n *Node) createAsset(tokenCode uint64, name string) (types.AssetInfo, error) {
	symbol, isToken := strings.CutPrefix(name, TokenAssetPrefix)
	if !isToken {
		return types.NativeAssetInfoOf(name), nil
	}

	addr, _, err := n.chain.Instantiate(tokenCode, n.operator, types.TokenInstantiateMsg{
		Name:            symbol + " token",
		Symbol:          symbol,
		Decimals:        tokenDecimals,
		InitialBalances: []types.Cw20Coin{{Address: n.operator, Amount: TokenSupply}},
	}, nil, symbol)
	if err != nil {
		return types.AssetInfo{}, err
	}
	n.tokens[symbol] = addr
	n.log.Info().Str("symbol", symbol).Str("token", addr).Msg("Created cw20 asset")
	return types.TokenAssetInfoOf(addr), nil
}

func (n *Node) balanceCheck() (*types.BalanceCheck, error) {
	if !n.params.HasBalanceCheck() {
		return nil, nil
	}
	check := &types.BalanceCheck{BasePrices: n.params.BasePrices}
	for i, info := range n.infos {
		decimals, err := n.Decimals(info)
		if err != nil {
			return nil, err
		}
		check.Decimals[i] = decimals
	}
	return check, nil
}

// Decimals returns the display precision of a pooled asset.
func (n *Node) Decimals(info types.AssetInfo) (uint8, error) {
	if !info.IsNativeToken() {
		var resp types.Cw20TokenInfoResponse
		if err := n.chain.QueryWasmSmart(info.Token.ContractAddr, types.Cw20QueryMsg{TokenInfo: types.Empty}, &resp); err != nil {
			return 0, fmt.Errorf("failed to query token info of %s: %w", info, err)
		}
		return resp.Decimals, nil
	}
	decimals := n.decimals(info.NativeToken.Denom)
	if decimals < 0 || decimals > 18 {
		return 0, fmt.Errorf("denom %s has invalid decimals %d", info.NativeToken.Denom, decimals)
	}
	return uint8(decimals), nil
}

// Step produces one block and logs a phase change when the new height crosses a boundary.
func (n *Node) Step() uint64 {
	block := n.chain.NextBlock()
	phase := n.phases.PhaseAt(block.Height)
	if phase != n.lastPhase {
		n.log.Info().
			Uint64("height", block.Height).
			Str("from", n.lastPhase.String()).
			Str("to", phase.String()).
			Msg("Market phase changed")
		n.lastPhase = phase
	}
	return block.Height
}

// RunLoop produces a block every interval until ctx is done.
func (n *Node) RunLoop(ctx context.Context, interval time.Duration) {
	n.log.Info().
		Dur("interval", interval).
		Msg("Starting block production loop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Produce the first block immediately
	height := n.Step()
	n.log.Debug().Uint64("height", height).Msg("Block produced")

	for {
		select {
		case <-ctx.Done():
			n.log.Info().Msg("Block production stopped due to context cancellation")
			return
		case <-ticker.C:
			height := n.Step()
			n.log.Debug().Uint64("height", height).Msg("Block produced")
		}
	}
}

func (n *Node) Chain() *chain.Chain {
	return n.chain
}

func (n *Node) Operator() string {
	return n.operator
}

func (n *Node) Market() string {
	return n.market
}

func (n *Node) Pool() string {
	return n.pool
}

func (n *Node) LpToken() string {
	return n.lpToken
}

func (n *Node) AssetInfos() types.AssetInfos {
	return n.infos
}

func (n *Node) Phases() types.MarketPhasesInfo {
	return n.phases
}

// Token returns the address of a cw20 asset the node created.
func (n *Node) Token(symbol string) (string, bool) {
	addr, ok := n.tokens[symbol]
	return addr, ok
}
