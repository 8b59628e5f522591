package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

func testParams() types.MarketParameters {
	return types.MarketParameters{
		AssetA:                "uluna",
		AssetB:                "uusd",
		BlocksPerYear:         4_204_800,
		Alpha:                 200_000_000_000,
		LpPhaseBlocks:         1_000,
		AmmPhaseBlocks:        1_000,
		SettlementPhaseBlocks: 1_000,
		BlockInterval:         5 * time.Second,
	}
}

func bootstrap(t *testing.T, params types.MarketParameters) *Node {
	t.Helper()
	n, err := Bootstrap(Options{
		Params:       params,
		Operator:     "market-operator",
		Bech32Prefix: "zll",
		ChainID:      "zll-test-1",
		StartHeight:  1_000,
		StartTime:    time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return n
}

func TestBootstrapDeploysMarket(t *testing.T) {
	n := bootstrap(t, testParams())

	assert.Equal(t, n.Chain().API().AddrMake("market-operator"), n.Operator())
	assert.NotEmpty(t, n.Market())
	assert.NotEmpty(t, n.Pool())
	assert.NotEmpty(t, n.LpToken())

	op, err := n.MarketOperator()
	require.NoError(t, err)
	assert.Equal(t, n.Operator(), op.MarketOperator)

	lp, err := n.LiquidityPool()
	require.NoError(t, err)
	assert.Equal(t, n.Pool(), lp.LiquidityPool)

	phases, err := n.MarketPhasesInfo()
	require.NoError(t, err)
	assert.Equal(t, types.MarketPhasesInfo{
		MarketStartedAt:       1_000,
		LpPhaseEndsAt:         2_000,
		AmmPhaseEndsAt:        3_000,
		SettlementPhaseEndsAt: 4_000,
	}, phases)

	pair, err := n.Pair()
	require.NoError(t, err)
	assert.Equal(t, n.LpToken(), pair.LiquidityToken)
	assert.Equal(t, n.AssetInfos(), pair.AssetInfos)

	status := n.Status()
	assert.Equal(t, "zll-test-1", status.ChainID)
	assert.Equal(t, uint64(1_000), status.Height)
	assert.Equal(t, types.PhaseProvidingLiquidity, status.Phase)
	assert.Equal(t, "zll-test-1@1000 (providing_liquidity)", status.String())
}

func TestBootstrapKeepsOperatorAddress(t *testing.T) {
	params := testParams()
	operator := host.NewBech32API("zll").AddrMake("someone")

	n, err := Bootstrap(Options{Params: params, Operator: operator, Bech32Prefix: "zll", StartHeight: 10})
	require.NoError(t, err)
	assert.Equal(t, operator, n.Operator())
	assert.Equal(t, uint64(10), n.Phases().MarketStartedAt)
}

func TestBootstrapCreatesTokenAssets(t *testing.T) {
	params := testParams()
	params.AssetA = "cw20:CPA"
	n := bootstrap(t, params)

	cpa, ok := n.Token("CPA")
	require.True(t, ok)
	assert.Equal(t, types.TokenAssetInfoOf(cpa), n.AssetInfos()[0])

	decimals, err := n.Decimals(n.AssetInfos()[0])
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	var balance types.Cw20BalanceResponse
	require.NoError(t, n.Chain().QueryWasmSmart(cpa, types.Cw20QueryMsg{Balance: &types.Cw20BalanceQuery{Address: n.Operator()}}, &balance))
	assert.Equal(t, TokenSupply, balance.Balance)

	var token types.Cw20TokenInfoResponse
	require.NoError(t, n.Chain().QueryWasmSmart(n.LpToken(), types.Cw20QueryMsg{TokenInfo: types.Empty}, &token))
	assert.Equal(t, "CPA-UUS-LP", token.Name)
}

func TestBootstrapErrors(t *testing.T) {
	params := testParams()
	params.LpPhaseBlocks = 0
	_, err := Bootstrap(Options{Params: params, Operator: "op", Bech32Prefix: "zll", StartHeight: 1})
	assert.ErrorIs(t, err, types.ErrInvalidPhases)

	params = testParams()
	params.AssetA = "cw20:X"
	_, err = Bootstrap(Options{Params: params, Operator: "op", Bech32Prefix: "zll", StartHeight: 1})
	assert.ErrorIs(t, err, types.ErrInvalidAsset)

	params = testParams()
	params.BasePrices = [2]string{"250", "1"}
	_, err = Bootstrap(Options{
		Params:       params,
		Operator:     "op",
		Bech32Prefix: "zll",
		StartHeight:  1,
		DecimalsOf:   func(string) int { return 40 },
	})
	assert.ErrorContains(t, err, "invalid decimals 40")
}

func TestResolveAsset(t *testing.T) {
	params := testParams()
	params.AssetB = "cw20:CPB"
	n := bootstrap(t, params)
	cpb, _ := n.Token("CPB")

	info, err := n.ResolveAsset("uluna")
	require.NoError(t, err)
	assert.Equal(t, types.NativeAssetInfoOf("uluna"), info)

	info, err = n.ResolveAsset("cw20:CPB")
	require.NoError(t, err)
	assert.Equal(t, types.TokenAssetInfoOf(cpb), info)

	info, err = n.ResolveAsset(cpb)
	require.NoError(t, err)
	assert.Equal(t, types.TokenAssetInfoOf(cpb), info)

	_, err = n.ResolveAsset("uatom")
	assert.ErrorIs(t, err, host.ErrQuery)
}

func TestStepTracksPhaseTransitions(t *testing.T) {
	n := bootstrap(t, testParams())

	assert.Equal(t, uint64(1_001), n.Step())
	assert.Equal(t, types.PhaseProvidingLiquidity, n.lastPhase)

	n.Chain().SetHeight(2_000)
	assert.Equal(t, uint64(2_001), n.Step())
	assert.Equal(t, types.PhaseAutomatedMarketMaker, n.lastPhase)

	phase, err := n.MarketPhase()
	require.NoError(t, err)
	assert.Equal(t, types.PhaseAutomatedMarketMaker, phase.Phase)
}

func TestRunLoopProducesBlocksUntilCancelled(t *testing.T) {
	n := bootstrap(t, testParams())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		n.RunLoop(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return n.Chain().Block().Height >= 1_005 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunLoop did not stop after cancellation")
	}
}
