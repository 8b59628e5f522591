package market

import (
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/host/mock"
	"github.com/elys-network/zll/internal/types"
)

const (
	poolCodeID  = 2
	tokenCodeID = 3

	marketStartedAt  = 1_000
	lpPhaseEndsAt    = 2_000
	ammPhaseEndsAt   = 3_000
	settlementEndsAt = 4_000
)

var (
	marketAddr = mock.Addr("market")
	operator   = mock.Addr("operator")
	poolAddr   = mock.Addr("pool")
	borrower   = mock.Addr("borrower")
	collToken  = mock.Addr("collateral-token")
)

func phasesInfo() types.MarketPhasesInfo {
	return types.MarketPhasesInfo{
		MarketStartedAt:       marketStartedAt,
		LpPhaseEndsAt:         lpPhaseEndsAt,
		AmmPhaseEndsAt:        ammPhaseEndsAt,
		SettlementPhaseEndsAt: settlementEndsAt,
	}
}

func instantiateMsg(infos types.AssetInfos) types.MarketInstantiateMsg {
	return types.MarketInstantiateMsg{
		MarketOperator:           operator,
		LiquidityPoolCodeID:      poolCodeID,
		LiquidityPoolTokenCodeID: tokenCodeID,
		AssetInfos:               infos,
		MarketPhasesInfo:         phasesInfo(),
		BlocksPerYear:            4_204_800,
		Alpha:                    200_000_000_000,
	}
}

type testMarket struct {
	c       *Contract
	deps    host.Deps
	querier *mock.Querier
}

// newTestMarket instantiates a market and registers a pool holding reserves.
func newTestMarket(t *testing.T, reserves [2]types.Asset) *testMarket {
	t.Helper()

	m := &testMarket{c: NewContract(), querier: mock.NewQuerier()}
	m.deps = mock.Deps(m.querier)
	m.querier.HandleJSON(poolAddr, types.PoolResponse{Assets: reserves, TotalShare: sdkmath.NewInt(1)})
	m.querier.HandleJSON(collToken, types.Cw20TokenInfoResponse{Name: "Custom Pool Asset", Symbol: "CPA", Decimals: 9, TotalSupply: sdkmath.NewInt(1)})

	_, err := m.c.Instantiate(m.deps, mock.Env(marketAddr, marketStartedAt), mock.Info(operator),
		mock.MustEncode(instantiateMsg(types.AssetInfos{reserves[0].Info, reserves[1].Info})))
	require.NoError(t, err)
	_, err = m.c.Reply(m.deps, mock.Env(marketAddr, marketStartedAt), instantiateReply(InstantiatePoolReplyID, poolAddr))
	require.NoError(t, err)
	return m
}

func ammReserves() [2]types.Asset {
	return [2]types.Asset{types.CoinAsset(227_000_000, "uluna"), types.CoinAsset(535_500_000_000, "uusd")}
}

func (m *testMarket) query(t *testing.T, height uint64, msg types.MarketQueryMsg, out any) {
	t.Helper()
	bz, err := m.c.Query(m.deps, mock.Env(marketAddr, height), mock.MustEncode(msg))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bz, out))
}

func (m *testMarket) borrow(height uint64, expected, pledged types.Asset) (*host.Response, error) {
	return m.c.Execute(m.deps, mock.Env(marketAddr, height), mock.Info(borrower), mock.MustEncode(types.MarketExecuteMsg{
		Borrow: &types.BorrowMsg{ExpectedBorrow: expected, PledgedCollateral: pledged},
	}))
}

func instantiateReply(id uint64, addr string) host.Reply {
	data, _ := json.Marshal(host.InstantiateResponse{ContractAddress: addr})
	return host.Reply{ID: id, Result: host.SubMsgResult{Ok: &host.SubMsgResponse{Data: data}}}
}

func TestInstantiateCreatesPool(t *testing.T) {
	c := NewContract()
	deps := mock.Deps(mock.NewQuerier())
	infos := types.AssetInfos{types.NativeAssetInfoOf("uluna"), types.NativeAssetInfoOf("uusd")}

	msg := instantiateMsg(infos)
	msg.BalanceCheck = &types.BalanceCheck{BasePrices: [2]string{"250", "1"}, Decimals: [2]uint8{6, 6}}
	resp, err := c.Instantiate(deps, mock.Env(marketAddr, 1), mock.Info(operator), mock.MustEncode(msg))
	require.NoError(t, err)

	method, _ := resp.Attribute("method")
	assert.Equal(t, "instantiate", method)
	op, _ := resp.Attribute("market_operator")
	assert.Equal(t, operator, op)

	require.Len(t, resp.Messages, 1)
	sub := resp.Messages[0]
	assert.Equal(t, InstantiatePoolReplyID, sub.ID)
	assert.Equal(t, host.ReplySuccess, sub.ReplyOn)
	inst := sub.Msg.Wasm.Instantiate
	require.NotNil(t, inst)
	assert.Equal(t, uint64(poolCodeID), inst.CodeID)
	assert.Equal(t, "ZLL LP", inst.Label)

	var poolMsg types.PoolInstantiateMsg
	require.NoError(t, json.Unmarshal(inst.Msg, &poolMsg))
	assert.Equal(t, marketAddr, poolMsg.FactoryAddr)
	assert.Equal(t, uint64(tokenCodeID), poolMsg.TokenCodeID)
	assert.Equal(t, infos, poolMsg.AssetInfos)
	assert.Equal(t, msg.BalanceCheck, poolMsg.BalanceCheck)

	var pool types.LiquidityPoolResponse
	bz, err := c.Query(deps, mock.Env(marketAddr, 1), mock.MustEncode(types.MarketQueryMsg{GetLiquidityPool: types.Empty}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bz, &pool))
	assert.Empty(t, pool.LiquidityPool)
}

func TestInstantiateRejectsUnorderedPhases(t *testing.T) {
	msg := instantiateMsg(types.AssetInfos{types.NativeAssetInfoOf("uluna"), types.NativeAssetInfoOf("uusd")})
	msg.MarketPhasesInfo.AmmPhaseEndsAt = lpPhaseEndsAt

	_, err := NewContract().Instantiate(mock.Deps(mock.NewQuerier()), mock.Env(marketAddr, 1), mock.Info(operator), mock.MustEncode(msg))
	require.ErrorIs(t, err, types.ErrInvalidPhases)
	assert.Contains(t, err.Error(), "`lp_phase_ends_at` = 2000 must occur before `amm_phase_ends_at` = 2000")
}

func TestReplyRegistersPoolOnce(t *testing.T) {
	m := newTestMarket(t, ammReserves())
	env := mock.Env(marketAddr, marketStartedAt)

	var pool types.LiquidityPoolResponse
	m.query(t, marketStartedAt, types.MarketQueryMsg{GetLiquidityPool: types.Empty}, &pool)
	assert.Equal(t, poolAddr, pool.LiquidityPool)

	_, err := m.c.Reply(m.deps, env, instantiateReply(InstantiatePoolReplyID, mock.Addr("other")))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = m.c.Reply(m.deps, env, instantiateReply(2, poolAddr))
	require.ErrorIs(t, err, types.ErrUnknownReply)
	assert.Contains(t, err.Error(), "reply id `2` is invalid")

	_, err = m.c.Reply(m.deps, env, host.Reply{ID: InstantiatePoolReplyID, Result: host.SubMsgResult{Err: "codes not found"}})
	require.ErrorIs(t, err, types.ErrReplyFailed)
}

func TestReplyRejectsMissingData(t *testing.T) {
	c := NewContract()
	deps := mock.Deps(mock.NewQuerier())
	env := mock.Env(marketAddr, 1)
	msg := instantiateMsg(types.AssetInfos{types.NativeAssetInfoOf("uluna"), types.NativeAssetInfoOf("uusd")})
	_, err := c.Instantiate(deps, env, mock.Info(operator), mock.MustEncode(msg))
	require.NoError(t, err)

	_, err = c.Reply(deps, env, host.Reply{ID: InstantiatePoolReplyID, Result: host.SubMsgResult{Ok: &host.SubMsgResponse{}}})
	require.ErrorIs(t, err, host.ErrParseReply)
}

func TestStaticQueries(t *testing.T) {
	m := newTestMarket(t, ammReserves())

	var op types.MarketOperatorResponse
	m.query(t, marketStartedAt, types.MarketQueryMsg{GetMarketOperator: types.Empty}, &op)
	assert.Equal(t, operator, op.MarketOperator)

	var info types.MarketPhasesInfoResponse
	m.query(t, marketStartedAt, types.MarketQueryMsg{GetMarketPhasesInfo: types.Empty}, &info)
	assert.Equal(t, phasesInfo(), info)
}

func TestPhaseQueryFollowsHeight(t *testing.T) {
	m := newTestMarket(t, ammReserves())

	for height, expected := range map[uint64]types.MarketPhase{
		marketStartedAt:      types.PhaseProvidingLiquidity,
		lpPhaseEndsAt:        types.PhaseProvidingLiquidity,
		lpPhaseEndsAt + 1:    types.PhaseAutomatedMarketMaker,
		ammPhaseEndsAt:       types.PhaseAutomatedMarketMaker,
		ammPhaseEndsAt + 1:   types.PhaseSettlement,
		settlementEndsAt:     types.PhaseSettlement,
		settlementEndsAt + 1: types.PhasePostSettlement,
	} {
		var resp types.MarketPhaseResponse
		m.query(t, height, types.MarketQueryMsg{GetMarketPhase: types.Empty}, &resp)
		assert.Equal(t, expected, resp.Phase, "height %d", height)
	}
}

func TestBorrowingTermsFromPoolReserves(t *testing.T) {
	m := newTestMarket(t, ammReserves())

	var terms types.BorrowingTermsResponse
	m.query(t, lpPhaseEndsAt+1, types.MarketQueryMsg{GetBorrowingTerms: &types.GetBorrowingTermsQuery{
		PledgedCollateral: types.CoinAsset(111_000_000, "uluna"),
	}}, &terms)

	assert.Equal(t, "175859467456", terms.Borrow.Amount.String())
	assert.True(t, terms.Borrow.Info.Equal(types.NativeAssetInfoOf("uusd")))
	assert.True(t, terms.Interest.Amount.IsZero())
	assert.True(t, terms.Repayment.Amount.IsZero())
}

func TestBorrowingTermsErrors(t *testing.T) {
	m := newTestMarket(t, ammReserves())
	query := func(height uint64, pledged types.Asset) error {
		_, err := m.c.Query(m.deps, mock.Env(marketAddr, height), mock.MustEncode(types.MarketQueryMsg{
			GetBorrowingTerms: &types.GetBorrowingTermsQuery{PledgedCollateral: pledged},
		}))
		return err
	}

	require.ErrorIs(t, query(lpPhaseEndsAt+1, types.CoinAsset(1, "ukrw")), types.ErrAssetMismatch)
	require.ErrorIs(t, query(ammPhaseEndsAt+1, types.CoinAsset(1, "uluna")), types.ErrOverflow)

	delete(m.querier.Contracts, poolAddr)
	require.ErrorIs(t, query(lpPhaseEndsAt+1, types.CoinAsset(1, "uluna")), host.ErrQuery)
}

func TestBorrowingTermsUseTokenDecimals(t *testing.T) {
	m := newTestMarket(t, [2]types.Asset{
		types.TokenAsset(2_000_000_000, collToken),
		types.CoinAsset(450_000_000, "uusd"),
	})

	var terms types.BorrowingTermsResponse
	m.query(t, lpPhaseEndsAt+1, types.MarketQueryMsg{GetBorrowingTerms: &types.GetBorrowingTermsQuery{
		PledgedCollateral: types.TokenAsset(2_000_000_000, collToken),
	}}, &terms)
	// 450e6 - 450e6*2e9/4e9
	assert.Equal(t, "225000000", terms.Borrow.Amount.String())

	delete(m.querier.Contracts, collToken)
	_, err := m.c.Query(m.deps, mock.Env(marketAddr, lpPhaseEndsAt+1), mock.MustEncode(types.MarketQueryMsg{
		GetBorrowingTerms: &types.GetBorrowingTermsQuery{PledgedCollateral: types.TokenAsset(1, collToken)},
	}))
	require.ErrorIs(t, err, host.ErrQuery)
}

func TestBorrowOnlyDuringAmmPhase(t *testing.T) {
	m := newTestMarket(t, ammReserves())
	expected := types.CoinAsset(175_859_467_456, "uusd")
	pledged := types.CoinAsset(111_000_000, "uluna")

	for _, height := range []uint64{marketStartedAt, lpPhaseEndsAt, ammPhaseEndsAt + 1, settlementEndsAt + 1} {
		_, err := m.borrow(height, expected, pledged)
		require.ErrorIs(t, err, types.ErrUnauthorized, "height %d", height)
	}

	resp, err := m.borrow(lpPhaseEndsAt+1, expected, pledged)
	require.NoError(t, err)
	action, _ := resp.Attribute("action")
	assert.Equal(t, "borrow", action)
	assert.Empty(t, resp.Messages)

	_, err = m.borrow(ammPhaseEndsAt, expected, pledged)
	require.NoError(t, err)
}

func TestBorrowRejectsExcess(t *testing.T) {
	m := newTestMarket(t, ammReserves())

	_, err := m.borrow(lpPhaseEndsAt+1, types.CoinAsset(175_859_467_457, "uusd"), types.CoinAsset(111_000_000, "uluna"))
	require.ErrorIs(t, err, types.ErrBorrowExceedsCapacity)
	assert.Contains(t, err.Error(), "Expected amount to borrow (175859467457) is higher than calculated collateral amount (175859467456)")

	_, err = m.borrow(lpPhaseEndsAt+1, types.CoinAsset(1, "uluna"), types.CoinAsset(111_000_000, "uluna"))
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestUnsupportedMessages(t *testing.T) {
	m := newTestMarket(t, ammReserves())
	env := mock.Env(marketAddr, lpPhaseEndsAt+1)

	_, err := m.c.Execute(m.deps, env, mock.Info(borrower), []byte(`{}`))
	require.ErrorIs(t, err, types.ErrUnsupportedMessage)

	_, err = m.c.Execute(m.deps, env, mock.Info(borrower), []byte(`{"repay":{}}`))
	require.ErrorIs(t, err, host.ErrInvalidPayload)

	_, err = m.c.Query(m.deps, env, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrUnsupportedMessage)

	_, err = m.c.Query(m.deps, env, []byte(`{"get_market_phase":{},"get_market_operator":{}}`))
	require.ErrorIs(t, err, host.ErrInvalidPayload)
}

func TestBorrowValidatesExpectedBorrow(t *testing.T) {
	m := newTestMarket(t, ammReserves())
	pledged := types.CoinAsset(111_000_000, "uluna")

	resp, err := m.borrow(lpPhaseEndsAt+1, types.Asset{Info: types.NativeAssetInfoOf("uusd"), Amount: sdkmath.NewInt(-5)}, pledged)
	require.ErrorIs(t, err, types.ErrInvalidAsset)
	assert.Nil(t, resp)

	raw := []byte(`{"borrow":{` +
		`"expected_borrow":{"info":{"native_token":{"denom":"uusd"}}},` +
		`"pledged_collateral":{"info":{"native_token":{"denom":"uluna"}},"amount":"111000000"}}}`)
	require.NotPanics(t, func() {
		_, err = m.c.Execute(m.deps, mock.Env(marketAddr, lpPhaseEndsAt+1), mock.Info(borrower), raw)
	})
	require.ErrorIs(t, err, types.ErrInvalidAsset)
}

func TestBorrowingTermsNeedPoolReserves(t *testing.T) {
	m := newTestMarket(t, [2]types.Asset{types.CoinAsset(0, "uluna"), types.CoinAsset(0, "uusd")})

	_, err := m.c.Query(m.deps, mock.Env(marketAddr, lpPhaseEndsAt+1), mock.MustEncode(types.MarketQueryMsg{
		GetBorrowingTerms: &types.GetBorrowingTermsQuery{PledgedCollateral: types.CoinAsset(111_000_000, "uluna")},
	}))
	require.ErrorIs(t, err, host.ErrQuery)

	_, err = m.borrow(lpPhaseEndsAt+1, types.CoinAsset(0, "uusd"), types.CoinAsset(111_000_000, "uluna"))
	require.ErrorIs(t, err, host.ErrQuery)
}
