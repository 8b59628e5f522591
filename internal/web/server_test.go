package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elys-network/zll/internal/node"
	"github.com/elys-network/zll/internal/types"
)

func newTestServer(t *testing.T) (*WebServer, *node.Node) {
	t.Helper()
	n, err := node.Bootstrap(node.Options{
		Params: types.MarketParameters{
			AssetA:                "uluna",
			AssetB:                "uusd",
			BlocksPerYear:         4_204_800,
			Alpha:                 200_000_000_000,
			LpPhaseBlocks:         1_000,
			AmmPhaseBlocks:        1_000,
			SettlementPhaseBlocks: 1_000,
			BlockInterval:         5 * time.Second,
		},
		Operator:     "market-operator",
		Bech32Prefix: "zll",
		StartHeight:  1_000,
	})
	require.NoError(t, err)
	return NewWebServer("", n), n
}

func get(t *testing.T, ws *WebServer, path string, out interface{}) int {
	t.Helper()
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func provide(t *testing.T, n *node.Node, label string, luna, uusd int64) {
	t.Helper()
	provider := n.Chain().API().AddrMake(label)
	funds := sdk.NewCoins(sdk.NewInt64Coin("uluna", luna), sdk.NewInt64Coin("uusd", uusd))
	require.NoError(t, n.Chain().InitBankBalance(provider, funds))
	_, err := n.Chain().Execute(provider, n.Pool(), types.PoolExecuteMsg{ProvideLiquidity: &types.ProvideLiquidityMsg{
		Assets: [2]types.Asset{types.CoinAsset(uint64(luna), "uluna"), types.CoinAsset(uint64(uusd), "uusd")},
	}}, funds)
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	ws, n := newTestServer(t)

	var body map[string]interface{}
	require.Equal(t, http.StatusOK, get(t, ws, "/health", &body))
	assert.Equal(t, "OK", body["status"])

	venue := body["venue_status"].(map[string]interface{})
	assert.Equal(t, "providing_liquidity", venue["phase"])
	assert.Equal(t, n.Market(), venue["market"])
	assert.Equal(t, false, venue["database_enabled"])

	assert.Equal(t, http.StatusOK, get(t, ws, "/api/health", nil))
}

func TestMarketEndpoints(t *testing.T) {
	ws, n := newTestServer(t)

	var op types.MarketOperatorResponse
	require.Equal(t, http.StatusOK, get(t, ws, "/api/market/operator", &op))
	assert.Equal(t, n.Operator(), op.MarketOperator)

	var lp types.LiquidityPoolResponse
	require.Equal(t, http.StatusOK, get(t, ws, "/api/market/liquidity-pool", &lp))
	assert.Equal(t, n.Pool(), lp.LiquidityPool)

	var phase types.MarketPhaseResponse
	require.Equal(t, http.StatusOK, get(t, ws, "/api/market/phase", &phase))
	assert.Equal(t, types.PhaseProvidingLiquidity, phase.Phase)

	var phases types.MarketPhasesInfo
	require.Equal(t, http.StatusOK, get(t, ws, "/api/market/phases-info", &phases))
	assert.Equal(t, uint64(3_000), phases.AmmPhaseEndsAt)

	var pair types.PairInfo
	require.Equal(t, http.StatusOK, get(t, ws, "/api/pair", &pair))
	assert.Equal(t, n.LpToken(), pair.LiquidityToken)
}

func TestBorrowingTermsEndpoint(t *testing.T) {
	ws, n := newTestServer(t)

	var failure map[string]interface{}
	assert.Equal(t, http.StatusNotFound, get(t, ws, "/api/market/borrowing-terms?amount=111000000&denom=uluna", &failure))
	assert.Equal(t, true, failure["error"])

	provide(t, n, "lp", 2_000_000, 500_000_000)
	provide(t, n, "lp2", 5_000_000, 5_000_000_000)
	n.Chain().SetHeight(2_001)

	var terms types.BorrowingTerms
	require.Equal(t, http.StatusOK, get(t, ws, "/api/market/borrowing-terms?amount=111000000&denom=uluna", &terms))
	assert.Equal(t, types.NativeAssetInfoOf("uusd"), terms.Borrow.Info)
	assert.Equal(t, "5173728814", terms.Borrow.Amount.String())
	assert.True(t, terms.Interest.Amount.IsZero())

	assert.Equal(t, http.StatusBadRequest, get(t, ws, "/api/market/borrowing-terms?amount=abc&denom=uluna", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, ws, "/api/market/borrowing-terms?amount=1", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, ws, "/api/market/borrowing-terms?amount=1&denom=uatom", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, ws, "/api/market/borrowing-terms?amount=1&denom=uluna&token=x", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, ws, "/api/market/borrowing-terms?amount=0&denom=uluna", nil))

	// past the AMM phase the time to expiry underflows
	n.Chain().SetHeight(3_001)
	assert.Equal(t, http.StatusBadRequest, get(t, ws, "/api/market/borrowing-terms?amount=111000000&denom=uluna", nil))
}

func TestPoolEndpoint(t *testing.T) {
	ws, n := newTestServer(t)
	provide(t, n, "lp", 2_000_000, 500_000_000)

	var body struct {
		Assets []struct {
			Amount   string  `json:"amount"`
			Display  float64 `json:"display"`
			Decimals uint8   `json:"decimals"`
		} `json:"assets"`
		TotalShare string `json:"total_share"`
	}
	require.Equal(t, http.StatusOK, get(t, ws, "/api/pool", &body))
	require.Len(t, body.Assets, 2)
	assert.Equal(t, "2000000", body.Assets[0].Amount)
	assert.Equal(t, 2.0, body.Assets[0].Display)
	assert.Equal(t, 500.0, body.Assets[1].Display)
	assert.Equal(t, uint8(6), body.Assets[1].Decimals)
	assert.Equal(t, "31622776", body.TotalShare)
}

func TestReceiptsEndpoint(t *testing.T) {
	ws, n := newTestServer(t)
	provide(t, n, "lp", 2_000_000, 500_000_000)

	var body struct {
		Receipts []types.CallReceipt `json:"receipts"`
		Count    int                 `json:"count"`
		Limit    int                 `json:"limit"`
		Source   string              `json:"source"`
	}
	require.Equal(t, http.StatusOK, get(t, ws, "/api/receipts?limit=1", &body))
	assert.Equal(t, "memory", body.Source)
	assert.Equal(t, 1, body.Limit)
	require.Len(t, body.Receipts, 1)
	assert.Equal(t, n.Pool(), body.Receipts[0].Contract)
	assert.True(t, body.Receipts[0].Success)

	require.Equal(t, http.StatusOK, get(t, ws, "/api/receipts?limit=500", &body))
	assert.Equal(t, defaultReceiptsLimit, body.Limit)
	assert.Equal(t, 2, body.Count) // market instantiate and the deposit

	assert.Equal(t, http.StatusServiceUnavailable, get(t, ws, "/api/receipts/summary", nil))
}
