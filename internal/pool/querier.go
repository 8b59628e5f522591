package pool

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

// queryPools reads the live reserves held by addr, in pair order.
func queryPools(deps host.Deps, infos types.AssetInfos, addr string) ([2]types.Asset, error) {
	var pools [2]types.Asset
	for i, info := range infos {
		amount, err := queryAssetBalance(deps, info, addr)
		if err != nil {
			return pools, err
		}
		pools[i] = types.NewAsset(info, amount)
	}
	return pools, nil
}

func queryAssetBalance(deps host.Deps, info types.AssetInfo, addr string) (sdkmath.Int, error) {
	if info.IsNativeToken() {
		coin, err := deps.Querier.QueryBalance(addr, info.NativeToken.Denom)
		if err != nil {
			return sdkmath.ZeroInt(), err
		}
		return coin.Amount, nil
	}

	var resp types.Cw20BalanceResponse
	err := deps.Querier.QueryWasmSmart(info.Token.ContractAddr, types.Cw20QueryMsg{
		Balance: &types.Cw20BalanceQuery{Address: addr},
	}, &resp)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return resp.Balance, nil
}

func queryTokenInfo(deps host.Deps, token string) (types.Cw20TokenInfoResponse, error) {
	var resp types.Cw20TokenInfoResponse
	err := deps.Querier.QueryWasmSmart(token, types.Cw20QueryMsg{TokenInfo: types.Empty}, &resp)
	return resp, err
}

// querySupply is the share supply as reported by the share token.
func querySupply(deps host.Deps, liquidityToken string) (sdkmath.Int, error) {
	if liquidityToken == addrWhileInstantiation {
		return sdkmath.ZeroInt(), host.ErrQuery.Wrap("liquidity token is not instantiated yet")
	}
	info, err := queryTokenInfo(deps, liquidityToken)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return info.TotalSupply, nil
}

// queryMarketPhase asks the market that created the pool for its current phase.
func queryMarketPhase(deps host.Deps, factory string) (types.MarketPhase, error) {
	var resp types.MarketPhaseResponse
	if err := deps.Querier.QueryWasmSmart(factory, types.MarketQueryMsg{GetMarketPhase: types.Empty}, &resp); err != nil {
		return "", err
	}
	return resp.Phase, nil
}

// formatLpTokenName builds names like "ULU-UUS-LP" from the first three
// characters of each asset's denom or token symbol.
func formatLpTokenName(deps host.Deps, infos types.AssetInfos) (string, error) {
	short := make([]string, 0, len(infos))
	for _, info := range infos {
		label := ""
		if info.IsNativeToken() {
			label = info.NativeToken.Denom
		} else {
			token, err := queryTokenInfo(deps, info.Token.ContractAddr)
			if err != nil {
				return "", err
			}
			label = token.Symbol
		}
		if len(label) > 3 {
			label = label[:3]
		}
		short = append(short, strings.ToUpper(label))
	}
	return fmt.Sprintf("%s-LP", strings.Join(short, "-")), nil
}
