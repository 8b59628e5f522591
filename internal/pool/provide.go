package pool

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/liquidity"
	"github.com/elys-network/zll/internal/types"
)

// provideLiquidity mints shares for a two-sided deposit. Native assets must be
// attached to the call; token assets are pulled with transfer_from, so the
// depositor has to grant the pool an allowance first.
func (c *Contract) provideLiquidity(deps host.Deps, env host.Env, info host.MessageInfo, assets [2]types.Asset) (*host.Response, error) {
	for _, asset := range assets {
		if err := asset.Validate(deps.API); err != nil {
			return nil, err
		}
		if err := asset.AssertSentNativeTokenBalance(info); err != nil {
			return nil, err
		}
	}

	cfg, err := loadConfig(deps)
	if err != nil {
		return nil, err
	}
	pools, err := queryPools(deps, cfg.PairInfo.AssetInfos, env.Contract.Address)
	if err != nil {
		return nil, err
	}
	deposits, err := liquidity.MatchDeposits(assets, pools)
	if err != nil {
		return nil, err
	}
	if deposits[0].IsZero() || deposits[1].IsZero() {
		return nil, types.ErrInvalidZeroAmount
	}
	if cfg.BalanceCheck != nil {
		if err := liquidity.CheckBalanced(deposits, *cfg.BalanceCheck); err != nil {
			return nil, err
		}
	}

	share, err := computeShare(deps, cfg, pools, deposits)
	if err != nil {
		return nil, err
	}
	if share.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("deposit mints no shares")
	}

	resp := host.NewResponse()
	for i, pool := range pools {
		pull, err := types.NewAsset(pool.Info, deposits[i]).TransferInMsg(info.Sender, env.Contract.Address)
		if err != nil {
			return nil, err
		}
		if pull != nil {
			resp.AddMessage(*pull)
		}
	}
	mint, err := host.WasmExecute(cfg.PairInfo.LiquidityToken, types.Cw20ExecuteMsg{
		Mint: &types.Cw20Mint{Recipient: info.Sender, Amount: share},
	}, nil)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("sender", info.Sender).
		Str("assets", fmt.Sprintf("%s, %s", assets[0], assets[1])).
		Str("share", share.String()).
		Msg("Liquidity provided")

	return resp.
		AddMessage(mint).
		AddAttribute("action", "provide_liquidity").
		AddAttribute("sender", info.Sender).
		AddAttribute("receiver", info.Sender).
		AddAttribute("assets", fmt.Sprintf("%s, %s", assets[0], assets[1])).
		AddAttribute("share", share.String()), nil
}

// computeShare prices deposits against the reserves as they were before
// the call.
func computeShare(deps host.Deps, cfg Config, pools [2]types.Asset, deposits [2]sdkmath.Int) (sdkmath.Int, error) {
	reserves, err := liquidity.PreDepositReserves(pools, deposits)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	totalShare, err := querySupply(deps, cfg.PairInfo.LiquidityToken)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return liquidity.ComputeShare(deposits, reserves, totalShare)
}
