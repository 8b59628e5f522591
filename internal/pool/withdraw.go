package pool

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/liquidity"
	"github.com/elys-network/zll/internal/types"
)

// receiveCw20 handles shares sent to the pool through the share token.
func (c *Contract) receiveCw20(deps host.Deps, env host.Env, info host.MessageInfo, msg types.Cw20ReceiveMsg) (*host.Response, error) {
	var hook types.PoolHookMsg
	if err := host.DecodeVariant(msg.Msg, &hook); err != nil {
		return nil, err
	}
	if hook.WithdrawLiquidity == nil {
		return nil, types.ErrUnsupportedMessage.Wrapf("msg `%s` cannot be handled", msg.Msg)
	}
	return c.withdrawLiquidity(deps, env, info, msg.Sender, msg.Amount)
}

// withdrawLiquidity refunds sender a proportional part of both reserves and
// burns the shares the token contract just moved to the pool. Only the share
// token may call it; the burn itself enforces that the shares exist.
func (c *Contract) withdrawLiquidity(deps host.Deps, env host.Env, info host.MessageInfo, sender string, amount sdkmath.Int) (*host.Response, error) {
	cfg, err := loadConfig(deps)
	if err != nil {
		return nil, err
	}
	if info.Sender != cfg.PairInfo.LiquidityToken {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the liquidity token", info.Sender)
	}

	pools, totalShare, err := poolInfo(deps, cfg)
	if err != nil {
		return nil, err
	}
	refund := liquidity.ShareInAssets(pools, amount, totalShare)

	resp := host.NewResponse()
	for _, asset := range refund {
		if asset.Amount.IsZero() {
			continue
		}
		out, err := asset.TransferOutMsg(sender)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(out)
	}
	burn, err := host.WasmExecute(cfg.PairInfo.LiquidityToken, types.Cw20ExecuteMsg{
		Burn: &types.Cw20Burn{Amount: amount},
	}, nil)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("sender", sender).
		Str("withdrawn_share", amount.String()).
		Str("refund_assets", fmt.Sprintf("%s, %s", refund[0], refund[1])).
		Msg("Liquidity withdrawn")

	return resp.
		AddMessage(burn).
		AddAttribute("action", "withdraw_liquidity").
		AddAttribute("sender", sender).
		AddAttribute("withdrawn_share", amount.String()).
		AddAttribute("refund_assets", fmt.Sprintf("%s, %s", refund[0], refund[1])), nil
}

// poolInfo reads the live reserves and the share supply.
func poolInfo(deps host.Deps, cfg Config) ([2]types.Asset, sdkmath.Int, error) {
	pools, err := queryPools(deps, cfg.PairInfo.AssetInfos, cfg.PairInfo.ContractAddr)
	if err != nil {
		return pools, sdkmath.ZeroInt(), err
	}
	totalShare, err := querySupply(deps, cfg.PairInfo.LiquidityToken)
	if err != nil {
		return pools, sdkmath.ZeroInt(), err
	}
	return pools, totalShare, nil
}
