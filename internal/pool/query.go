package pool

import (
	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/liquidity"
	"github.com/elys-network/zll/internal/types"
)

func (c *Contract) Query(deps host.Deps, env host.Env, raw []byte) ([]byte, error) {
	var msg types.PoolQueryMsg
	if err := host.DecodeVariant(raw, &msg); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(deps)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.Pair != nil:
		return host.Encode(cfg.PairInfo)
	case msg.Pool != nil:
		pools, totalShare, err := poolInfo(deps, cfg)
		if err != nil {
			return nil, err
		}
		return host.Encode(types.PoolResponse{Assets: pools, TotalShare: totalShare})
	case msg.SimulateProvide != nil:
		return querySimulateProvide(deps, cfg, msg.SimulateProvide.Assets)
	case msg.SimulateWithdraw != nil:
		return querySimulateWithdraw(deps, cfg, *msg.SimulateWithdraw)
	default:
		return nil, types.ErrUnsupportedMessage.Wrap("empty pool query message")
	}
}

// querySimulateProvide previews a deposit that has not been sent yet, so the
// live reserves are used as they are.
func querySimulateProvide(deps host.Deps, cfg Config, assets [2]types.Asset) ([]byte, error) {
	pools, totalShare, err := poolInfo(deps, cfg)
	if err != nil {
		return nil, err
	}
	deposits, err := liquidity.MatchDeposits(assets, pools)
	if err != nil {
		return nil, err
	}
	reserves := [2]sdkmath.Int{pools[0].Amount, pools[1].Amount}
	share, err := liquidity.ComputeShare(deposits, reserves, totalShare)
	if err != nil {
		return nil, err
	}
	return host.Encode(types.SimulateProvideResponse{Share: share})
}

func querySimulateWithdraw(deps host.Deps, cfg Config, msg types.SimulateWithdrawQuery) ([]byte, error) {
	pools, totalShare, err := poolInfo(deps, cfg)
	if err != nil {
		return nil, err
	}
	if msg.Share.IsNil() || msg.Share.IsNegative() || msg.Share.GT(totalShare) {
		return nil, types.ErrOverflow.Wrapf("share %s exceeds total share %s", msg.Share, totalShare)
	}
	return host.Encode(types.SimulateWithdrawResponse{Refund: liquidity.ShareInAssets(pools, msg.Share, totalShare)})
}
