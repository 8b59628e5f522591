package market

import (
	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

func (c *Contract) Query(deps host.Deps, env host.Env, raw []byte) ([]byte, error) {
	var msg types.MarketQueryMsg
	if err := host.DecodeVariant(raw, &msg); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(deps)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.GetMarketOperator != nil:
		return host.Encode(types.MarketOperatorResponse{MarketOperator: cfg.MarketOperator})
	case msg.GetLiquidityPool != nil:
		return host.Encode(types.LiquidityPoolResponse{LiquidityPool: cfg.LiquidityPool})
	case msg.GetMarketPhase != nil:
		return host.Encode(types.MarketPhaseResponse{Phase: cfg.MarketPhasesInfo.PhaseAt(env.Block.Height)})
	case msg.GetMarketPhasesInfo != nil:
		return host.Encode(types.MarketPhasesInfoResponse(cfg.MarketPhasesInfo))
	case msg.GetBorrowingTerms != nil:
		terms, err := borrowingTerms(deps, msg.GetBorrowingTerms.PledgedCollateral, env.Block.Height)
		if err != nil {
			return nil, err
		}
		return host.Encode(types.BorrowingTermsResponse(terms))
	default:
		return nil, types.ErrUnsupportedMessage.Wrap("empty market query message")
	}
}
