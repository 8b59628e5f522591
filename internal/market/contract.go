/*

The market is the orchestrator of a venue. It owns the lifecycle
boundaries, creates the liquidity pool as a child contract and answers the
phase queries the pool makes before every deposit or withdrawal. During the
AMM phase it prices borrowing against the pool's live reserves.

*/

package market

import (
	"github.com/rs/zerolog"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/types"
)

// InstantiatePoolReplyID tags the pool creation sub-message.
const InstantiatePoolReplyID uint64 = 1

const poolLabel = "ZLL LP"

// Contract implements host.Contract for markets.
type Contract struct {
	log zerolog.Logger
}

func NewContract() *Contract {
	return &Contract{log: logger.GetForComponent("market_contract")}
}

var _ host.Contract = (*Contract)(nil)

func (c *Contract) Instantiate(deps host.Deps, env host.Env, info host.MessageInfo, raw []byte) (*host.Response, error) {
	var msg types.MarketInstantiateMsg
	if err := host.Decode(raw, &msg); err != nil {
		return nil, err
	}
	if err := msg.MarketPhasesInfo.Validate(); err != nil {
		return nil, err
	}
	operator, err := deps.API.AddrValidate(msg.MarketOperator)
	if err != nil {
		return nil, err
	}

	err = config.Save(deps.Storage, Config{
		MarketOperator:   operator,
		LiquidityPool:    addrWhileInstantiation,
		MarketPhasesInfo: msg.MarketPhasesInfo,
		BlocksPerYear:    msg.BlocksPerYear,
		Alpha:            msg.Alpha,
	})
	if err != nil {
		return nil, err
	}

	instantiatePool, err := host.WasmInstantiate(msg.LiquidityPoolCodeID, types.PoolInstantiateMsg{
		AssetInfos:   msg.AssetInfos,
		TokenCodeID:  msg.LiquidityPoolTokenCodeID,
		FactoryAddr:  env.Contract.Address,
		BalanceCheck: msg.BalanceCheck,
	}, nil, poolLabel)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("market", env.Contract.Address).
		Str("market_operator", operator).
		Uint64("lp_phase_ends_at", msg.MarketPhasesInfo.LpPhaseEndsAt).
		Uint64("amm_phase_ends_at", msg.MarketPhasesInfo.AmmPhaseEndsAt).
		Uint64("settlement_phase_ends_at", msg.MarketPhasesInfo.SettlementPhaseEndsAt).
		Msg("Market instantiated, creating liquidity pool")

	return host.NewResponse().
		AddSubMessage(host.ReplyOnSuccess(instantiatePool, InstantiatePoolReplyID)).
		AddAttribute("method", "instantiate").
		AddAttribute("market_operator", operator), nil
}

func (c *Contract) Execute(deps host.Deps, env host.Env, info host.MessageInfo, raw []byte) (*host.Response, error) {
	var msg types.MarketExecuteMsg
	if err := host.DecodeVariant(raw, &msg); err != nil {
		return nil, err
	}
	phase, err := currentPhase(deps, env.Block.Height)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.Borrow != nil:
		if !phase.CanAmmAcceptBorrowing() {
			return nil, types.ErrUnauthorized.Wrapf("borrowing is not allowed in the %s phase", phase)
		}
		return c.borrow(deps, env, info.Sender, *msg.Borrow)
	default:
		return nil, types.ErrUnsupportedMessage.Wrap("empty market execute message")
	}
}

func (c *Contract) Reply(deps host.Deps, env host.Env, reply host.Reply) (*host.Response, error) {
	if reply.Result.IsErr() {
		return nil, types.ErrReplyFailed.Wrap(reply.Result.Err)
	}

	switch reply.ID {
	case InstantiatePoolReplyID:
		return c.replyOnInstantiatePool(deps, reply)
	default:
		return nil, types.ErrUnknownReply.Wrapf("reply id `%d` is invalid", reply.ID)
	}
}

func (c *Contract) replyOnInstantiatePool(deps host.Deps, reply host.Reply) (*host.Response, error) {
	cfg, err := loadConfig(deps)
	if err != nil {
		return nil, err
	}
	if cfg.LiquidityPool != addrWhileInstantiation {
		return nil, types.ErrUnauthorized.Wrap("liquidity pool is already set")
	}

	res, err := host.ParseReplyInstantiateData(reply)
	if err != nil {
		return nil, err
	}
	pool, err := deps.API.AddrValidate(res.ContractAddress)
	if err != nil {
		return nil, err
	}
	if cfg, err = setLiquidityPool(deps, pool); err != nil {
		return nil, err
	}

	c.log.Info().Str("liquidity_pool", cfg.LiquidityPool).Msg("Liquidity pool registered")

	return host.NewResponse().AddAttribute("liquidity_pool_addr", cfg.LiquidityPool), nil
}
