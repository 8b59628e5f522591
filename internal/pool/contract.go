/*

The liquidity pool holds the two reserves of a market. It mints shares on
deposits while the market provides liquidity, and redeems them for a
proportional part of both reserves once the market has settled. Reserves and
share supply are always read live: the pool keeps no balances of its own.

*/

package pool

import (
	"github.com/rs/zerolog"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/types"
)

// InstantiateTokenReplyID tags the share-token creation sub-message.
const InstantiateTokenReplyID uint64 = 1

const (
	lpTokenSymbol   = "uLP"
	lpTokenDecimals = 6
	lpTokenLabel    = "ZLL LP token"
)

// Contract implements host.Contract for liquidity pools.
type Contract struct {
	log zerolog.Logger
}

func NewContract() *Contract {
	return &Contract{log: logger.GetForComponent("pool_contract")}
}

var _ host.Contract = (*Contract)(nil)

func (c *Contract) Instantiate(deps host.Deps, env host.Env, info host.MessageInfo, raw []byte) (*host.Response, error) {
	var msg types.PoolInstantiateMsg
	if err := host.Decode(raw, &msg); err != nil {
		return nil, err
	}
	if err := msg.AssetInfos.Validate(deps.API); err != nil {
		return nil, err
	}
	factory, err := deps.API.AddrValidate(msg.FactoryAddr)
	if err != nil {
		return nil, err
	}

	err = config.Save(deps.Storage, Config{
		PairInfo: types.PairInfo{
			AssetInfos:     msg.AssetInfos,
			ContractAddr:   env.Contract.Address,
			LiquidityToken: addrWhileInstantiation,
			PairType:       types.XykPairType(),
		},
		FactoryAddr:  factory,
		BalanceCheck: msg.BalanceCheck,
	})
	if err != nil {
		return nil, err
	}

	tokenName, err := formatLpTokenName(deps, msg.AssetInfos)
	if err != nil {
		return nil, err
	}
	instantiateToken, err := host.WasmInstantiate(msg.TokenCodeID, types.TokenInstantiateMsg{
		Name:            tokenName,
		Symbol:          lpTokenSymbol,
		Decimals:        lpTokenDecimals,
		InitialBalances: []types.Cw20Coin{},
		Mint:            &types.MinterResponse{Minter: env.Contract.Address},
	}, nil, lpTokenLabel)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("pool", env.Contract.Address).
		Str("factory", factory).
		Str("lp_token_name", tokenName).
		Msg("Pool instantiated, creating share token")

	return host.NewResponse().
		AddSubMessage(host.ReplyOnSuccess(instantiateToken, InstantiateTokenReplyID)).
		AddAttribute("method", "instantiate"), nil
}

func (c *Contract) Execute(deps host.Deps, env host.Env, info host.MessageInfo, raw []byte) (*host.Response, error) {
	var msg types.PoolExecuteMsg
	if err := host.DecodeVariant(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.ProvideLiquidity != nil:
		if err := assertPhase(deps, types.MarketPhase.CanLpAcceptDeposits); err != nil {
			return nil, err
		}
		return c.provideLiquidity(deps, env, info, msg.ProvideLiquidity.Assets)
	case msg.Receive != nil:
		if err := assertPhase(deps, types.MarketPhase.CanLpAcceptWithdrawals); err != nil {
			return nil, err
		}
		return c.receiveCw20(deps, env, info, *msg.Receive)
	default:
		return nil, types.ErrUnsupportedMessage.Wrap("empty pool execute message")
	}
}

// assertPhase consults the market for its current phase. A failed query
// aborts the call.
func assertPhase(deps host.Deps, allowed func(types.MarketPhase) bool) error {
	cfg, err := loadConfig(deps)
	if err != nil {
		return err
	}
	phase, err := queryMarketPhase(deps, cfg.FactoryAddr)
	if err != nil {
		return err
	}
	if !allowed(phase) {
		return types.ErrUnauthorized.Wrapf("not allowed in the %s phase", phase)
	}
	return nil
}

func (c *Contract) Reply(deps host.Deps, env host.Env, reply host.Reply) (*host.Response, error) {
	if reply.Result.IsErr() {
		return nil, types.ErrReplyFailed.Wrap(reply.Result.Err)
	}

	switch reply.ID {
	case InstantiateTokenReplyID:
		return c.replyOnInstantiateToken(deps, reply)
	default:
		return nil, types.ErrUnknownReply.Wrapf("reply id `%d` is invalid", reply.ID)
	}
}

func (c *Contract) replyOnInstantiateToken(deps host.Deps, reply host.Reply) (*host.Response, error) {
	cfg, err := loadConfig(deps)
	if err != nil {
		return nil, err
	}
	if cfg.PairInfo.LiquidityToken != addrWhileInstantiation {
		return nil, types.ErrUnauthorized.Wrap("liquidity token is already set")
	}

	res, err := host.ParseReplyInstantiateData(reply)
	if err != nil {
		return nil, err
	}
	token, err := deps.API.AddrValidate(res.ContractAddress)
	if err != nil {
		return nil, err
	}
	if cfg, err = setLiquidityToken(deps, token); err != nil {
		return nil, err
	}

	c.log.Info().
		Str("pool", cfg.PairInfo.ContractAddr).
		Str("liquidity_token", cfg.PairInfo.LiquidityToken).
		Msg("Share token registered")

	return host.NewResponse().AddAttribute("liquidity_token_addr", cfg.PairInfo.LiquidityToken), nil
}
