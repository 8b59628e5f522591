/*

A minimal cw20 fungible token. The liquidity pool uses it as its share token
and markets can use it as one of the pooled assets. Balances and allowances
are kept in the contract's own store; a failed call leaves them untouched.

*/

package cw20

import (
	sdkmath "cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/rs/zerolog"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/types"
)

// Contract implements host.Contract for cw20 tokens.
type Contract struct {
	log zerolog.Logger
}

func NewContract() *Contract {
	return &Contract{log: logger.GetForComponent("cw20_contract")}
}

var _ host.Contract = (*Contract)(nil)

func (c *Contract) Instantiate(deps host.Deps, env host.Env, info host.MessageInfo, raw []byte) (*host.Response, error) {
	var msg types.TokenInstantiateMsg
	if err := host.Decode(raw, &msg); err != nil {
		return nil, err
	}
	if len(msg.Name) < 3 || len(msg.Name) > 50 {
		return nil, types.ErrInvalidAsset.Wrapf("name %q must be between 3 and 50 characters", msg.Name)
	}
	if len(msg.Symbol) < 3 || len(msg.Symbol) > 12 {
		return nil, types.ErrInvalidAsset.Wrapf("symbol %q must be between 3 and 12 characters", msg.Symbol)
	}

	supply := sdkmath.ZeroInt()
	for _, coin := range msg.InitialBalances {
		addr, err := deps.API.AddrValidate(coin.Address)
		if err != nil {
			return nil, err
		}
		if !types.IsUint128(coin.Amount) {
			return nil, types.ErrInvalidAsset.Wrapf("initial balance of %s must be an unsigned 128-bit integer", addr)
		}
		balance, err := loadBalance(deps, addr)
		if err != nil {
			return nil, err
		}
		if balance, err = types.CheckedAdd(balance, coin.Amount); err != nil {
			return nil, err
		}
		if err := balances.Save(deps.Storage, addr, balance); err != nil {
			return nil, err
		}
		if supply, err = types.CheckedAdd(supply, coin.Amount); err != nil {
			return nil, err
		}
	}

	if msg.Mint != nil {
		if _, err := deps.API.AddrValidate(msg.Mint.Minter); err != nil {
			return nil, err
		}
		if msg.Mint.Cap != nil && !types.IsUint128(*msg.Mint.Cap) {
			return nil, types.ErrInvalidAsset.Wrap("mint cap must be an unsigned 128-bit integer")
		}
		if msg.Mint.Cap != nil && supply.GT(*msg.Mint.Cap) {
			return nil, types.ErrOverflow.Wrapf("initial supply %s is greater than cap %s", supply, msg.Mint.Cap)
		}
	}

	err := tokenInfo.Save(deps.Storage, TokenInfo{
		Name:        msg.Name,
		Symbol:      msg.Symbol,
		Decimals:    msg.Decimals,
		TotalSupply: supply,
		Mint:        msg.Mint,
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("token", env.Contract.Address).
		Str("symbol", msg.Symbol).
		Str("total_supply", supply.String()).
		Msg("Token instantiated")

	return host.NewResponse(), nil
}

func (c *Contract) Execute(deps host.Deps, env host.Env, info host.MessageInfo, raw []byte) (*host.Response, error) {
	var msg types.Cw20ExecuteMsg
	if err := host.DecodeVariant(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.Transfer != nil:
		return c.executeTransfer(deps, info, *msg.Transfer)
	case msg.TransferFrom != nil:
		return c.executeTransferFrom(deps, info, *msg.TransferFrom)
	case msg.Send != nil:
		return c.executeSend(deps, info, *msg.Send)
	case msg.Burn != nil:
		return c.executeBurn(deps, info, *msg.Burn)
	case msg.Mint != nil:
		return c.executeMint(deps, info, *msg.Mint)
	case msg.IncreaseAllowance != nil:
		return c.executeIncreaseAllowance(deps, info, *msg.IncreaseAllowance)
	default:
		return nil, types.ErrUnsupportedMessage.Wrap("empty cw20 execute message")
	}
}

func (c *Contract) Query(deps host.Deps, env host.Env, raw []byte) ([]byte, error) {
	var msg types.Cw20QueryMsg
	if err := host.DecodeVariant(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.Balance != nil:
		balance, err := loadBalance(deps, msg.Balance.Address)
		if err != nil {
			return nil, err
		}
		return host.Encode(types.Cw20BalanceResponse{Balance: balance})
	case msg.TokenInfo != nil:
		token, err := tokenInfo.Load(deps.Storage)
		if err != nil {
			return nil, err
		}
		return host.Encode(types.Cw20TokenInfoResponse{
			Name:        token.Name,
			Symbol:      token.Symbol,
			Decimals:    token.Decimals,
			TotalSupply: token.TotalSupply,
		})
	case msg.Minter != nil:
		token, err := tokenInfo.Load(deps.Storage)
		if err != nil {
			return nil, err
		}
		return host.Encode(token.Mint)
	case msg.Allowance != nil:
		allowance, err := loadAllowance(deps, msg.Allowance.Owner, msg.Allowance.Spender)
		if err != nil {
			return nil, err
		}
		return host.Encode(types.Cw20AllowanceResponse{Allowance: allowance})
	default:
		return nil, types.ErrUnsupportedMessage.Wrap("empty cw20 query message")
	}
}

// Reply is never expected: the token issues no sub-messages with a reply.
func (c *Contract) Reply(deps host.Deps, env host.Env, reply host.Reply) (*host.Response, error) {
	return nil, types.ErrUnknownReply.Wrapf("reply id `%d` is invalid", reply.ID)
}

func (c *Contract) debit(deps host.Deps, addr string, amount sdkmath.Int) error {
	balance, err := loadBalance(deps, addr)
	if err != nil {
		return err
	}
	if balance.LT(amount) {
		return sdkerrors.ErrInsufficientFunds.Wrapf("%s has %s, needs %s", addr, balance, amount)
	}
	return balances.Save(deps.Storage, addr, balance.Sub(amount))
}

func (c *Contract) credit(deps host.Deps, addr string, amount sdkmath.Int) error {
	balance, err := loadBalance(deps, addr)
	if err != nil {
		return err
	}
	balance, err = types.CheckedAdd(balance, amount)
	if err != nil {
		return err
	}
	return balances.Save(deps.Storage, addr, balance)
}

func (c *Contract) move(deps host.Deps, from, to string, amount sdkmath.Int) error {
	if err := c.debit(deps, from, amount); err != nil {
		return err
	}
	return c.credit(deps, to, amount)
}
