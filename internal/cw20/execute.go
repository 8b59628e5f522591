package cw20

import (
	sdkmath "cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

func assertNonZero(amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidZeroAmount
	}
	return nil
}

func (c *Contract) executeTransfer(deps host.Deps, info host.MessageInfo, msg types.Cw20Transfer) (*host.Response, error) {
	if err := assertNonZero(msg.Amount); err != nil {
		return nil, err
	}
	recipient, err := deps.API.AddrValidate(msg.Recipient)
	if err != nil {
		return nil, err
	}
	if err := c.move(deps, info.Sender, recipient, msg.Amount); err != nil {
		return nil, err
	}

	return host.NewResponse().
		AddAttribute("action", "transfer").
		AddAttribute("from", info.Sender).
		AddAttribute("to", recipient).
		AddAttribute("amount", msg.Amount.String()), nil
}

func (c *Contract) executeTransferFrom(deps host.Deps, info host.MessageInfo, msg types.Cw20TransferFrom) (*host.Response, error) {
	if err := assertNonZero(msg.Amount); err != nil {
		return nil, err
	}
	owner, err := deps.API.AddrValidate(msg.Owner)
	if err != nil {
		return nil, err
	}
	recipient, err := deps.API.AddrValidate(msg.Recipient)
	if err != nil {
		return nil, err
	}

	allowance, err := loadAllowance(deps, owner, info.Sender)
	if err != nil {
		return nil, err
	}
	if allowance.LT(msg.Amount) {
		return nil, sdkerrors.ErrInsufficientFunds.Wrapf("allowance of %s for %s is %s, needs %s",
			owner, info.Sender, allowance, msg.Amount)
	}
	if err := allowances.Save(deps.Storage, allowanceKey(owner, info.Sender), allowance.Sub(msg.Amount)); err != nil {
		return nil, err
	}
	if err := c.move(deps, owner, recipient, msg.Amount); err != nil {
		return nil, err
	}

	return host.NewResponse().
		AddAttribute("action", "transfer_from").
		AddAttribute("from", owner).
		AddAttribute("to", recipient).
		AddAttribute("by", info.Sender).
		AddAttribute("amount", msg.Amount.String()), nil
}

// executeSend moves the tokens to a contract and calls its receive hook on
// behalf of the sender.
func (c *Contract) executeSend(deps host.Deps, info host.MessageInfo, msg types.Cw20Send) (*host.Response, error) {
	if err := assertNonZero(msg.Amount); err != nil {
		return nil, err
	}
	contract, err := deps.API.AddrValidate(msg.Contract)
	if err != nil {
		return nil, err
	}
	if err := c.move(deps, info.Sender, contract, msg.Amount); err != nil {
		return nil, err
	}

	hook, err := host.WasmExecute(contract, types.Cw20ReceiveHook{
		Receive: &types.Cw20ReceiveMsg{Sender: info.Sender, Amount: msg.Amount, Msg: msg.Msg},
	}, nil)
	if err != nil {
		return nil, err
	}

	return host.NewResponse().
		AddMessage(hook).
		AddAttribute("action", "send").
		AddAttribute("from", info.Sender).
		AddAttribute("to", contract).
		AddAttribute("amount", msg.Amount.String()), nil
}

func (c *Contract) executeBurn(deps host.Deps, info host.MessageInfo, msg types.Cw20Burn) (*host.Response, error) {
	if err := assertNonZero(msg.Amount); err != nil {
		return nil, err
	}
	if err := c.debit(deps, info.Sender, msg.Amount); err != nil {
		return nil, err
	}
	_, err := tokenInfo.Update(deps.Storage, func(token TokenInfo) (TokenInfo, error) {
		supply, err := types.CheckedSub(token.TotalSupply, msg.Amount)
		if err != nil {
			return token, err
		}
		token.TotalSupply = supply
		return token, nil
	})
	if err != nil {
		return nil, err
	}

	return host.NewResponse().
		AddAttribute("action", "burn").
		AddAttribute("from", info.Sender).
		AddAttribute("amount", msg.Amount.String()), nil
}

func (c *Contract) executeMint(deps host.Deps, info host.MessageInfo, msg types.Cw20Mint) (*host.Response, error) {
	if err := assertNonZero(msg.Amount); err != nil {
		return nil, err
	}
	recipient, err := deps.API.AddrValidate(msg.Recipient)
	if err != nil {
		return nil, err
	}

	token, err := tokenInfo.Update(deps.Storage, func(token TokenInfo) (TokenInfo, error) {
		if token.Mint == nil || token.Mint.Minter != info.Sender {
			return token, types.ErrUnauthorized.Wrapf("%s is not the minter", info.Sender)
		}
		supply, err := types.CheckedAdd(token.TotalSupply, msg.Amount)
		if err != nil {
			return token, err
		}
		if token.Mint.Cap != nil && supply.GT(*token.Mint.Cap) {
			return token, types.ErrOverflow.Wrapf("minting %s exceeds cap %s", msg.Amount, token.Mint.Cap)
		}
		token.TotalSupply = supply
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.credit(deps, recipient, msg.Amount); err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("symbol", token.Symbol).
		Str("to", recipient).
		Str("amount", msg.Amount.String()).
		Msg("Minted")

	return host.NewResponse().
		AddAttribute("action", "mint").
		AddAttribute("to", recipient).
		AddAttribute("amount", msg.Amount.String()), nil
}

func (c *Contract) executeIncreaseAllowance(deps host.Deps, info host.MessageInfo, msg types.Cw20IncreaseAllowance) (*host.Response, error) {
	if err := assertNonZero(msg.Amount); err != nil {
		return nil, err
	}
	spender, err := deps.API.AddrValidate(msg.Spender)
	if err != nil {
		return nil, err
	}
	if spender == info.Sender {
		return nil, types.ErrUnauthorized.Wrap("cannot set allowance to own account")
	}

	allowance, err := loadAllowance(deps, info.Sender, spender)
	if err != nil {
		return nil, err
	}
	if allowance, err = types.CheckedAdd(allowance, msg.Amount); err != nil {
		return nil, err
	}
	if err := allowances.Save(deps.Storage, allowanceKey(info.Sender, spender), allowance); err != nil {
		return nil, err
	}

	return host.NewResponse().
		AddAttribute("action", "increase_allowance").
		AddAttribute("owner", info.Sender).
		AddAttribute("spender", spender).
		AddAttribute("amount", msg.Amount.String()), nil
}
