package types

import (
	sdkmath "cosmossdk.io/math"
)

// Cw20ExecuteMsg is the execute surface of a cw20 token. Exactly one variant is set.
type Cw20ExecuteMsg struct {
	Transfer          *Cw20Transfer          `json:"transfer,omitempty"`
	TransferFrom      *Cw20TransferFrom      `json:"transfer_from,omitempty"`
	Send              *Cw20Send              `json:"send,omitempty"`
	Burn              *Cw20Burn              `json:"burn,omitempty"`
	Mint              *Cw20Mint              `json:"mint,omitempty"`
	IncreaseAllowance *Cw20IncreaseAllowance `json:"increase_allowance,omitempty"`
}

type Cw20Transfer struct {
	Recipient string      `json:"recipient"`
	Amount    sdkmath.Int `json:"amount"`
}

type Cw20TransferFrom struct {
	Owner     string      `json:"owner"`
	Recipient string      `json:"recipient"`
	Amount    sdkmath.Int `json:"amount"`
}

// Cw20Send moves tokens to a contract and calls its receive hook with Msg.
type Cw20Send struct {
	Contract string      `json:"contract"`
	Amount   sdkmath.Int `json:"amount"`
	Msg      []byte      `json:"msg"`
}

type Cw20Burn struct {
	Amount sdkmath.Int `json:"amount"`
}

type Cw20Mint struct {
	Recipient string      `json:"recipient"`
	Amount    sdkmath.Int `json:"amount"`
}

type Cw20IncreaseAllowance struct {
	Spender string      `json:"spender"`
	Amount  sdkmath.Int `json:"amount"`
}

// Cw20ReceiveMsg is delivered to a contract by a cw20 send. Sender is the
// account that initiated the send, not the token contract.
type Cw20ReceiveMsg struct {
	Sender string      `json:"sender"`
	Amount sdkmath.Int `json:"amount"`
	Msg    []byte      `json:"msg"`
}

// Cw20ReceiveHook is the execute message a cw20 send delivers to the receiving contract.
type Cw20ReceiveHook struct {
	Receive *Cw20ReceiveMsg `json:"receive"`
}

// Cw20QueryMsg is the query surface of a cw20 token.
type Cw20QueryMsg struct {
	Balance   *Cw20BalanceQuery   `json:"balance,omitempty"`
	TokenInfo *struct{}           `json:"token_info,omitempty"`
	Minter    *struct{}           `json:"minter,omitempty"`
	Allowance *Cw20AllowanceQuery `json:"allowance,omitempty"`
}

type Cw20BalanceQuery struct {
	Address string `json:"address"`
}

type Cw20AllowanceQuery struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type Cw20BalanceResponse struct {
	Balance sdkmath.Int `json:"balance"`
}

type Cw20TokenInfoResponse struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    uint8       `json:"decimals"`
	TotalSupply sdkmath.Int `json:"total_supply"`
}

type Cw20AllowanceResponse struct {
	Allowance sdkmath.Int `json:"allowance"`
}

// MinterResponse names the only account allowed to mint, and an optional supply cap.
type MinterResponse struct {
	Minter string       `json:"minter"`
	Cap    *sdkmath.Int `json:"cap,omitempty"`
}

type Cw20Coin struct {
	Address string      `json:"address"`
	Amount  sdkmath.Int `json:"amount"`
}

// TokenInstantiateMsg creates a cw20 token.
type TokenInstantiateMsg struct {
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	Decimals        uint8           `json:"decimals"`
	InitialBalances []Cw20Coin      `json:"initial_balances"`
	Mint            *MinterResponse `json:"mint,omitempty"`
}
