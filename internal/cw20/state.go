package cw20

import (
	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

// TokenInfo is the stored metadata and supply of the token.
type TokenInfo struct {
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply sdkmath.Int           `json:"total_supply"`
	Mint        *types.MinterResponse `json:"mint,omitempty"`
}

var (
	tokenInfo  = host.NewItem[TokenInfo]("token_info")
	balances   = host.NewMap[sdkmath.Int]("balance")
	allowances = host.NewMap[sdkmath.Int]("allowance")
)

func allowanceKey(owner, spender string) string {
	return owner + "/" + spender
}

func loadBalance(deps host.Deps, addr string) (sdkmath.Int, error) {
	balance, err := balances.MayLoad(deps.Storage, addr)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if balance == nil {
		return sdkmath.ZeroInt(), nil
	}
	return *balance, nil
}

func loadAllowance(deps host.Deps, owner, spender string) (sdkmath.Int, error) {
	allowance, err := allowances.MayLoad(deps.Storage, allowanceKey(owner, spender))
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if allowance == nil {
		return sdkmath.ZeroInt(), nil
	}
	return *allowance, nil
}
