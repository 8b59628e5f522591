package host

import (
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// API validates and normalises account and contract addresses.
type API interface {
	AddrValidate(addr string) (string, error)
}

// Querier gives a contract read-only access to other contracts and to the bank.
type Querier interface {
	QueryWasmSmart(contract string, msg any, out any) error
	QueryBalance(addr, denom string) (sdk.Coin, error)
}

// Deps bundles the collaborators of a single contract call. Storage is the
// contract's own namespace; writes are committed only if the call succeeds.
type Deps struct {
	Storage storetypes.KVStore
	API     API
	Querier Querier
}
