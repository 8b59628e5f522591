package chain

import (
	"encoding/json"
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/elys-network/zll/internal/host"
)

// querier serves contract queries against the state of the running call,
// including writes it has not committed yet.
type querier struct {
	tx    *txContext
	store storetypes.KVStore
}

var _ host.Querier = (*querier)(nil)

func (q *querier) QueryWasmSmart(contractAddr string, msg any, out any) error {
	bz, err := q.smart(contractAddr, msg)
	if err != nil {
		return host.ErrQuery.Wrapf("%s: %s", contractAddr, err)
	}
	if err := json.Unmarshal(bz, out); err != nil {
		return host.ErrQuery.Wrapf("%s: %s", contractAddr, err)
	}
	return nil
}

// smart returns the raw answer of a contract, with its error unwrapped.
func (q *querier) smart(contractAddr string, msg any) ([]byte, error) {
	contract, err := q.tx.contractAt(q.store, contractAddr)
	if err != nil {
		return nil, err
	}
	payload, err := host.Encode(msg)
	if err != nil {
		return nil, err
	}
	return guard(contractAddr, func() ([]byte, error) {
		return contract.Query(q.tx.deps(q.store, contractAddr), q.tx.env(contractAddr), payload)
	})
}

func (q *querier) QueryBalance(addr, denom string) (sdk.Coin, error) {
	if err := sdk.ValidateDenom(denom); err != nil {
		return sdk.Coin{}, host.ErrQuery.Wrap(err.Error())
	}
	return getBalance(q.store, addr, denom), nil
}

func uint64String(v uint64) string {
	return strconv.FormatUint(v, 10)
}
