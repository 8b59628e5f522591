// Package mock provides in-memory collaborators for unit-testing contracts
// without the simulated chain.
package mock

import (
	"encoding/json"
	"time"

	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/elys-network/zll/internal/host"
)

const (
	Bech32Prefix = "zll"
	ChainID      = "zll-mock-1"
)

var API = host.NewBech32API(Bech32Prefix)

// Addr derives a valid address from a readable label.
func Addr(label string) string {
	return API.AddrMake(label)
}

// SmartQueryHandler answers a smart query sent to one contract.
type SmartQueryHandler func(msg []byte) ([]byte, error)

// Querier answers smart queries from registered handlers and bank queries
// from a static balance table.
type Querier struct {
	Contracts map[string]SmartQueryHandler
	Balances  map[string]sdk.Coins
}

func NewQuerier() *Querier {
	return &Querier{
		Contracts: make(map[string]SmartQueryHandler),
		Balances:  make(map[string]sdk.Coins),
	}
}

// HandleJSON registers a contract that answers every query with resp.
func (q *Querier) HandleJSON(contract string, resp any) {
	q.Contracts[contract] = func([]byte) ([]byte, error) {
		return json.Marshal(resp)
	}
}

func (q *Querier) QueryWasmSmart(contract string, msg any, out any) error {
	handler, ok := q.Contracts[contract]
	if !ok {
		return host.ErrQuery.Wrapf("no such contract: %s", contract)
	}
	bz, err := host.Encode(msg)
	if err != nil {
		return err
	}
	resp, err := handler(bz)
	if err != nil {
		return host.ErrQuery.Wrapf("%s: %s", contract, err)
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return host.ErrQuery.Wrapf("%s: %s", contract, err)
	}
	return nil
}

func (q *Querier) QueryBalance(addr, denom string) (sdk.Coin, error) {
	return sdk.NewCoin(denom, q.Balances[addr].AmountOf(denom)), nil
}

// Deps returns fresh in-memory storage wired to the given querier.
func Deps(querier *Querier) host.Deps {
	return host.Deps{
		Storage: dbadapter.Store{DB: dbm.NewMemDB()},
		API:     API,
		Querier: querier,
	}
}

// Env places a contract at the given height.
func Env(contract string, height uint64) host.Env {
	return host.Env{
		Block: host.BlockInfo{
			Height:  height,
			Time:    time.Unix(1_650_000_000, 0).UTC().Add(time.Duration(height) * 5 * time.Second),
			ChainID: ChainID,
		},
		Contract: host.ContractInfo{Address: contract},
	}
}

func Info(sender string, funds ...sdk.Coin) host.MessageInfo {
	return host.MessageInfo{Sender: sender, Funds: sdk.NewCoins(funds...)}
}

// MustEncode marshals a message for a test call.
func MustEncode(v any) []byte {
	bz, err := host.Encode(v)
	if err != nil {
		panic(err)
	}
	return bz
}
