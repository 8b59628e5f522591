/*

Package chain is an in-process host for venue contracts. It keeps every
contract's storage and the bank balances in one KV store, runs each
top-level call against a cache of that store and commits the cache only
when the call and all of its sub-messages succeed.

*/

package chain

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/types"
)

const (
	DefaultChainID       = "zll-local-1"
	DefaultBlockInterval = 5 * time.Second

	recentReceiptsLimit = 256
)

// ReceiptRecorder persists the receipt of every top-level call.
type ReceiptRecorder interface {
	SaveCallReceipt(ctx context.Context, receipt types.CallReceipt) error
}

type Options struct {
	Bech32Prefix  string
	ChainID       string
	StartHeight   uint64
	StartTime     time.Time
	BlockInterval time.Duration
	Recorder      ReceiptRecorder
}

// Chain is safe for concurrent use; calls are serialised.
type Chain struct {
	mu sync.Mutex

	log      zerolog.Logger
	api      host.Bech32API
	root     storetypes.KVStore
	codes    map[uint64]host.Contract
	block    host.BlockInfo
	interval time.Duration

	recorder ReceiptRecorder
	receipts []types.CallReceipt
}

func New(opts Options) *Chain {
	if opts.ChainID == "" {
		opts.ChainID = DefaultChainID
	}
	if opts.StartHeight == 0 {
		opts.StartHeight = 1
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now().UTC()
	}
	if opts.BlockInterval == 0 {
		opts.BlockInterval = DefaultBlockInterval
	}

	return &Chain{
		log:      logger.GetForComponent("chain"),
		api:      host.NewBech32API(opts.Bech32Prefix),
		root:     dbadapter.Store{DB: dbm.NewMemDB()},
		codes:    make(map[uint64]host.Contract),
		block:    host.BlockInfo{Height: opts.StartHeight, Time: opts.StartTime, ChainID: opts.ChainID},
		interval: opts.BlockInterval,
		recorder: opts.Recorder,
	}
}

func (c *Chain) API() host.Bech32API {
	return c.api
}

// StoreCode registers a contract implementation and returns its code id.
func (c *Chain) StoreCode(contract host.Contract) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	codeID := uint64(len(c.codes) + 1)
	c.codes[codeID] = contract
	return codeID
}

func (c *Chain) Block() host.BlockInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block
}

// UpdateBlock lets the caller move height and time freely.
func (c *Chain) UpdateBlock(fn func(*host.BlockInfo)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.block)
}

// NextBlock advances one block of the configured interval.
func (c *Chain) NextBlock() host.BlockInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block.Height++
	c.block.Time = c.block.Time.Add(c.interval)
	return c.block
}

// SetHeight jumps to height, advancing time by the blocks skipped.
func (c *Chain) SetHeight(height uint64) {
	c.UpdateBlock(func(b *host.BlockInfo) {
		if height > b.Height {
			b.Time = b.Time.Add(time.Duration(height-b.Height) * c.interval)
		}
		b.Height = height
	})
}

// InitBankBalance mints coins to addr outside of any call.
func (c *Chain) InitBankBalance(addr string, coins sdk.Coins) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.api.AddrValidate(addr); err != nil {
		return err
	}
	for _, coin := range coins {
		setBalance(c.root, addr, getBalance(c.root, addr, coin.Denom).Add(coin))
	}
	return nil
}

func (c *Chain) Balance(addr, denom string) sdk.Coin {
	c.mu.Lock()
	defer c.mu.Unlock()
	return getBalance(c.root, addr, denom)
}

func (c *Chain) AllBalances(addr string) sdk.Coins {
	c.mu.Lock()
	defer c.mu.Unlock()
	return getAllBalances(c.root, addr)
}

func (c *Chain) ContractInfo(addr string) (ContractInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loadContractInfo(c.root, addr)
}

// Instantiate creates a contract from codeID and returns its address.
func (c *Chain) Instantiate(codeID uint64, sender string, msg any, funds sdk.Coins, label string) (string, *AppResponse, error) {
	payload, err := host.Encode(msg)
	if err != nil {
		return "", nil, err
	}

	var addr string
	resp, err := c.commit(types.CallInstantiate, sender, "", payload, funds, func(tx *txContext) (*AppResponse, error) {
		created, res, err := tx.instantiate(tx.store, sender, codeID, payload, funds, label)
		addr = created
		return res, err
	})
	if err != nil {
		return "", nil, err
	}
	return addr, resp, nil
}

// Execute calls contract as sender with funds attached.
func (c *Chain) Execute(sender, contract string, msg any, funds sdk.Coins) (*AppResponse, error) {
	payload, err := host.Encode(msg)
	if err != nil {
		return nil, err
	}
	return c.commit(types.CallExecute, sender, contract, payload, funds, func(tx *txContext) (*AppResponse, error) {
		return tx.execute(tx.store, sender, contract, payload, funds)
	})
}

// ExecuteMulti runs msgs in order as one call: either all of them are
// committed or none is.
func (c *Chain) ExecuteMulti(sender string, msgs ...host.CosmosMsg) (*AppResponse, error) {
	payload, err := host.Encode(msgs)
	if err != nil {
		return nil, err
	}
	return c.commit(types.CallExecute, sender, "", payload, nil, func(tx *txContext) (*AppResponse, error) {
		all := &AppResponse{}
		for _, msg := range msgs {
			res, err := tx.dispatch(tx.store, sender, msg)
			if err != nil {
				return nil, err
			}
			all.Events = append(all.Events, res.Events...)
			all.Data = res.Data
		}
		return all, nil
	})
}

// QueryWasmSmart runs a read-only query against committed state. Contract
// errors are returned as the contract raised them.
func (c *Chain) QueryWasmSmart(contract string, msg any, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.newTx(c.log)
	bz, err := tx.querier(tx.store).smart(contract, msg)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bz, out); err != nil {
		return host.ErrInvalidPayload.Wrapf("%s: %s", contract, err)
	}
	return nil
}

// commit runs fn in a fresh cache and writes it back only on success.
func (c *Chain) commit(kind types.CallKind, sender, contract string, payload []byte, funds sdk.Coins, fn func(*txContext) (*AppResponse, error)) (*AppResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	callID := uuid.NewString()
	log := c.log.With().Str("call_id", callID).Str("kind", string(kind)).Logger()
	tx := c.newTx(log)

	resp, err := fn(tx)
	receipt := types.CallReceipt{
		CallID:    callID,
		Kind:      kind,
		Contract:  contract,
		Sender:    sender,
		Height:    c.block.Height,
		Timestamp: c.block.Time,
		Payload:   payload,
		Funds:     funds,
		Success:   err == nil,
	}
	if err != nil {
		receipt.Error = err.Error()
		log.Warn().Err(err).Str("sender", sender).Str("contract", contract).Msg("Call failed, state rolled back")
	} else {
		tx.store.Write()
		receipt.Attributes = resp.Attributes()
		receipt.SubMessages = tx.subMessages
		if kind == types.CallInstantiate {
			receipt.Contract, _ = resp.Attribute(contractAddressKey)
		}
		log.Debug().Str("sender", sender).Int("events", len(resp.Events)).Msg("Call committed")
	}
	c.record(receipt)

	return resp, err
}

func (c *Chain) newTx(log zerolog.Logger) *txContext {
	return &txContext{
		chain: c,
		log:   log,
		store: cachekv.NewStore(c.root),
		block: c.block,
	}
}

func (c *Chain) record(receipt types.CallReceipt) {
	c.receipts = append(c.receipts, receipt)
	if len(c.receipts) > recentReceiptsLimit {
		c.receipts = c.receipts[len(c.receipts)-recentReceiptsLimit:]
	}
	if c.recorder == nil {
		return
	}
	if err := c.recorder.SaveCallReceipt(context.Background(), receipt); err != nil {
		c.log.Error().Err(err).Str("call_id", receipt.CallID).Msg("Failed to save call receipt")
	}
}

// RecentReceipts returns up to limit receipts, newest first.
func (c *Chain) RecentReceipts(limit int) []types.CallReceipt {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit <= 0 || limit > len(c.receipts) {
		limit = len(c.receipts)
	}
	out := make([]types.CallReceipt, 0, limit)
	for i := len(c.receipts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, c.receipts[i])
	}
	return out
}
