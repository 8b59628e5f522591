package chain

import (
	"cosmossdk.io/store/cachekv"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"

	"github.com/elys-network/zll/internal/host"
)

// txContext is the state of one top-level call. Sub-messages run in caches
// nested inside store and are written into it only when they succeed.
type txContext struct {
	chain       *Chain
	log         zerolog.Logger
	store       *cachekv.Store
	block       host.BlockInfo
	subMessages int
}

// guard turns a panic inside a contract entry point into an error, so the
// call aborts like any other failure.
func guard[T any](contractAddr string, fn func() (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrContractPanic.Wrapf("%s: %v", contractAddr, r)
		}
	}()
	return fn()
}

func (tx *txContext) env(contract string) host.Env {
	return host.Env{Block: tx.block, Contract: host.ContractInfo{Address: contract}}
}

func (tx *txContext) deps(store storetypes.KVStore, contract string) host.Deps {
	return host.Deps{
		Storage: contractStorage(store, contract),
		API:     tx.chain.api,
		Querier: tx.querier(store),
	}
}

func (tx *txContext) querier(store storetypes.KVStore) *querier {
	return &querier{tx: tx, store: store}
}

func (tx *txContext) code(codeID uint64) (host.Contract, error) {
	contract, ok := tx.chain.codes[codeID]
	if !ok {
		return nil, ErrNoSuchCode.Wrapf("code id %d", codeID)
	}
	return contract, nil
}

func (tx *txContext) contractAt(store storetypes.KVStore, addr string) (host.Contract, error) {
	info, err := loadContractInfo(store, addr)
	if err != nil {
		return nil, err
	}
	return tx.code(info.CodeID)
}

// dispatch runs one outgoing message on behalf of sender.
func (tx *txContext) dispatch(store storetypes.KVStore, sender string, msg host.CosmosMsg) (*AppResponse, error) {
	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		send := msg.Bank.Send
		if err := sendCoins(store, sender, send.ToAddress, send.Amount); err != nil {
			return nil, err
		}
		return &AppResponse{Events: sdk.Events{sdk.NewEvent(transferEvent,
			sdk.NewAttribute("recipient", send.ToAddress),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("amount", send.Amount.String()),
		)}}, nil
	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		exec := msg.Wasm.Execute
		return tx.execute(store, sender, exec.ContractAddr, exec.Msg, exec.Funds)
	case msg.Wasm != nil && msg.Wasm.Instantiate != nil:
		inst := msg.Wasm.Instantiate
		_, resp, err := tx.instantiate(store, sender, inst.CodeID, inst.Msg, inst.Funds, inst.Label)
		return resp, err
	default:
		return nil, ErrEmptyMessage
	}
}

func (tx *txContext) instantiate(store storetypes.KVStore, sender string, codeID uint64, payload []byte, funds sdk.Coins, label string) (string, *AppResponse, error) {
	contract, err := tx.code(codeID)
	if err != nil {
		return "", nil, err
	}
	seq, err := nextInstanceSeq(store)
	if err != nil {
		return "", nil, err
	}
	addr := tx.chain.api.AddrMake(contractLabel(codeID, seq))
	err = saveContractInfo(store, addr, ContractInfo{CodeID: codeID, Creator: sender, Label: label, Height: tx.block.Height})
	if err != nil {
		return "", nil, err
	}
	if err := sendCoins(store, sender, addr, funds); err != nil {
		return "", nil, err
	}

	tx.log.Debug().Uint64("code_id", codeID).Str("contract", addr).Str("label", label).Msg("Instantiating contract")

	res, err := guard(addr, func() (*host.Response, error) {
		return contract.Instantiate(tx.deps(store, addr), tx.env(addr), host.MessageInfo{Sender: sender, Funds: funds}, payload)
	})
	if err != nil {
		return "", nil, err
	}

	out := &AppResponse{Events: sdk.Events{sdk.NewEvent(instantiateEvent,
		sdk.NewAttribute(contractAddressKey, addr),
		sdk.NewAttribute("code_id", uint64String(codeID)),
	)}}
	handled, err := tx.handleResponse(store, addr, res)
	if err != nil {
		return "", nil, err
	}
	out.merge(handled)

	data, err := host.Encode(host.InstantiateResponse{ContractAddress: addr, Data: handled.Data})
	if err != nil {
		return "", nil, err
	}
	out.Data = data
	return addr, out, nil
}

func (tx *txContext) execute(store storetypes.KVStore, sender, contractAddr string, payload []byte, funds sdk.Coins) (*AppResponse, error) {
	contract, err := tx.contractAt(store, contractAddr)
	if err != nil {
		return nil, err
	}
	if err := sendCoins(store, sender, contractAddr, funds); err != nil {
		return nil, err
	}

	res, err := guard(contractAddr, func() (*host.Response, error) {
		return contract.Execute(tx.deps(store, contractAddr), tx.env(contractAddr), host.MessageInfo{Sender: sender, Funds: funds}, payload)
	})
	if err != nil {
		return nil, err
	}
	return tx.handleResponse(store, contractAddr, res)
}

// handleResponse records the contract's attributes and then runs its
// sub-messages in order, routing replies back to it as requested.
func (tx *txContext) handleResponse(store storetypes.KVStore, contractAddr string, res *host.Response) (*AppResponse, error) {
	out := &AppResponse{Data: res.Data}
	if len(res.Attributes) > 0 {
		out.Events = append(out.Events, wasmEvent(contractAddr, res.Attributes))
	}

	for _, sub := range res.Messages {
		tx.subMessages++
		subStore := cachekv.NewStore(store)
		subRes, err := tx.dispatch(subStore, contractAddr, sub.Msg)

		if err != nil {
			if sub.ReplyOn != host.ReplyError && sub.ReplyOn != host.ReplyAlways {
				return nil, err
			}
			tx.log.Debug().Err(err).Uint64("reply_id", sub.ID).Str("contract", contractAddr).Msg("Sub-message failed, replying")
			replyRes, err := tx.reply(store, contractAddr, host.Reply{ID: sub.ID, Result: host.SubMsgResult{Err: err.Error()}})
			if err != nil {
				return nil, err
			}
			out.merge(replyRes)
			if replyRes.Data != nil {
				out.Data = replyRes.Data
			}
			continue
		}

		subStore.Write()
		out.merge(subRes)
		if sub.ReplyOn != host.ReplySuccess && sub.ReplyOn != host.ReplyAlways {
			continue
		}
		replyRes, err := tx.reply(store, contractAddr, host.Reply{ID: sub.ID, Result: host.SubMsgResult{Ok: &host.SubMsgResponse{Data: subRes.Data}}})
		if err != nil {
			return nil, err
		}
		out.merge(replyRes)
		if replyRes.Data != nil {
			out.Data = replyRes.Data
		}
	}
	return out, nil
}

func (tx *txContext) reply(store storetypes.KVStore, contractAddr string, reply host.Reply) (*AppResponse, error) {
	contract, err := tx.contractAt(store, contractAddr)
	if err != nil {
		return nil, err
	}
	res, err := guard(contractAddr, func() (*host.Response, error) {
		return contract.Reply(tx.deps(store, contractAddr), tx.env(contractAddr), reply)
	})
	if err != nil {
		return nil, err
	}
	handled, err := tx.handleResponse(store, contractAddr, res)
	if err != nil {
		return nil, err
	}
	events := sdk.Events{sdk.NewEvent(replyEvent, sdk.NewAttribute(contractAddressKey, contractAddr))}
	handled.Events = append(events, handled.Events...)
	return handled, nil
}
