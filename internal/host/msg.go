package host

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CosmosMsg is an outgoing instruction. Exactly one variant is set.
type CosmosMsg struct {
	Bank *BankMsg `json:"bank,omitempty"`
	Wasm *WasmMsg `json:"wasm,omitempty"`
}

type BankMsg struct {
	Send *BankSendMsg `json:"send,omitempty"`
}

type BankSendMsg struct {
	ToAddress string    `json:"to_address"`
	Amount    sdk.Coins `json:"amount"`
}

type WasmMsg struct {
	Instantiate *WasmInstantiateMsg `json:"instantiate,omitempty"`
	Execute     *WasmExecuteMsg     `json:"execute,omitempty"`
}

type WasmInstantiateMsg struct {
	Admin  string          `json:"admin,omitempty"`
	CodeID uint64          `json:"code_id"`
	Msg    json.RawMessage `json:"msg"`
	Funds  sdk.Coins       `json:"funds"`
	Label  string          `json:"label"`
}

type WasmExecuteMsg struct {
	ContractAddr string          `json:"contract_addr"`
	Msg          json.RawMessage `json:"msg"`
	Funds        sdk.Coins       `json:"funds"`
}

// BankSend builds a native transfer out of the calling contract.
func BankSend(to string, amount sdk.Coins) CosmosMsg {
	return CosmosMsg{Bank: &BankMsg{Send: &BankSendMsg{ToAddress: to, Amount: amount}}}
}

// WasmExecute builds a call into another contract.
func WasmExecute(contract string, msg any, funds sdk.Coins) (CosmosMsg, error) {
	bz, err := Encode(msg)
	if err != nil {
		return CosmosMsg{}, err
	}
	return CosmosMsg{Wasm: &WasmMsg{Execute: &WasmExecuteMsg{
		ContractAddr: contract,
		Msg:          bz,
		Funds:        funds,
	}}}, nil
}

// WasmInstantiate builds the creation of a child contract from a stored code.
func WasmInstantiate(codeID uint64, msg any, funds sdk.Coins, label string) (CosmosMsg, error) {
	bz, err := Encode(msg)
	if err != nil {
		return CosmosMsg{}, err
	}
	return CosmosMsg{Wasm: &WasmMsg{Instantiate: &WasmInstantiateMsg{
		CodeID: codeID,
		Msg:    bz,
		Funds:  funds,
		Label:  label,
	}}}, nil
}
