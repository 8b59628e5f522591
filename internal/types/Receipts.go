package types

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CallKind names the entry point a top-level call went through.
type CallKind string

const (
	CallInstantiate CallKind = "instantiate"
	CallExecute     CallKind = "execute"
)

// CallReceipt records the outcome of one top-level call against the venue.
type CallReceipt struct {
	CallID      string          `json:"call_id"`
	Kind        CallKind        `json:"kind"`
	Contract    string          `json:"contract"`
	Sender      string          `json:"sender"`
	Height      uint64          `json:"height"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     []byte          `json:"payload"`
	Funds       sdk.Coins       `json:"funds"`
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	Attributes  []sdk.Attribute `json:"attributes,omitempty"`
	SubMessages int             `json:"sub_messages"`
}
