package host

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BlockInfo describes the block a call executes in.
type BlockInfo struct {
	Height  uint64    `json:"height"`
	Time    time.Time `json:"time"`
	ChainID string    `json:"chain_id"`
}

type ContractInfo struct {
	Address string `json:"address"`
}

// Env is the execution environment handed to every contract entry point.
type Env struct {
	Block    BlockInfo    `json:"block"`
	Contract ContractInfo `json:"contract"`
}

// MessageInfo carries the caller of an execute/instantiate call and the
// native funds that were moved to the contract before it runs.
type MessageInfo struct {
	Sender string    `json:"sender"`
	Funds  sdk.Coins `json:"funds"`
}
