package chain

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace of errors raised by the simulated chain itself.
const Codespace = "chain"

var (
	ErrNoSuchCode     = errorsmod.Register(Codespace, 2, "no such code")
	ErrNoSuchContract = errorsmod.Register(Codespace, 3, "no such contract")
	ErrEmptyMessage   = errorsmod.Register(Codespace, 4, "message has no variant set")
	ErrContractPanic  = errorsmod.Register(Codespace, 5, "contract panicked")
)
