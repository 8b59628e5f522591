package host

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace of errors raised by the runtime surface rather than by a contract.
const Codespace = "host"

var (
	ErrStorage        = errorsmod.Register(Codespace, 2, "storage failure")
	ErrInvalidPayload = errorsmod.Register(Codespace, 3, "payload cannot be decoded")
	ErrParseReply     = errorsmod.Register(Codespace, 4, "reply data cannot be parsed")
	ErrQuery          = errorsmod.Register(Codespace, 5, "cross-contract query failed")
)
