package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of every contract-level error.
const ModuleName = "zll"

// Validation
var (
	ErrInvalidZeroAmount = errorsmod.Register(ModuleName, 2, "event of zero transfer")
	ErrDoublingAssets    = errorsmod.Register(ModuleName, 3, "doubling assets in asset infos")
	ErrAssetMismatch     = errorsmod.Register(ModuleName, 4, "asset mismatch between the requested and the stored asset in contract")
	ErrInvalidAsset      = errorsmod.Register(ModuleName, 5, "invalid asset")
	ErrInvalidPhases     = errorsmod.Register(ModuleName, 6, "invalid market phases")
	ErrAssetImbalance    = errorsmod.Register(ModuleName, 7, "asset imbalance")
	ErrFundsMismatch     = errorsmod.Register(ModuleName, 8, "native token balance mismatch between the argument and the transferred")
)

// Authorization
var (
	ErrUnauthorized = errorsmod.Register(ModuleName, 10, "unauthorized")
)

// Arithmetic
var (
	ErrOverflow              = errorsmod.Register(ModuleName, 20, "overflow")
	ErrDivideByZero          = errorsmod.Register(ModuleName, 21, "divide by zero")
	ErrBorrowExceedsCapacity = errorsmod.Register(ModuleName, 22, "expected amount exceeds calculated collateral amount")
)

// Protocol
var (
	ErrUnknownReply       = errorsmod.Register(ModuleName, 30, "unknown reply id")
	ErrReplyFailed        = errorsmod.Register(ModuleName, 31, "sub-message failed")
	ErrUnsupportedMessage = errorsmod.Register(ModuleName, 32, "message cannot be handled")
)
