/*

The borrowing terms pipeline: time to expiry from the block height, an option
price for the pledged collateral, the interest it costs, and how much of the
other pool asset the collateral can borrow against the live reserves.

Nothing here touches a ledger; a borrow only checks the requested amount
against the derived maximum.

*/

package borrowing

import (
	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/elys-network/zll/internal/types"
)

// Params are the venue-level inputs of the pipeline.
type Params struct {
	AmmPhaseEndsAt uint64
	BlocksPerYear  uint64
	Alpha          uint64
}

// ExpiryTime is the remaining AMM phase in whole years, and its integer root.
type ExpiryTime struct {
	TimeToExpiry     sdkmath.Int
	SqrtTimeToExpiry sdkmath.Int
}

// CalculateExpiryTime is only defined up to the end of the AMM phase; past it
// the subtraction underflows.
func CalculateExpiryTime(height, ammPhaseEndsAt, blocksPerYear uint64) (ExpiryTime, error) {
	remaining, err := types.CheckedSub(sdkmath.NewIntFromUint64(ammPhaseEndsAt), sdkmath.NewIntFromUint64(height))
	if err != nil {
		return ExpiryTime{}, err
	}
	timeToExpiry, err := types.CheckedQuo(remaining, sdkmath.NewIntFromUint64(blocksPerYear))
	if err != nil {
		return ExpiryTime{}, err
	}

	root := new(uint256.Int).Sqrt(uint256.NewInt(timeToExpiry.Uint64()))
	return ExpiryTime{
		TimeToExpiry:     timeToExpiry,
		SqrtTimeToExpiry: sdkmath.NewIntFromUint64(root.Uint64()),
	}, nil
}

// ObliviousPutPrice prices the put backing a borrow. No pricing model is
// wired yet, so the price is zero and borrowing carries no interest.
func ObliviousPutPrice(alpha uint64, sqrtTimeToExpiry sdkmath.Int) sdkmath.Int {
	return sdkmath.ZeroInt()
}

// CalculateInterestCost is putPrice * collateral / 10^decimals.
func CalculateInterestCost(putPrice, collateralAmount sdkmath.Int, collateralDecimals uint8) (sdkmath.Int, error) {
	cost, err := types.CheckedMul(putPrice, collateralAmount)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	unit, err := types.Pow10(collateralDecimals)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return types.CheckedQuo(cost, unit)
}

// AmmConstant is the constant product of two reserves, held at 256 bits.
func AmmConstant(borrowSupply, collateralSupply sdkmath.Int) (sdkmath.Int, error) {
	x, overflow := uint256.FromBig(borrowSupply.BigInt())
	if overflow {
		return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("%s does not fit into 256 bits", borrowSupply)
	}
	y, overflow := uint256.FromBig(collateralSupply.BigInt())
	if overflow {
		return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("%s does not fit into 256 bits", collateralSupply)
	}
	k, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("cannot mul with %s and %s", borrowSupply, collateralSupply)
	}
	return sdkmath.NewIntFromBigInt(k.ToBig()), nil
}

// CalculateBorrowableAmount is
// borrowSupply - ammConstant / (collateralSupply + collateralAmount):
// the borrow-side reserve the pool can release while keeping its product once
// the collateral is added.
func CalculateBorrowableAmount(borrowSupply, ammConstant, collateralSupply, collateralAmount sdkmath.Int) (sdkmath.Int, error) {
	collateralAfter, err := types.CheckedAdd(collateralSupply, collateralAmount)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	remaining, err := types.CheckedQuo(ammConstant, collateralAfter)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return types.CheckedSub(borrowSupply, remaining)
}
