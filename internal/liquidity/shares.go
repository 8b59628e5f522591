/*

Share accounting of a constant-product pool. The functions here are pure: the
pool contract reads the live reserves and the share-token supply, and these
functions turn them into minted shares or a proportional refund.

*/

package liquidity

import (
	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/elys-network/zll/internal/types"
)

// MatchDeposits orders the deposited amounts the same way as the pool reserves.
func MatchDeposits(assets [2]types.Asset, pools [2]types.Asset) ([2]sdkmath.Int, error) {
	var deposits [2]sdkmath.Int
	for i, pool := range pools {
		amount, found := types.FindAmount(assets[:], pool.Info)
		if !found {
			return deposits, types.ErrAssetMismatch.Wrapf("no deposit given for %s", pool.Info)
		}
		deposits[i] = amount
	}
	return deposits, nil
}

// PreDepositReserves recovers the reserves as they were before the call.
// Native deposits are already credited to the pool when the contract runs,
// token deposits are pulled afterwards and are not yet part of the reserves.
func PreDepositReserves(pools [2]types.Asset, deposits [2]sdkmath.Int) ([2]sdkmath.Int, error) {
	var reserves [2]sdkmath.Int
	for i, pool := range pools {
		if !pool.Info.IsNativeToken() {
			reserves[i] = pool.Amount
			continue
		}
		reserve, err := types.CheckedSub(pool.Amount, deposits[i])
		if err != nil {
			return reserves, err
		}
		reserves[i] = reserve
	}
	return reserves, nil
}

// ComputeShare returns the pool shares minted for a two-sided deposit.
//
// The first deposit mints floor(sqrt(d0 * d1)). Later deposits mint the
// smaller of the per-side ratios d_i * totalShare / reserve_i, so an
// imbalanced deposit is priced against its smaller side.
func ComputeShare(deposits, reserves [2]sdkmath.Int, totalShare sdkmath.Int) (sdkmath.Int, error) {
	if deposits[0].IsZero() || deposits[1].IsZero() {
		return sdkmath.ZeroInt(), types.ErrInvalidZeroAmount
	}
	for _, d := range deposits {
		if !types.IsUint128(d) {
			return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("deposit %s is not an unsigned 128-bit amount", d)
		}
	}

	if totalShare.IsZero() {
		return InitialShare(deposits[0], deposits[1])
	}

	share0, err := types.MultiplyRatio(deposits[0], totalShare, reserves[0])
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	share1, err := types.MultiplyRatio(deposits[1], totalShare, reserves[1])
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return sdkmath.MinInt(share0, share1), nil
}

// InitialShare is floor(sqrt(a * b)) with the product held at 256 bits.
func InitialShare(a, b sdkmath.Int) (sdkmath.Int, error) {
	x, overflow := uint256.FromBig(a.BigInt())
	if overflow {
		return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("%s does not fit into 256 bits", a)
	}
	y, overflow := uint256.FromBig(b.BigInt())
	if overflow {
		return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("%s does not fit into 256 bits", b)
	}
	product, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return sdkmath.ZeroInt(), types.ErrOverflow.Wrapf("cannot mul with %s and %s", a, b)
	}
	return sdkmath.NewIntFromBigInt(new(uint256.Int).Sqrt(product).ToBig()), nil
}

// ShareRatio is amount / totalShare, truncated at 18 decimals, or zero when
// nothing has been minted yet.
func ShareRatio(amount, totalShare sdkmath.Int) sdkmath.LegacyDec {
	if totalShare.IsZero() {
		return sdkmath.LegacyZeroDec()
	}
	return sdkmath.LegacyNewDecFromInt(amount).QuoTruncate(sdkmath.LegacyNewDecFromInt(totalShare))
}

// ShareInAssets returns the part of each reserve that amount shares redeem.
// The caller guarantees amount <= totalShare; the share token's own balance
// check enforces it on a real burn.
func ShareInAssets(pools [2]types.Asset, amount, totalShare sdkmath.Int) [2]types.Asset {
	ratio := ShareRatio(amount, totalShare)

	var refund [2]types.Asset
	for i, pool := range pools {
		refund[i] = types.NewAsset(pool.Info, ratio.MulInt(pool.Amount).TruncateInt())
	}
	return refund
}
