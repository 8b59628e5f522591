package borrowing

import (
	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/types"
)

// Reserves splits the live pool reserves into the side the collateral is
// pledged in and the side that can be borrowed.
type Reserves struct {
	Borrow     types.Asset
	Collateral types.Asset
}

// SplitReserves locates the pledged collateral among the pool assets.
func SplitReserves(pool [2]types.Asset, collateral types.AssetInfo) (Reserves, error) {
	for i, asset := range pool {
		if asset.Info.Equal(collateral) {
			return Reserves{Borrow: pool[1-i], Collateral: asset}, nil
		}
	}
	return Reserves{}, types.ErrAssetMismatch.Wrapf("collateral %s is not traded by the pool", collateral)
}

// Terms derives what a pledged collateral can borrow at the given height.
// Interest and repayment are denominated in the borrowed asset.
func Terms(params Params, reserves Reserves, pledged types.Asset, collateralDecimals uint8, height uint64) (types.BorrowingTerms, error) {
	if !pledged.Info.Equal(reserves.Collateral.Info) {
		return types.BorrowingTerms{}, types.ErrAssetMismatch.Wrapf("pledged %s, pool collateral is %s",
			pledged.Info, reserves.Collateral.Info)
	}

	borrowable, err := borrowableAmount(reserves, pledged.Amount)
	if err != nil {
		return types.BorrowingTerms{}, err
	}
	interest, err := interestCost(params, pledged.Amount, collateralDecimals, height)
	if err != nil {
		return types.BorrowingTerms{}, err
	}

	borrowInfo := reserves.Borrow.Info
	return types.BorrowingTerms{
		Borrow:    types.NewAsset(borrowInfo, borrowable),
		Interest:  types.NewAsset(borrowInfo, interest),
		Repayment: types.NewAsset(borrowInfo, sdkmath.ZeroInt()),
	}, nil
}

func borrowableAmount(reserves Reserves, collateralAmount sdkmath.Int) (sdkmath.Int, error) {
	ammConstant, err := AmmConstant(reserves.Borrow.Amount, reserves.Collateral.Amount)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return CalculateBorrowableAmount(reserves.Borrow.Amount, ammConstant, reserves.Collateral.Amount, collateralAmount)
}

func interestCost(params Params, collateralAmount sdkmath.Int, collateralDecimals uint8, height uint64) (sdkmath.Int, error) {
	expiry, err := CalculateExpiryTime(height, params.AmmPhaseEndsAt, params.BlocksPerYear)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	putPrice := ObliviousPutPrice(params.Alpha, expiry.SqrtTimeToExpiry)
	return CalculateInterestCost(putPrice, collateralAmount, collateralDecimals)
}

// AssertBorrowable fails when the requested borrow exceeds what the terms allow.
func AssertBorrowable(expected types.Asset, terms types.BorrowingTerms) error {
	if !expected.Info.Equal(terms.Borrow.Info) {
		return types.ErrAssetMismatch.Wrapf("expected to borrow %s, pool lends %s", expected.Info, terms.Borrow.Info)
	}
	if expected.Amount.GT(terms.Borrow.Amount) {
		return types.ErrBorrowExceedsCapacity.Wrapf(
			"Expected amount to borrow (%s) is higher than calculated collateral amount (%s)",
			expected.Amount, terms.Borrow.Amount)
	}
	return nil
}
