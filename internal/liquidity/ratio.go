package liquidity

import (
	sdkmath "cosmossdk.io/math"

	"github.com/elys-network/zll/internal/types"
)

// MarketAsset is one side of a market expressed in its minor unit, with a
// price in the market's base currency scaled by the same decimals.
type MarketAsset struct {
	Amount    sdkmath.Int
	BasePrice sdkmath.Int
	Decimals  uint8
}

func NewMarketAsset(amount, basePrice sdkmath.Int, decimals uint8) MarketAsset {
	return MarketAsset{Amount: amount, BasePrice: basePrice, Decimals: decimals}
}

// ParseBasePrice scales a decimal price string by 10^decimals and truncates it.
// Unparsable, negative or oversized prices yield zero.
func ParseBasePrice(price string, decimals uint8) sdkmath.Int {
	dec, err := sdkmath.LegacyNewDecFromStr(price)
	if err != nil || dec.IsNegative() {
		return sdkmath.ZeroInt()
	}
	factor, err := types.Pow10(decimals)
	if err != nil || dec.BigInt().BitLen()+factor.BigInt().BitLen() > 256 {
		return sdkmath.ZeroInt()
	}
	scaled := dec.MulInt(factor).TruncateInt()
	if !types.IsUint128(scaled) {
		return sdkmath.ZeroInt()
	}
	return scaled
}

// BalanceWith returns the amount of m that is worth as much as rhs.
func (m MarketAsset) BalanceWith(rhs MarketAsset) (sdkmath.Int, error) {
	adjusted := rhs.Amount
	switch {
	case m.Decimals > rhs.Decimals:
		factor, err := types.Pow10(m.Decimals - rhs.Decimals)
		if err != nil {
			return sdkmath.ZeroInt(), err
		}
		if adjusted, err = types.CheckedMul(rhs.Amount, factor); err != nil {
			return sdkmath.ZeroInt(), err
		}
	case m.Decimals < rhs.Decimals:
		factor, err := types.Pow10(rhs.Decimals - m.Decimals)
		if err != nil {
			return sdkmath.ZeroInt(), err
		}
		if adjusted, err = types.CheckedQuo(rhs.Amount, factor); err != nil {
			return sdkmath.ZeroInt(), err
		}
	}
	return types.MultiplyRatio(adjusted, rhs.BasePrice, m.BasePrice)
}

// MarketLiquidity pairs the borrow side of a market with its collateral side.
type MarketLiquidity struct {
	Borrow     MarketAsset
	Collateral MarketAsset
}

func NewMarketLiquidity(borrow, collateral MarketAsset) MarketLiquidity {
	return MarketLiquidity{Borrow: borrow, Collateral: collateral}
}

// IsBalanced checks that neither side is short of the value of the other.
func (l MarketLiquidity) IsBalanced() error {
	expectedBorrow, err := l.Borrow.BalanceWith(l.Collateral)
	if err != nil {
		return err
	}
	expectedCollateral, err := l.Collateral.BalanceWith(l.Borrow)
	if err != nil {
		return err
	}

	if expectedBorrow.GT(l.Borrow.Amount) {
		return types.ErrAssetImbalance.Wrapf("borrow asset imbalance: provided = %s; expected = %s",
			l.Borrow.Amount, expectedBorrow)
	}
	if expectedCollateral.GT(l.Collateral.Amount) {
		return types.ErrAssetImbalance.Wrapf("collateral asset imbalance: provided = %s; expected = %s",
			l.Collateral.Amount, expectedCollateral)
	}
	return nil
}

// CheckBalanced runs IsBalanced over a two-sided deposit, treating the first
// pool asset as the borrow side.
func CheckBalanced(deposits [2]sdkmath.Int, check types.BalanceCheck) error {
	var sides [2]MarketAsset
	for i := range sides {
		price := ParseBasePrice(check.BasePrices[i], check.Decimals[i])
		if price.IsZero() {
			return types.ErrInvalidAsset.Wrapf("base price %q cannot be used", check.BasePrices[i])
		}
		sides[i] = NewMarketAsset(deposits[i], price, check.Decimals[i])
	}
	return NewMarketLiquidity(sides[0], sides[1]).IsBalanced()
}
