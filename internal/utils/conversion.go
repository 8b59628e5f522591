/*
Conversions between on-chain integer amounts and human readable display
amounts. Display values are for dashboards and scenario inputs only; nothing
in the venue's accounting goes through float64.
*/

package utils

import (
	"errors"
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"
)

// MaxDecimals is the largest decimal exponent a denomination may declare.
const MaxDecimals = 18

var (
	ErrInvalidDecimals  = errors.New("decimals are invalid")
	ErrAmountNil        = errors.New("amount is nil")
	ErrAmountNegative   = errors.New("amount is negative")
	ErrNotFinite        = errors.New("value is not finite")
	ErrConversionFailed = errors.New("conversion failed")
)

func scale(decimals uint8) (sdkmath.LegacyDec, error) {
	if decimals > MaxDecimals {
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: %d (must be at most %d)", ErrInvalidDecimals, decimals, MaxDecimals)
	}
	return sdkmath.LegacyNewDecFromInt(sdkmath.NewIntWithDecimal(1, int(decimals))), nil
}

// ToDisplay converts a base-unit amount into display units, e.g. 2_500_000 uluna with 6 decimals into 2.5.
func ToDisplay(amount sdkmath.Int, decimals uint8) (float64, error) {
	factor, err := scale(decimals)
	if err != nil {
		return 0, err
	}
	if amount.IsNil() {
		return 0, ErrAmountNil
	}
	if amount.IsNegative() {
		return 0, ErrAmountNegative
	}

	result, err := sdkmath.LegacyNewDecFromInt(amount).Quo(factor).Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: result is %f", ErrNotFinite, result)
	}
	return result, nil
}

// FromDisplay converts a display amount back into base units, truncating below one base unit.
func FromDisplay(amount float64, decimals uint8) (sdkmath.Int, error) {
	factor, err := scale(decimals)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: amount is %f", ErrNotFinite, amount)
	}
	if amount < 0 {
		return sdkmath.ZeroInt(), ErrAmountNegative
	}
	if amount == 0 {
		return sdkmath.ZeroInt(), nil
	}

	// formatting with the target precision keeps binary float noise out of the decimal
	dec, err := sdkmath.LegacyNewDecFromStr(fmt.Sprintf("%.*f", int(decimals), amount))
	if err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return dec.Mul(factor).TruncateInt(), nil
}
