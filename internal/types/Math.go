package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// Uint128Bits is the width of every asset amount and share supply.
const Uint128Bits = 128

// MaxUint128 is the largest amount an asset can carry.
var MaxUint128 = sdkmath.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), Uint128Bits), big.NewInt(1)),
)

// IsUint128 reports whether i is a non-nil, non-negative amount that fits in 128 bits.
func IsUint128(i sdkmath.Int) bool {
	return !i.IsNil() && !i.IsNegative() && i.BigInt().BitLen() <= Uint128Bits
}

func checkUint128(op string, a, b, res sdkmath.Int) (sdkmath.Int, error) {
	if res.BigInt().BitLen() > Uint128Bits {
		return sdkmath.ZeroInt(), ErrOverflow.Wrapf("cannot %s with %s and %s", op, a, b)
	}
	return res, nil
}

func CheckedAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	return checkUint128("add", a, b, a.Add(b))
}

func CheckedSub(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.LT(b) {
		return sdkmath.ZeroInt(), ErrOverflow.Wrapf("cannot sub %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// CheckedMul multiplies two 128-bit amounts; the product must fit back into 128 bits.
func CheckedMul(a, b sdkmath.Int) (sdkmath.Int, error) {
	if !fitsProduct(a, b) {
		return sdkmath.ZeroInt(), ErrOverflow.Wrapf("cannot mul with %s and %s", a, b)
	}
	return checkUint128("mul", a, b, a.Mul(b))
}

func CheckedQuo(a, b sdkmath.Int) (sdkmath.Int, error) {
	if b.IsZero() {
		return sdkmath.ZeroInt(), ErrDivideByZero.Wrapf("cannot divide %s by zero", a)
	}
	return a.Quo(b), nil
}

// MultiplyRatio returns floor(a * num / den) with the product held at 256 bits,
// so only the final quotient has to fit into 128 bits.
func MultiplyRatio(a, num, den sdkmath.Int) (sdkmath.Int, error) {
	if den.IsZero() {
		return sdkmath.ZeroInt(), ErrDivideByZero.Wrapf("cannot divide %s * %s by zero", a, num)
	}
	if !fitsProduct(a, num) {
		return sdkmath.ZeroInt(), ErrOverflow.Wrapf("cannot multiply ratio with %s and %s", a, num)
	}
	return checkUint128("multiply ratio", a, num, a.Mul(num).Quo(den))
}

// Pow10 returns 10^exp, failing when it does not fit into 128 bits.
func Pow10(exp uint8) (sdkmath.Int, error) {
	res := sdkmath.OneInt()
	ten := sdkmath.NewInt(10)
	for i := uint8(0); i < exp; i++ {
		next, err := CheckedMul(res, ten)
		if err != nil {
			return sdkmath.ZeroInt(), ErrOverflow.Wrapf("cannot raise 10 to %d", exp)
		}
		res = next
	}
	return res, nil
}

// fitsProduct guards the 256-bit ceiling of sdkmath.Int multiplication.
func fitsProduct(a, b sdkmath.Int) bool {
	return a.BigInt().BitLen()+b.BigInt().BitLen() <= 256
}
