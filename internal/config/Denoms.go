/*

Native denoms carry no on-chain metadata, so the display precision of the
ones the venue is expected to trade is listed here.

If a denom has no entry it defaults to 6 decimals, which is right for every
micro-denom ("u" prefix). Tokens report their own decimals.

*/

package config

const DefaultDenomDecimals = 6

var (
	DenomDecimals = map[string]int{
		"uluna":  6,
		"uusd":   6,
		"uatom":  6,
		"uelys":  6,
		"uusdc":  6,
		"wei":    18,
		"aevmos": 18,
	}
)

// DecimalsOf returns the display precision of a native denom.
func DecimalsOf(denom string) int {
	if decimals, ok := DenomDecimals[denom]; ok {
		return decimals
	}
	return DefaultDenomDecimals
}
