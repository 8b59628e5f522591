package liquidity

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/elys-network/zll/internal/types"
)

const tokenAddr = "zll1token"

func ints(a, b int64) [2]sdkmath.Int {
	return [2]sdkmath.Int{sdkmath.NewInt(a), sdkmath.NewInt(b)}
}

func TestInitialShareIsSqrtOfProduct(t *testing.T) {
	share, err := ComputeShare(ints(2_000_000, 500_000_000), ints(0, 0), sdkmath.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(31_622_776), share)
}

func TestInitialShareUsesWideProduct(t *testing.T) {
	share, err := InitialShare(types.MaxUint128, types.MaxUint128)
	require.NoError(t, err)
	require.Equal(t, types.MaxUint128, share)
}

func TestSubsequentShareIsProportional(t *testing.T) {
	total := sdkmath.NewInt(31_622_776)
	reserves := ints(2_000_000, 500_000_000)

	share, err := ComputeShare(ints(4_000_000, 1_000_000_000), reserves, total)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(63_245_552), share)
}

func TestImbalancedDepositMintsTheSmallerSide(t *testing.T) {
	total := sdkmath.NewInt(31_622_776)
	reserves := ints(2_000_000, 500_000_000)

	share, err := ComputeShare(ints(5_000_000, 5_000_000_000), reserves, total)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(79_056_940), share)
}

func TestZeroDepositIsRejected(t *testing.T) {
	_, err := ComputeShare(ints(0, 500_000_000), ints(0, 0), sdkmath.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)

	_, err = ComputeShare(ints(1, 0), ints(1, 1), sdkmath.OneInt())
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
}

func TestSubsequentShareWithEmptyReserveFails(t *testing.T) {
	_, err := ComputeShare(ints(1, 1), ints(0, 1), sdkmath.OneInt())
	require.ErrorIs(t, err, types.ErrDivideByZero)
}

func TestPreDepositReservesSubtractsNativeOnly(t *testing.T) {
	pools := [2]types.Asset{
		types.CoinAsset(2_500_000, "uluna"),
		types.TokenAsset(500_000_000, tokenAddr),
	}

	reserves, err := PreDepositReserves(pools, ints(500_000, 100_000_000))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(2_000_000), reserves[0])
	require.Equal(t, sdkmath.NewInt(500_000_000), reserves[1])
}

func TestPreDepositReservesUnderflow(t *testing.T) {
	pools := [2]types.Asset{types.CoinAsset(10, "uluna"), types.CoinAsset(10, "uusd")}

	_, err := PreDepositReserves(pools, ints(11, 1))
	require.ErrorIs(t, err, types.ErrOverflow)
	require.Contains(t, err.Error(), "cannot sub")
}

func TestMatchDepositsFollowsPoolOrder(t *testing.T) {
	pools := [2]types.Asset{types.CoinAsset(0, "uluna"), types.CoinAsset(0, "uusd")}
	assets := [2]types.Asset{types.CoinAsset(7, "uusd"), types.CoinAsset(3, "uluna")}

	deposits, err := MatchDeposits(assets, pools)
	require.NoError(t, err)
	require.Equal(t, ints(3, 7), deposits)
}

func TestMatchDepositsRejectsUnknownAsset(t *testing.T) {
	pools := [2]types.Asset{types.CoinAsset(0, "uluna"), types.CoinAsset(0, "uusd")}
	assets := [2]types.Asset{types.CoinAsset(7, "uusd"), types.CoinAsset(3, "ukrw")}

	_, err := MatchDeposits(assets, pools)
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestShareInAssetsRoundTrip(t *testing.T) {
	deposits := ints(2_000_000, 500_000_000)
	share, err := ComputeShare(deposits, ints(0, 0), sdkmath.ZeroInt())
	require.NoError(t, err)

	pools := [2]types.Asset{
		types.NewAsset(types.NativeAssetInfoOf("uluna"), deposits[0]),
		types.NewAsset(types.NativeAssetInfoOf("uusd"), deposits[1]),
	}
	refund := ShareInAssets(pools, share, share)
	for i := range refund {
		require.True(t, refund[i].Amount.LTE(deposits[i]))
		require.True(t, refund[i].Info.Equal(pools[i].Info))
	}
	require.Equal(t, deposits[0], refund[0].Amount)
	require.Equal(t, deposits[1], refund[1].Amount)
}

func TestShareInAssetsFloorsSmallBurns(t *testing.T) {
	deposits := ints(3, 7)
	share, err := ComputeShare(deposits, ints(0, 0), sdkmath.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(4), share)

	pools := [2]types.Asset{types.CoinAsset(3, "uluna"), types.CoinAsset(7, "uusd")}
	refund := ShareInAssets(pools, sdkmath.OneInt(), share)
	require.True(t, refund[0].Amount.IsZero())
	require.Equal(t, sdkmath.NewInt(1), refund[1].Amount)
}

func TestShareInAssetsSmallBurnAgainstLargeReserve(t *testing.T) {
	pools := [2]types.Asset{
		types.CoinAsset(1_000_000_000_000, "uluna"),
		types.CoinAsset(3_000_000_000_000, "uusd"),
	}
	refund := ShareInAssets(pools, sdkmath.OneInt(), sdkmath.NewInt(1_000_000))
	require.Equal(t, sdkmath.NewInt(1_000_000), refund[0].Amount)
	require.Equal(t, sdkmath.NewInt(3_000_000), refund[1].Amount)
}

func TestShareRatioWithoutSupplyIsZero(t *testing.T) {
	require.True(t, ShareRatio(sdkmath.NewInt(10), sdkmath.ZeroInt()).IsZero())
}
