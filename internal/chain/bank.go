package chain

import (
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var balancesPrefix = []byte("balances/")

// accountBalances holds one entry per denom, keyed by denom.
func accountBalances(store storetypes.KVStore, addr string) storetypes.KVStore {
	return prefix.NewStore(store, append(append([]byte{}, balancesPrefix...), []byte(addr+"/")...))
}

func getBalance(store storetypes.KVStore, addr, denom string) sdk.Coin {
	bz := accountBalances(store, addr).Get([]byte(denom))
	if bz == nil {
		return sdk.NewCoin(denom, sdkmath.ZeroInt())
	}
	amount, ok := sdkmath.NewIntFromString(string(bz))
	if !ok {
		return sdk.NewCoin(denom, sdkmath.ZeroInt())
	}
	return sdk.NewCoin(denom, amount)
}

func setBalance(store storetypes.KVStore, addr string, coin sdk.Coin) {
	balances := accountBalances(store, addr)
	if coin.IsZero() {
		balances.Delete([]byte(coin.Denom))
		return
	}
	balances.Set([]byte(coin.Denom), []byte(coin.Amount.String()))
}

func getAllBalances(store storetypes.KVStore, addr string) sdk.Coins {
	it := storetypes.KVStorePrefixIterator(accountBalances(store, addr), nil)
	defer it.Close()

	coins := sdk.NewCoins()
	for ; it.Valid(); it.Next() {
		amount, ok := sdkmath.NewIntFromString(string(it.Value()))
		if !ok {
			continue
		}
		coins = coins.Add(sdk.NewCoin(string(it.Key()), amount))
	}
	return coins
}

// sendCoins moves amount from one account to another. It fails without
// touching either balance when from cannot cover every denom.
func sendCoins(store storetypes.KVStore, from, to string, amount sdk.Coins) error {
	if !amount.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amount.String())
	}
	for _, coin := range amount {
		balance := getBalance(store, from, coin.Denom)
		if balance.IsLT(coin) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("%s is smaller than %s", balance, coin)
		}
	}
	for _, coin := range amount {
		setBalance(store, from, getBalance(store, from, coin.Denom).Sub(coin))
		setBalance(store, to, getBalance(store, to, coin.Denom).Add(coin))
	}
	return nil
}
