package types

import (
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elys-network/zll/internal/host"
)

var testAPI = host.NewBech32API("zll")

func TestAssetInfoEqual(t *testing.T) {
	token := testAPI.AddrMake("token")

	assert.True(t, NativeAssetInfoOf("uluna").Equal(NativeAssetInfoOf("uluna")))
	assert.False(t, NativeAssetInfoOf("uluna").Equal(NativeAssetInfoOf("uusd")))
	assert.True(t, TokenAssetInfoOf(token).Equal(TokenAssetInfoOf(token)))
	assert.False(t, TokenAssetInfoOf("uluna").Equal(NativeAssetInfoOf("uluna")))
}

func TestAssetInfosValidate(t *testing.T) {
	token := testAPI.AddrMake("token")

	require.NoError(t, AssetInfos{NativeAssetInfoOf("uluna"), TokenAssetInfoOf(token)}.Validate(testAPI))

	err := AssetInfos{NativeAssetInfoOf("uluna"), NativeAssetInfoOf("uluna")}.Validate(testAPI)
	require.ErrorIs(t, err, ErrDoublingAssets)

	err = AssetInfos{NativeAssetInfoOf("uluna"), TokenAssetInfoOf("not-an-address")}.Validate(testAPI)
	require.ErrorIs(t, err, ErrInvalidAsset)

	err = AssetInfos{NativeAssetInfoOf("1"), NativeAssetInfoOf("uusd")}.Validate(testAPI)
	require.ErrorIs(t, err, ErrInvalidAsset)

	err = AssetInfos{{}, NativeAssetInfoOf("uusd")}.Validate(testAPI)
	require.ErrorIs(t, err, ErrInvalidAsset)
}

func TestAssetJSONShape(t *testing.T) {
	bz, err := json.Marshal(CoinAsset(42, "uluna"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"info":{"native_token":{"denom":"uluna"}},"amount":"42"}`, string(bz))

	var decoded Asset
	require.NoError(t, json.Unmarshal([]byte(`{"info":{"token":{"contract_addr":"x"}},"amount":"7"}`), &decoded))
	assert.True(t, decoded.Info.Equal(TokenAssetInfoOf("x")))
	assert.Equal(t, "7", decoded.Amount.String())
}

func TestAssertSentNativeTokenBalance(t *testing.T) {
	info := host.MessageInfo{Funds: sdk.NewCoins(sdk.NewInt64Coin("uluna", 100))}

	require.NoError(t, CoinAsset(100, "uluna").AssertSentNativeTokenBalance(info))
	require.ErrorIs(t, CoinAsset(99, "uluna").AssertSentNativeTokenBalance(info), ErrFundsMismatch)
	require.ErrorIs(t, CoinAsset(1, "uusd").AssertSentNativeTokenBalance(info), ErrFundsMismatch)
	require.NoError(t, TokenAsset(5, "token").AssertSentNativeTokenBalance(info))
}

func TestTransferInMsg(t *testing.T) {
	msg, err := CoinAsset(10, "uluna").TransferInMsg("owner", "pool")
	require.NoError(t, err)
	assert.Nil(t, msg)

	msg, err = TokenAsset(10, "token").TransferInMsg("owner", "pool")
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.NotNil(t, msg.Wasm.Execute)
	assert.Equal(t, "token", msg.Wasm.Execute.ContractAddr)

	var exec Cw20ExecuteMsg
	require.NoError(t, json.Unmarshal(msg.Wasm.Execute.Msg, &exec))
	require.NotNil(t, exec.TransferFrom)
	assert.Equal(t, "owner", exec.TransferFrom.Owner)
	assert.Equal(t, "pool", exec.TransferFrom.Recipient)
	assert.True(t, exec.TransferFrom.Amount.Equal(sdkmath.NewInt(10)))
}

func TestTransferOutMsg(t *testing.T) {
	msg, err := CoinAsset(10, "uluna").TransferOutMsg("user")
	require.NoError(t, err)
	require.NotNil(t, msg.Bank)
	assert.Equal(t, "user", msg.Bank.Send.ToAddress)
	assert.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("uluna", 10)).String(), msg.Bank.Send.Amount.String())

	msg, err = TokenAsset(10, "token").TransferOutMsg("user")
	require.NoError(t, err)
	require.NotNil(t, msg.Wasm)

	var exec Cw20ExecuteMsg
	require.NoError(t, json.Unmarshal(msg.Wasm.Execute.Msg, &exec))
	require.NotNil(t, exec.Transfer)
	assert.Equal(t, "user", exec.Transfer.Recipient)
}
