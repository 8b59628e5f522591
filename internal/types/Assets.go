/*

Assets are the amount-bearing values a pool holds: either a native bank denom
or a cw20 token contract. Pool and borrowing math only look at the identity
and the amount; the variant only matters when building transfer instructions.

*/

package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/elys-network/zll/internal/host"
)

// AssetInfo identifies an asset. Exactly one of the variants is set.
type AssetInfo struct {
	Token       *TokenAssetInfo  `json:"token,omitempty"`
	NativeToken *NativeAssetInfo `json:"native_token,omitempty"`
}

type TokenAssetInfo struct {
	ContractAddr string `json:"contract_addr"`
}

type NativeAssetInfo struct {
	Denom string `json:"denom"`
}

func NativeAssetInfoOf(denom string) AssetInfo {
	return AssetInfo{NativeToken: &NativeAssetInfo{Denom: denom}}
}

func TokenAssetInfoOf(contractAddr string) AssetInfo {
	return AssetInfo{Token: &TokenAssetInfo{ContractAddr: contractAddr}}
}

func (i AssetInfo) IsNativeToken() bool {
	return i.NativeToken != nil
}

// Equal compares identities: same variant and same denom or contract.
func (i AssetInfo) Equal(other AssetInfo) bool {
	switch {
	case i.NativeToken != nil && other.NativeToken != nil:
		return i.NativeToken.Denom == other.NativeToken.Denom
	case i.Token != nil && other.Token != nil:
		return i.Token.ContractAddr == other.Token.ContractAddr
	default:
		return false
	}
}

func (i AssetInfo) String() string {
	switch {
	case i.NativeToken != nil:
		return i.NativeToken.Denom
	case i.Token != nil:
		return i.Token.ContractAddr
	default:
		return "<empty>"
	}
}

// Check validates the identity: a well-formed denom or a valid contract address.
func (i AssetInfo) Check(api host.API) error {
	switch {
	case i.NativeToken != nil && i.Token != nil:
		return ErrInvalidAsset.Wrap("asset info sets both native_token and token")
	case i.NativeToken != nil:
		if err := sdk.ValidateDenom(i.NativeToken.Denom); err != nil {
			return ErrInvalidAsset.Wrapf("%s", err)
		}
		return nil
	case i.Token != nil:
		if _, err := api.AddrValidate(i.Token.ContractAddr); err != nil {
			return ErrInvalidAsset.Wrapf("token %s: %s", i.Token.ContractAddr, err)
		}
		return nil
	default:
		return ErrInvalidAsset.Wrap("asset info is empty")
	}
}

// AssetInfos is the pair of identities a pool trades.
type AssetInfos [2]AssetInfo

// Validate checks both identities and rejects a pair that doubles one asset.
func (p AssetInfos) Validate(api host.API) error {
	for _, info := range p {
		if err := info.Check(api); err != nil {
			return err
		}
	}
	if p[0].Equal(p[1]) {
		return ErrDoublingAssets.Wrapf("%s", p[0])
	}
	return nil
}

// IndexOf returns the slot holding info, or -1.
func (p AssetInfos) IndexOf(info AssetInfo) int {
	for idx, candidate := range p {
		if candidate.Equal(info) {
			return idx
		}
	}
	return -1
}

// Asset is an amount of a given asset. Amounts are unsigned 128-bit values.
type Asset struct {
	Info   AssetInfo   `json:"info"`
	Amount sdkmath.Int `json:"amount"`
}

func NewAsset(info AssetInfo, amount sdkmath.Int) Asset {
	return Asset{Info: info, Amount: amount}
}

func CoinAsset(amount uint64, denom string) Asset {
	return Asset{Info: NativeAssetInfoOf(denom), Amount: sdkmath.NewIntFromUint64(amount)}
}

func TokenAsset(amount uint64, contractAddr string) Asset {
	return Asset{Info: TokenAssetInfoOf(contractAddr), Amount: sdkmath.NewIntFromUint64(amount)}
}

func (a Asset) String() string {
	return fmt.Sprintf("%s%s", a.Amount, a.Info)
}

// Validate checks the identity and that the amount is a valid 128-bit value.
func (a Asset) Validate(api host.API) error {
	if err := a.Info.Check(api); err != nil {
		return err
	}
	if !IsUint128(a.Amount) {
		return ErrInvalidAsset.Wrapf("amount of %s must be an unsigned 128-bit integer", a.Info)
	}
	return nil
}

// AssertSentNativeTokenBalance checks that a native asset's amount matches the
// funds attached to the call. Token assets are pulled later and always pass.
func (a Asset) AssertSentNativeTokenBalance(info host.MessageInfo) error {
	if !a.Info.IsNativeToken() {
		return nil
	}
	sent := info.Funds.AmountOf(a.Info.NativeToken.Denom)
	if !sent.Equal(a.Amount) {
		return ErrFundsMismatch.Wrapf("%s: argument %s, transferred %s", a.Info, a.Amount, sent)
	}
	return nil
}

// TransferInMsg builds the pull of a token asset from owner into recipient.
// Native assets arrive with the call itself, so nil is returned for them.
func (a Asset) TransferInMsg(owner, recipient string) (*host.CosmosMsg, error) {
	if a.Info.IsNativeToken() {
		return nil, nil
	}
	msg, err := host.WasmExecute(a.Info.Token.ContractAddr, Cw20ExecuteMsg{
		TransferFrom: &Cw20TransferFrom{Owner: owner, Recipient: recipient, Amount: a.Amount},
	}, nil)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// TransferOutMsg builds the push of the asset from the calling contract to recipient.
func (a Asset) TransferOutMsg(recipient string) (host.CosmosMsg, error) {
	if a.Info.IsNativeToken() {
		return host.BankSend(recipient, sdk.NewCoins(sdk.NewCoin(a.Info.NativeToken.Denom, a.Amount))), nil
	}
	return host.WasmExecute(a.Info.Token.ContractAddr, Cw20ExecuteMsg{
		Transfer: &Cw20Transfer{Recipient: recipient, Amount: a.Amount},
	}, nil)
}

// FindAmount returns the amount of the first asset in assets matching info.
func FindAmount(assets []Asset, info AssetInfo) (sdkmath.Int, bool) {
	for _, asset := range assets {
		if asset.Info.Equal(info) {
			return asset.Amount, true
		}
	}
	return sdkmath.ZeroInt(), false
}
