package host

import (
	"strings"

	"github.com/cometbft/cometbft/crypto/tmhash"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Bech32API validates addresses against a single human-readable prefix.
type Bech32API struct {
	Prefix string
}

func NewBech32API(prefix string) Bech32API {
	return Bech32API{Prefix: prefix}
}

func (a Bech32API) AddrValidate(addr string) (string, error) {
	if addr == "" {
		return "", sdkerrors.ErrInvalidAddress.Wrap("empty address")
	}
	if strings.ToLower(addr) != addr {
		return "", sdkerrors.ErrInvalidAddress.Wrapf("address %s must be lowercase", addr)
	}
	bz, err := sdk.GetFromBech32(addr, a.Prefix)
	if err != nil {
		return "", sdkerrors.ErrInvalidAddress.Wrapf("%s: %s", addr, err)
	}
	if err := sdk.VerifyAddressFormat(bz); err != nil {
		return "", sdkerrors.ErrInvalidAddress.Wrapf("%s: %s", addr, err)
	}
	return addr, nil
}

// AddrMake derives a deterministic address from a label, for accounts and
// contracts that have no key of their own.
func (a Bech32API) AddrMake(label string) string {
	addr, err := sdk.Bech32ifyAddressBytes(a.Prefix, tmhash.SumTruncated([]byte(label)))
	if err != nil {
		// the prefix is fixed at construction and the payload is always 20 bytes
		panic(err)
	}
	return addr
}
