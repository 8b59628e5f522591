package chain

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	wasmEventType      = "wasm"
	instantiateEvent   = "instantiate"
	transferEvent      = "transfer"
	replyEvent         = "reply"
	contractAddressKey = "_contract_address"
)

// AppResponse collects the events of a call and everything it dispatched,
// in execution order, plus the data of the outermost call.
type AppResponse struct {
	Events sdk.Events
	Data   []byte
}

func (r *AppResponse) merge(other *AppResponse) {
	r.Events = append(r.Events, other.Events...)
}

// Attribute returns the value of the first attribute named key in any event.
func (r *AppResponse) Attribute(key string) (string, bool) {
	for _, event := range r.Events {
		for _, attr := range event.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}
	return "", false
}

// Attributes flattens the custom attributes of every wasm event.
func (r *AppResponse) Attributes() []sdk.Attribute {
	var attrs []sdk.Attribute
	for _, event := range r.Events {
		if event.Type != wasmEventType {
			continue
		}
		for _, attr := range event.Attributes {
			if attr.Key == contractAddressKey {
				continue
			}
			attrs = append(attrs, sdk.NewAttribute(attr.Key, attr.Value))
		}
	}
	return attrs
}

func wasmEvent(contract string, attrs []sdk.Attribute) sdk.Event {
	return sdk.NewEvent(wasmEventType, append([]sdk.Attribute{sdk.NewAttribute(contractAddressKey, contract)}, attrs...)...)
}
