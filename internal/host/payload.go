package host

import (
	"bytes"
	"encoding/json"
)

// Decode strictly unmarshals a JSON payload into out. Unknown fields are
// rejected so a message for another variant never decodes into an empty one.
func Decode(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return ErrInvalidPayload.Wrap(err.Error())
	}
	return nil
}

// DecodeVariant decodes an externally tagged enum. A payload naming more than
// one variant is rejected; an empty one is left to the caller.
func DecodeVariant(raw []byte, out any) error {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(raw, &variants); err != nil {
		return ErrInvalidPayload.Wrap(err.Error())
	}
	if len(variants) > 1 {
		return ErrInvalidPayload.Wrapf("expected one variant, got %d", len(variants))
	}
	return Decode(raw, out)
}

// Encode marshals a query response or a message payload.
func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, ErrInvalidPayload.Wrapf("failed to encode %T: %s", v, err)
	}
	return bz, nil
}
