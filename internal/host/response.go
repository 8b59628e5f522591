package host

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ReplyOn decides when the dispatcher calls back into the issuing contract.
type ReplyOn string

const (
	ReplyNever   ReplyOn = "never"
	ReplySuccess ReplyOn = "success"
	ReplyError   ReplyOn = "error"
	ReplyAlways  ReplyOn = "always"
)

// SubMsg is an outgoing instruction tagged with a caller-assigned id that is
// echoed back in the Reply.
type SubMsg struct {
	ID      uint64    `json:"id"`
	Msg     CosmosMsg `json:"msg"`
	ReplyOn ReplyOn   `json:"reply_on"`
}

func NewSubMsg(msg CosmosMsg) SubMsg {
	return SubMsg{Msg: msg, ReplyOn: ReplyNever}
}

func ReplyOnSuccess(msg CosmosMsg, id uint64) SubMsg {
	return SubMsg{ID: id, Msg: msg, ReplyOn: ReplySuccess}
}

// Response is what a successful entry point hands back to the host.
type Response struct {
	Messages   []SubMsg        `json:"messages"`
	Attributes []sdk.Attribute `json:"attributes"`
	Data       []byte          `json:"data,omitempty"`
}

func NewResponse() *Response {
	return &Response{}
}

func (r *Response) AddMessage(msg CosmosMsg) *Response {
	r.Messages = append(r.Messages, NewSubMsg(msg))
	return r
}

func (r *Response) AddMessages(msgs ...CosmosMsg) *Response {
	for _, msg := range msgs {
		r.AddMessage(msg)
	}
	return r
}

func (r *Response) AddSubMessage(msg SubMsg) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, sdk.NewAttribute(key, value))
	return r
}

func (r *Response) AddAttributes(attrs ...sdk.Attribute) *Response {
	r.Attributes = append(r.Attributes, attrs...)
	return r
}

func (r *Response) SetData(data []byte) *Response {
	r.Data = data
	return r
}

// Attribute returns the value of the first attribute with the given key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
