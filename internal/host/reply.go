package host

import (
	"encoding/json"
)

// Reply is the continuation callback for a SubMsg.
type Reply struct {
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}

// SubMsgResult holds either the sub-call response or its error message.
type SubMsgResult struct {
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"error,omitempty"`
}

type SubMsgResponse struct {
	Data []byte `json:"data,omitempty"`
}

func (r SubMsgResult) IsErr() bool {
	return r.Ok == nil
}

// InstantiateResponse is the data of a successful child-contract creation.
type InstantiateResponse struct {
	ContractAddress string `json:"contract_address"`
	Data            []byte `json:"data,omitempty"`
}

// ParseReplyInstantiateData extracts the created contract address from a
// successful instantiate reply.
func ParseReplyInstantiateData(reply Reply) (InstantiateResponse, error) {
	if reply.Result.Ok == nil {
		return InstantiateResponse{}, ErrParseReply.Wrap("reply carries no result")
	}
	if len(reply.Result.Ok.Data) == 0 {
		return InstantiateResponse{}, ErrParseReply.Wrap("missing instantiate data")
	}

	var res InstantiateResponse
	if err := json.Unmarshal(reply.Result.Ok.Data, &res); err != nil {
		return InstantiateResponse{}, ErrParseReply.Wrap(err.Error())
	}
	if res.ContractAddress == "" {
		return InstantiateResponse{}, ErrParseReply.Wrap("empty contract address")
	}
	return res, nil
}
