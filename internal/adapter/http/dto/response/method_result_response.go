package response

import "paystack_bridge/internal/domain/entities"

// MethodResultResponse is the JSON form of a channel reply.
type MethodResultResponse struct {
	Result  string `json:"result"`
	Value   any    `json:"value,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func FromMethodResult(r entities.MethodResult) MethodResultResponse {
	return MethodResultResponse{
		Result:  string(r.Kind),
		Value:   r.Value,
		Code:    r.Code,
		Message: r.Message,
		Details: r.Details,
	}
}
