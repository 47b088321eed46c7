package entities

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PaymentRequest is the caller-supplied payment data (amount, currency, card or
// authorization fields, metadata). It is forwarded to the provider as-is.
type PaymentRequest map[string]any

// ResponsePayload is the provider-defined description of a successful outcome.
type ResponsePayload map[string]any

// Operation names the bridge call that produced an outcome.
type Operation string

const (
	OperationProcessPayment    Operation = "process_payment"
	OperationVerifyTransaction Operation = "verify_transaction"
)

// Reference returns the "reference" field of the request when it is a string.
func (r PaymentRequest) Reference() string {
	if v, ok := r["reference"].(string); ok {
		return v
	}
	return ""
}

// Clone returns a shallow copy so callers can enrich a request without
// mutating the map they were given.
func (r PaymentRequest) Clone() PaymentRequest {
	out := make(PaymentRequest, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Reference returns the "reference" field of the payload when it is a string.
func (p ResponsePayload) Reference() string {
	if v, ok := p["reference"].(string); ok {
		return v
	}
	return ""
}

// Amount returns the "amount" field as a number. Numeric strings are accepted.
func (r PaymentRequest) Amount() (float64, bool) {
	switch n := r["amount"].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
