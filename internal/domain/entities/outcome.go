package entities

import "fmt"

// Error codes carried in ProviderError.Details["code"].
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeDeclined            = "declined"
	ErrorCodeTimeout             = "timeout"
	ErrorCodeProviderUnavailable = "provider_unavailable"
	ErrorCodeProviderError       = "provider_error"
)

// ProviderError is a failure reported by (or on behalf of) the payment
// provider: a human readable message plus structured diagnostic fields.
type ProviderError struct {
	Message string
	Details map[string]any
}

func NewProviderError(message, code string) *ProviderError {
	return &ProviderError{Message: message, Details: map[string]any{"code": code}}
}

func (e *ProviderError) Error() string {
	if code := e.Code(); code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, code)
	}
	return e.Message
}

// Code returns Details["code"] or "" when absent.
func (e *ProviderError) Code() string {
	if e == nil || e.Details == nil {
		return ""
	}
	code, _ := e.Details["code"].(string)
	return code
}

// With returns the error with an extra detail field set.
func (e *ProviderError) With(key string, value any) *ProviderError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// Outcome is the terminal result of one bridge call. Exactly one of Response
// and Err is meaningful: Err == nil means success.
type Outcome struct {
	Response ResponsePayload
	Err      *ProviderError
}

func Succeeded(resp ResponsePayload) Outcome {
	if resp == nil {
		resp = ResponsePayload{}
	}
	return Outcome{Response: resp}
}

func Failed(err *ProviderError) Outcome {
	return Outcome{Err: err}
}

func (o Outcome) OK() bool { return o.Err == nil }
