package entities

import "time"

// TransactionStatus is the terminal branch an outcome took.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusError   TransactionStatus = "error"
)

// Transaction is the audit record of one terminal outcome.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (reference-index): reference
type Transaction struct {
	ID           string            `json:"id"`
	Reference    string            `json:"reference"`
	Operation    Operation         `json:"operation"`
	Provider     string            `json:"provider"`
	Status       TransactionStatus `json:"status"`
	Response     map[string]any    `json:"response,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	ErrorDetails map[string]any    `json:"error_details,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
