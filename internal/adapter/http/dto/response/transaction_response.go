package response

import (
	"paystack_bridge/internal/domain/entities"
	"time"
)

type TransactionResponse struct {
	ID           string         `json:"id"`
	Reference    string         `json:"reference"`
	Operation    string         `json:"operation"`
	Provider     string         `json:"provider"`
	Status       string         `json:"status"`
	Response     map[string]any `json:"response,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	ErrorDetails map[string]any `json:"error_details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

type TransactionListResponse struct {
	Reference    string                `json:"reference"`
	Transactions []TransactionResponse `json:"transactions"`
}

func FromTransaction(t entities.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Reference:    t.Reference,
		Operation:    string(t.Operation),
		Provider:     t.Provider,
		Status:       string(t.Status),
		Response:     t.Response,
		ErrorMessage: t.ErrorMessage,
		ErrorDetails: t.ErrorDetails,
		CreatedAt:    t.CreatedAt,
	}
}

func FromTransactions(reference string, items []entities.Transaction) TransactionListResponse {
	out := TransactionListResponse{Reference: reference, Transactions: make([]TransactionResponse, 0, len(items))}
	for _, t := range items {
		out.Transactions = append(out.Transactions, FromTransaction(t))
	}
	return out
}
