package interfaces

import (
	"context"
	"paystack_bridge/internal/domain/entities"
)

// ITransactionRepository abstracts DynamoDB persistence for Transaction audit records.
type ITransactionRepository interface {
	Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error)
	ListByReference(ctx context.Context, reference string) ([]entities.Transaction, error)
}
