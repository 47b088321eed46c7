package interfaces

import (
	"context"
	"paystack_bridge/internal/domain/entities"
)

// IPaymentProvider abstracts the external payment provider (Paystack, Mercado
// Pago or the simulated provider).
//
// Provider-reported failures should be returned as *entities.ProviderError so
// the bridge can surface their message and detail mapping unchanged.
type IPaymentProvider interface {
	Name() string
	ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.ResponsePayload, error)
	VerifyTransaction(ctx context.Context, reference string) (entities.ResponsePayload, error)
}
