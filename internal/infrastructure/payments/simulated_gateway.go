package payments

import (
	"context"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase/interfaces"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SimulatedGateway is a standalone provider that never leaves the process.
// It remembers the references it issued so they can be verified later.
type SimulatedGateway struct {
	latency time.Duration
	log     *zap.SugaredLogger
	now     func() time.Time

	mu       sync.RWMutex
	payments map[string]entities.ResponsePayload
}

var _ interfaces.IPaymentProvider = (*SimulatedGateway)(nil)

func NewSimulatedGateway(latency time.Duration, log *zap.SugaredLogger) *SimulatedGateway {
	log = logger.OrNop(log).Named("payment.gateway.simulated")
	log.Infow("mock mode enabled")
	return &SimulatedGateway{
		latency:  latency,
		log:      log,
		now:      time.Now,
		payments: map[string]entities.ResponsePayload{},
	}
}

func (g *SimulatedGateway) Name() string { return "simulated" }

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.ResponsePayload, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	amount, ok := req.Amount()
	if !ok || amount <= 0 {
		g.log.Infow("mock create rejected", "amount", req["amount"])
		return nil, entities.NewProviderError("Invalid amount", entities.ErrorCodeInvalidRequest)
	}

	reference := strings.TrimSpace(req.Reference())
	if reference == "" {
		reference = "sim_" + strconv.FormatInt(g.now().UnixMilli(), 10)
	}

	resp := entities.ResponsePayload{
		"status":    "success",
		"success":   true,
		"reference": reference,
		"message":   "Payment processed successfully",
		"amount":    req["amount"],
		"currency":  req["currency"],
	}
	for _, key := range []string{"email", "paymentMethod"} {
		if v, ok := req[key]; ok {
			resp[key] = v
		}
	}

	g.mu.Lock()
	g.payments[reference] = resp
	g.mu.Unlock()

	g.log.Infow("mock create success", "reference", reference)
	return resp, nil
}

func (g *SimulatedGateway) VerifyTransaction(ctx context.Context, reference string) (entities.ResponsePayload, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	g.mu.RLock()
	_, found := g.payments[reference]
	g.mu.RUnlock()
	if !found {
		return nil, entities.NewProviderError("Transaction not found", entities.ErrorCodeNotFound).With("reference", reference)
	}

	return entities.ResponsePayload{
		"status":    "success",
		"reference": reference,
		"verified":  true,
		"message":   "Transaction verified successfully",
	}, nil
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.latency):
		return nil
	}
}
