package payments

import (
	"context"
	"errors"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase/interfaces"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerGateway wraps a provider with a circuit breaker. Only transport and
// provider-side faults count as failures; declines and invalid requests are
// answers, not outages.
type BreakerGateway struct {
	next interfaces.IPaymentProvider
	cb   *gobreaker.CircuitBreaker
	log  *zap.SugaredLogger
}

var _ interfaces.IPaymentProvider = (*BreakerGateway)(nil)

func NewBreakerGateway(next interfaces.IPaymentProvider, maxFailures uint32, openTimeout time.Duration, log *zap.SugaredLogger) *BreakerGateway {
	log = logger.OrNop(log).Named("payment.gateway.breaker")
	if maxFailures == 0 {
		maxFailures = 1
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "provider", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isBreakerSuccess,
	}

	return &BreakerGateway{next: next, cb: gobreaker.NewCircuitBreaker(settings), log: log}
}

func (g *BreakerGateway) Name() string { return g.next.Name() }

func (g *BreakerGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.ResponsePayload, error) {
	return g.execute(func() (entities.ResponsePayload, error) {
		return g.next.ProcessPayment(ctx, req)
	})
}

func (g *BreakerGateway) VerifyTransaction(ctx context.Context, reference string) (entities.ResponsePayload, error) {
	return g.execute(func() (entities.ResponsePayload, error) {
		return g.next.VerifyTransaction(ctx, reference)
	})
}

// State exposes the breaker state for health reporting.
func (g *BreakerGateway) State() gobreaker.State { return g.cb.State() }

func (g *BreakerGateway) execute(call func() (entities.ResponsePayload, error)) (entities.ResponsePayload, error) {
	res, err := g.cb.Execute(func() (interface{}, error) {
		return call()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.log.Warnw("provider call rejected", "provider", g.Name(), "error", err)
		return nil, entities.NewProviderError("Payment provider unavailable", entities.ErrorCodeProviderUnavailable).With("provider", g.Name())
	}
	if err != nil {
		return nil, err
	}
	payload, _ := res.(entities.ResponsePayload)
	return payload, nil
}

func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	// The caller giving up says nothing about the provider's health.
	if errors.Is(err, context.Canceled) {
		return true
	}
	var perr *entities.ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	switch perr.Code() {
	case entities.ErrorCodeProviderError, entities.ErrorCodeProviderUnavailable, entities.ErrorCodeTimeout:
		return false
	}
	return true
}
