package payments

import (
	"fmt"
	"paystack_bridge/internal/config"
	"paystack_bridge/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// NewProvider builds the configured provider wrapped in a circuit breaker.
// Mock mode always selects the simulated provider.
func NewProvider(cfg config.Config, log *zap.SugaredLogger) (interfaces.IPaymentProvider, error) {
	var (
		provider interfaces.IPaymentProvider
		err      error
	)

	name := cfg.PaymentProvider
	if cfg.PaymentMock {
		name = config.ProviderSimulated
	}

	switch name {
	case config.ProviderSimulated:
		provider = NewSimulatedGateway(0, log)
	case config.ProviderPaystack:
		provider, err = NewPaystackGateway(cfg.PaystackSecretKey, cfg.PaystackBaseURL, cfg.ProviderTimeout, log)
	case config.ProviderMercadoPago:
		provider, err = NewMercadoPagoGateway(cfg.MercadoPagoToken, log)
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", name)
	}
	if err != nil {
		return nil, err
	}

	return NewBreakerGateway(provider, cfg.BreakerMaxFailures, cfg.BreakerOpenTimeout, log), nil
}
