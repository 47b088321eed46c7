package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase/interfaces"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway forwards bridge calls to Mercado Pago. References are the
// numeric Mercado Pago payment ids.
type MercadoPagoGateway struct {
	client payment.Client
	log    *zap.SugaredLogger
}

var _ interfaces.IPaymentProvider = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, log *zap.SugaredLogger) (*MercadoPagoGateway, error) {
	log = logger.OrNop(log).Named("payment.gateway.mercadopago")
	if accessToken == "" {
		log.Errorw("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Errorw("failed creating sdk config", "error", err)
		return nil, err
	}
	log.Infow("Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), log: log}, nil
}

func (g *MercadoPagoGateway) Name() string { return "mercadopago" }

func (g *MercadoPagoGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.ResponsePayload, error) {
	if g == nil || g.client == nil {
		return nil, ErrMercadoPagoGatewayNotConfigured
	}

	payload, err := json.Marshal(toMercadoPagoPayload(req))
	if err != nil {
		g.log.Warnw("payload marshal failed", "error", err)
		return nil, entities.NewProviderError("Invalid payment request", entities.ErrorCodeInvalidRequest)
	}
	g.log.Infow("create start", "payload_len", len(payload))

	var mpReq payment.Request
	if err := json.Unmarshal(payload, &mpReq); err != nil {
		g.log.Warnw("payload unmarshal failed", "error", err)
		return nil, entities.NewProviderError("Invalid payment request", entities.ErrorCodeInvalidRequest)
	}

	resp, err := g.client.Create(ctx, mpReq)
	if err != nil {
		g.log.Warnw("sdk create failed", "error", err)
		return nil, mapMercadoPagoError(err)
	}
	g.log.Infow("create success", "provider_payment_id", resp.ID, "provider_status", resp.Status)

	return fromMercadoPagoResponse(resp)
}

func (g *MercadoPagoGateway) VerifyTransaction(ctx context.Context, reference string) (entities.ResponsePayload, error) {
	if g == nil || g.client == nil {
		return nil, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(reference))
	if err != nil {
		return nil, entities.NewProviderError("Transaction not found", entities.ErrorCodeNotFound).With("reference", reference)
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		g.log.Warnw("sdk get failed", "reference", reference, "error", err)
		return nil, mapMercadoPagoError(err)
	}
	g.log.Infow("get success", "provider_payment_id", resp.ID, "provider_status", resp.Status)

	return fromMercadoPagoResponse(resp)
}

// toMercadoPagoPayload maps the generic request keys onto Mercado Pago's
// schema without overriding fields the caller already set.
func toMercadoPagoPayload(req entities.PaymentRequest) map[string]any {
	m := map[string]any(req.Clone())
	if _, ok := m["transaction_amount"]; !ok {
		if amount, ok := req.Amount(); ok {
			m["transaction_amount"] = amount
		}
	}
	if _, ok := m["external_reference"]; !ok {
		if ref := req.Reference(); ref != "" {
			m["external_reference"] = ref
		}
	}
	if _, ok := m["payer"]; !ok {
		if email, _ := m["email"].(string); email != "" {
			m["payer"] = map[string]any{"email": email}
		}
	}
	return m
}

func fromMercadoPagoResponse(resp *payment.Response) (entities.ResponsePayload, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	out := entities.ResponsePayload{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	out["reference"] = fmt.Sprintf("%d", resp.ID)

	if strings.EqualFold(resp.Status, "rejected") || strings.EqualFold(resp.Status, "cancelled") {
		message := resp.StatusDetail
		if message == "" {
			message = "Transaction " + resp.Status
		}
		return nil, entities.NewProviderError(message, entities.ErrorCodeDeclined).
			With("status", resp.Status).
			With("reference", fmt.Sprintf("%d", resp.ID))
	}
	return out, nil
}

func mapMercadoPagoError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found"), strings.Contains(msg, "\"code\":2002"):
		return entities.NewProviderError("Payer not found", entities.ErrorCodeInvalidRequest).With("provider_error", err.Error())
	case strings.Contains(msg, "invalid users involved"), strings.Contains(msg, "\"code\":2034"):
		return entities.NewProviderError("Invalid users involved", entities.ErrorCodeInvalidRequest).With("provider_error", err.Error())
	case strings.Contains(msg, "\"error\":\"unauthorized\""), strings.Contains(msg, "\"status\":401"):
		return entities.NewProviderError("Payment provider unauthorized", entities.ErrorCodeUnauthorized).With("provider_error", err.Error())
	case strings.Contains(msg, "\"status\":404"), strings.Contains(msg, "\"error\":\"not_found\""):
		return entities.NewProviderError("Transaction not found", entities.ErrorCodeNotFound).With("provider_error", err.Error())
	case strings.Contains(msg, "\"error\":\"bad_request\""), strings.Contains(msg, "\"status\":400"):
		return entities.NewProviderError("Invalid payment request", entities.ErrorCodeInvalidRequest).With("provider_error", err.Error())
	default:
		return err
	}
}
