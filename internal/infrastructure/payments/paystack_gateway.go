package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase/interfaces"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPaystackBaseURL = "https://api.paystack.co"

	paystackInitializePath          = "/transaction/initialize"
	paystackChargeAuthorizationPath = "/transaction/charge_authorization"
	paystackChargePath              = "/charge"
	paystackVerifyPath              = "/transaction/verify/"

	maxPaystackResponseBytes = 1 << 20
)

var ErrMissingPaystackSecretKey = errors.New("missing PAYSTACK_SECRET_KEY")

// PaystackGateway talks to the Paystack REST API.
type PaystackGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

var _ interfaces.IPaymentProvider = (*PaystackGateway)(nil)

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func NewPaystackGateway(secretKey, baseURL string, timeout time.Duration, log *zap.SugaredLogger) (*PaystackGateway, error) {
	log = logger.OrNop(log).Named("payment.gateway.paystack")
	if strings.TrimSpace(secretKey) == "" {
		log.Errorw("missing PAYSTACK_SECRET_KEY")
		return nil, ErrMissingPaystackSecretKey
	}
	if baseURL == "" {
		baseURL = DefaultPaystackBaseURL
	}
	log.Infow("Paystack client initialized", "base_url", baseURL)

	return &PaystackGateway{
		secretKey:  secretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

func (g *PaystackGateway) Name() string { return "paystack" }

// ProcessPayment picks the endpoint from the request shape: card or mobile
// money details go to /charge, a saved authorization_code to
// /transaction/charge_authorization, anything else initializes a checkout.
func (g *PaystackGateway) ProcessPayment(ctx context.Context, req entities.PaymentRequest) (entities.ResponsePayload, error) {
	path := paystackInitializePath
	switch {
	case has(req, "card"), has(req, "mobile_money"), has(req, "bank"), has(req, "ussd"):
		path = paystackChargePath
	case has(req, "authorization_code"):
		path = paystackChargeAuthorizationPath
	}

	body, err := json.Marshal(req)
	if err != nil {
		g.log.Warnw("payload marshal failed", "error", err)
		return nil, entities.NewProviderError("Invalid payment request", entities.ErrorCodeInvalidRequest)
	}

	g.log.Infow("create start", "path", path, "payload_len", len(body))
	return g.do(ctx, http.MethodPost, path, body)
}

func (g *PaystackGateway) VerifyTransaction(ctx context.Context, reference string) (entities.ResponsePayload, error) {
	g.log.Infow("verify start", "reference", reference)
	return g.do(ctx, http.MethodGet, paystackVerifyPath+url.PathEscape(reference), nil)
}

func (g *PaystackGateway) do(ctx context.Context, method, path string, body []byte) (entities.ResponsePayload, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("paystack build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.secretKey)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		g.log.Warnw("request failed", "path", path, "error", err)
		return nil, fmt.Errorf("paystack request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPaystackResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("paystack read response: %w", err)
	}

	var env paystackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.log.Warnw("response decode failed", "path", path, "http_status", resp.StatusCode, "error", err)
		return nil, entities.NewProviderError("Invalid response from payment provider", entities.ErrorCodeProviderError).
			With("http_status", resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusMultipleChoices || !env.Status {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		perr := entities.NewProviderError(message, codeForHTTPStatus(resp.StatusCode)).With("http_status", resp.StatusCode)
		if env.Code != "" {
			perr.With("provider_code", env.Code)
		}
		g.log.Warnw("provider rejected request", "path", path, "http_status", resp.StatusCode, "message", message)
		return nil, perr
	}

	data := entities.ResponsePayload{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			data = entities.ResponsePayload{"data": env.Data}
		}
	}

	if perr := declined(data); perr != nil {
		g.log.Infow("transaction declined", "path", path, "reference", data.Reference(), "status", data["status"])
		return nil, perr
	}

	g.log.Infow("request success", "path", path, "reference", data.Reference(), "status", data["status"])
	return data, nil
}

// declined reports charges Paystack accepted as requests but that ended in a
// failed state.
func declined(data entities.ResponsePayload) *entities.ProviderError {
	status, _ := data["status"].(string)
	switch strings.ToLower(status) {
	case "failed", "abandoned", "reversed":
	default:
		return nil
	}

	message, _ := data["gateway_response"].(string)
	if strings.TrimSpace(message) == "" {
		message = "Transaction " + strings.ToLower(status)
	}
	perr := entities.NewProviderError(message, entities.ErrorCodeDeclined).With("status", status)
	if ref := data.Reference(); ref != "" {
		perr.With("reference", ref)
	}
	return perr
}

func codeForHTTPStatus(status int) string {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return entities.ErrorCodeInvalidRequest
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return entities.ErrorCodeUnauthorized
	case status == http.StatusNotFound:
		return entities.ErrorCodeNotFound
	default:
		return entities.ErrorCodeProviderError
	}
}

func has(req entities.PaymentRequest, key string) bool {
	v, ok := req[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}
