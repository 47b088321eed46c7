package usecase

import (
	"context"
	"errors"
	"fmt"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase/interfaces"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Channel error codes returned to the host.
const (
	CodeInvalidPublicKey       = "INVALID_PUBLIC_KEY"
	CodeNotInitialized         = "NOT_INITIALIZED"
	CodeInvalidEmail           = "INVALID_EMAIL"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeInvalidReference       = "INVALID_REFERENCE"
	CodeDuplicateReference     = "DUPLICATE_REFERENCE"
	CodePaymentProcessingError = "PAYMENT_PROCESSING_ERROR"
	CodeVerificationError      = "VERIFICATION_ERROR"
	CodePluginError            = "PLUGIN_ERROR"
)

const (
	defaultCurrency = "KES"
	defaultCountry  = "KE"

	initializedMessage = "Flutter Paystack initialized successfully"
)

// IMethodChannelUseCase handles calls arriving on the plugin channel.
type IMethodChannelUseCase interface {
	HandleMethodCall(ctx context.Context, call entities.MethodCall) entities.MethodResult
}

type MethodChannelUseCase struct {
	bridge   IPaymentBridge
	store    interfaces.IIdempotencyStore
	validate *validator.Validate
	log      *zap.SugaredLogger

	mu       sync.RWMutex
	settings *entities.PluginSettings
}

var _ IMethodChannelUseCase = (*MethodChannelUseCase)(nil)

type initializeArgs struct {
	PublicKey string `validate:"required"`
}

type startPaymentArgs struct {
	Email  string  `validate:"required,email"`
	Amount float64 `validate:"gt=0"`
}

type verifyArgs struct {
	Reference string `validate:"required"`
}

// NewMethodChannelUseCase builds the channel dispatcher. store may be nil, in
// which case duplicate references are not detected.
func NewMethodChannelUseCase(bridge IPaymentBridge, store interfaces.IIdempotencyStore, log *zap.SugaredLogger) *MethodChannelUseCase {
	return &MethodChannelUseCase{
		bridge:   bridge,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      logger.OrNop(log).Named("payment.channel"),
	}
}

func (u *MethodChannelUseCase) HandleMethodCall(ctx context.Context, call entities.MethodCall) (result entities.MethodResult) {
	defer func() {
		if r := recover(); r != nil {
			u.log.Errorw("method call panicked", "method", call.Method, "panic", r)
			result = entities.MethodError(CodePluginError, fmt.Sprintf("Error processing method call: %v", r), nil)
		}
	}()

	u.log.Debugw("method call", "method", call.Method)
	switch call.Method {
	case entities.MethodInitialize:
		return u.initialize(call)
	case entities.MethodStartPayment:
		return u.startPayment(ctx, call)
	case entities.MethodVerifyTransaction:
		return u.verifyTransaction(ctx, call)
	default:
		return entities.MethodNotImplemented()
	}
}

// Settings returns the session settings stored by initialize.
func (u *MethodChannelUseCase) Settings() (entities.PluginSettings, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.settings == nil {
		return entities.PluginSettings{}, false
	}
	return *u.settings, true
}

func (u *MethodChannelUseCase) initialize(call entities.MethodCall) entities.MethodResult {
	args := initializeArgs{PublicKey: strings.TrimSpace(call.StringArgument("publicKey"))}
	if err := u.validate.Struct(args); err != nil {
		return entities.MethodError(CodeInvalidPublicKey, "Public key cannot be null or empty", nil)
	}

	settings := entities.PluginSettings{
		PublicKey: args.PublicKey,
		Currency:  firstNonEmpty(call.StringArgument("currency"), defaultCurrency),
		Country:   firstNonEmpty(call.StringArgument("country"), defaultCountry),
	}

	u.mu.Lock()
	u.settings = &settings
	u.mu.Unlock()

	u.log.Infow("initialized", "currency", settings.Currency, "country", settings.Country)
	return entities.MethodSuccess(initializedMessage)
}

func (u *MethodChannelUseCase) startPayment(ctx context.Context, call entities.MethodCall) entities.MethodResult {
	settings, ok := u.Settings()
	if !ok {
		return entities.MethodError(CodeNotInitialized, "Flutter Paystack not initialized", nil)
	}

	amount, _ := entities.PaymentRequest(call.Arguments).Amount()
	args := startPaymentArgs{
		Email:  strings.TrimSpace(call.StringArgument("email")),
		Amount: amount,
	}
	if res, failed := u.checkStartPaymentArgs(args); failed {
		return res
	}

	req := buildPaymentRequest(call.Arguments, settings)
	req["email"] = args.Email
	reference := req.Reference()

	u.log.Infow("processing payment", "amount", args.Amount, "currency", req["currency"], "reference", reference, "payment_method", req["paymentMethod"])

	if reference != "" && u.store != nil {
		dup, err := u.store.CheckOrSetInProgress(ctx, reference)
		if dup {
			u.log.Warnw("duplicate reference", "reference", reference, "error", err)
			return entities.MethodError(CodeDuplicateReference, fmt.Sprintf("Transaction %s was already submitted", reference), map[string]any{"reference": reference})
		}
		if err != nil {
			// Store outage: carry on without the duplicate guard.
			u.log.Warnw("idempotency check failed", "reference", reference, "error", err)
		}
	}

	outcomes := u.bridge.ProcessPayment(ctx, req)
	if reference != "" && u.store != nil {
		outcomes = u.settleOnOutcome(ctx, reference, outcomes)
	}
	outcome := Await(ctx, outcomes)

	if !outcome.OK() {
		return entities.MethodError(CodePaymentProcessingError, outcome.Err.Message, outcome.Err.Details)
	}
	return entities.MethodSuccess(map[string]any(outcome.Response))
}

func (u *MethodChannelUseCase) verifyTransaction(ctx context.Context, call entities.MethodCall) entities.MethodResult {
	args := verifyArgs{Reference: strings.TrimSpace(call.StringArgument("reference"))}
	if err := u.validate.Struct(args); err != nil {
		return entities.MethodError(CodeInvalidReference, "Reference cannot be null or empty", nil)
	}

	u.log.Infow("verifying transaction", "reference", args.Reference)
	outcome := Await(ctx, u.bridge.VerifyTransaction(ctx, args.Reference))
	if !outcome.OK() {
		return entities.MethodError(CodeVerificationError, outcome.Err.Message, outcome.Err.Details)
	}
	return entities.MethodSuccess(map[string]any(outcome.Response))
}

func (u *MethodChannelUseCase) checkStartPaymentArgs(args startPaymentArgs) (entities.MethodResult, bool) {
	err := u.validate.Struct(args)
	if err == nil {
		return entities.MethodResult{}, false
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return entities.MethodError(CodePaymentProcessingError, "Failed to process payment: "+err.Error(), nil), true
	}

	// Email is checked before amount.
	for _, fe := range verrs {
		if fe.Field() == "Email" {
			if fe.Tag() == "required" {
				return entities.MethodError(CodeInvalidEmail, "Email cannot be null or empty", nil), true
			}
			return entities.MethodError(CodeInvalidEmail, "Email must be a valid email address", nil), true
		}
	}
	return entities.MethodError(CodeInvalidAmount, "Amount must be greater than 0", nil), true
}

// settleOnOutcome updates the idempotency store from the bridge's terminal
// outcome, then forwards it. The reference stays in progress while the
// provider call runs, even after the caller stopped waiting.
func (u *MethodChannelUseCase) settleOnOutcome(ctx context.Context, reference string, in <-chan entities.Outcome) <-chan entities.Outcome {
	out := make(chan entities.Outcome, 1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(out)
		outcome, ok := <-in
		if !ok {
			outcome = entities.Failed(entities.NewProviderError("no outcome received from payment bridge", entities.ErrorCodeProviderError))
		}

		var err error
		if outcome.OK() {
			err = u.store.SetCompleted(ctx, reference)
		} else {
			err = u.store.Release(ctx, reference)
		}
		if err != nil {
			u.log.Warnw("idempotency update failed", "reference", reference, "error", err)
		}
		out <- outcome
	}()
	return out
}

// buildPaymentRequest copies the channel arguments and fills session defaults.
func buildPaymentRequest(args map[string]any, settings entities.PluginSettings) entities.PaymentRequest {
	req := entities.PaymentRequest(args).Clone()
	if s, _ := req["currency"].(string); strings.TrimSpace(s) == "" {
		req["currency"] = settings.Currency
	}
	if s, _ := req["country"].(string); strings.TrimSpace(s) == "" {
		req["country"] = settings.Country
	}

	method, _ := req["paymentMethod"].(string)
	phone, _ := req["phoneNumber"].(string)
	if _, set := req["mobile_money"]; !set && phone != "" {
		if provider, ok := mobileMoneyProvider(method); ok {
			req["mobile_money"] = map[string]any{"phone": phone, "provider": provider}
		}
	}
	return req
}

func mobileMoneyProvider(method string) (string, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(method), "-", "_")) {
	case "mpesa", "m_pesa", "mpesa_stk", "mobile_money":
		return "mpesa", true
	case "airtel", "airtel_money":
		return "atl", true
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
