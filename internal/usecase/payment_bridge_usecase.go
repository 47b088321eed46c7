package usecase

import (
	"context"
	"errors"
	"fmt"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase/interfaces"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recordTimeout = 5 * time.Second

// IPaymentBridge forwards payment and verification requests to the provider.
//
// Each call returns immediately. The returned channel yields exactly one
// Outcome and is then closed.
type IPaymentBridge interface {
	ProcessPayment(ctx context.Context, req entities.PaymentRequest) <-chan entities.Outcome
	VerifyTransaction(ctx context.Context, reference string) <-chan entities.Outcome
}

type PaymentBridge struct {
	registrar interfaces.IRegistrar
	provider  interfaces.IPaymentProvider
	repo      interfaces.ITransactionRepository
	log       *zap.SugaredLogger

	now   func() time.Time
	newID func() string
}

var _ IPaymentBridge = (*PaymentBridge)(nil)

type providerCall func(ctx context.Context) (entities.ResponsePayload, error)

// NewPaymentBridge never fails and never produces an outcome by itself. The
// registrar is only read; repo and log may be nil.
func NewPaymentBridge(registrar interfaces.IRegistrar, provider interfaces.IPaymentProvider, repo interfaces.ITransactionRepository, log *zap.SugaredLogger) *PaymentBridge {
	b := &PaymentBridge{
		registrar: registrar,
		provider:  provider,
		repo:      repo,
		log:       logger.OrNop(log).Named("payment.bridge"),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	b.log.Infow("payment bridge attached", "channel", b.channelName(), "provider", b.providerName())
	return b
}

func (b *PaymentBridge) ProcessPayment(ctx context.Context, req entities.PaymentRequest) <-chan entities.Outcome {
	b.log.Infow("process payment start", "reference", req.Reference(), "provider", b.providerName())
	return b.dispatch(ctx, entities.OperationProcessPayment, req.Reference(), func(ctx context.Context) (entities.ResponsePayload, error) {
		return b.provider.ProcessPayment(ctx, req)
	})
}

func (b *PaymentBridge) VerifyTransaction(ctx context.Context, reference string) <-chan entities.Outcome {
	b.log.Infow("verify transaction start", "reference", reference, "provider", b.providerName())
	return b.dispatch(ctx, entities.OperationVerifyTransaction, reference, func(ctx context.Context) (entities.ResponsePayload, error) {
		return b.provider.VerifyTransaction(ctx, reference)
	})
}

// Await blocks until the single outcome arrives or ctx ends. When ctx ends
// first the provider call keeps running to completion and its outcome is
// discarded.
func Await(ctx context.Context, outcomes <-chan entities.Outcome) entities.Outcome {
	select {
	case o, ok := <-outcomes:
		if !ok {
			return entities.Failed(entities.NewProviderError("no outcome received from payment bridge", entities.ErrorCodeProviderError))
		}
		return o
	case <-ctx.Done():
		return entities.Failed(entities.NewProviderError(fmt.Sprintf("request ended before the provider answered: %v", ctx.Err()), entities.ErrorCodeTimeout))
	}
}

func (b *PaymentBridge) dispatch(ctx context.Context, op entities.Operation, reference string, call providerCall) <-chan entities.Outcome {
	// Buffered so the worker never blocks on a caller that stopped listening.
	// The outcome is delivered before the audit write; close follows the write.
	out := make(chan entities.Outcome, 1)
	go func() {
		defer close(out)
		outcome := b.invoke(ctx, op, call)
		if outcome.OK() {
			if ref := outcome.Response.Reference(); ref != "" {
				reference = ref
			}
			b.log.Infow("provider call success", "operation", op, "reference", reference)
		} else {
			b.log.Warnw("provider call failed", "operation", op, "reference", reference, "message", outcome.Err.Message, "code", outcome.Err.Code())
		}
		out <- outcome
		b.record(ctx, op, reference, outcome)
	}()
	return out
}

func (b *PaymentBridge) invoke(ctx context.Context, op entities.Operation, call providerCall) (outcome entities.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorw("provider panicked", "operation", op, "panic", r)
			outcome = entities.Failed(entities.NewProviderError(fmt.Sprintf("payment provider failed: %v", r), entities.ErrorCodeProviderError))
		}
	}()

	if b.provider == nil {
		return entities.Failed(entities.NewProviderError("payment provider not configured", entities.ErrorCodeProviderUnavailable))
	}

	resp, err := call(ctx)
	if err != nil {
		return entities.Failed(translateProviderError(err))
	}
	return entities.Succeeded(resp)
}

func (b *PaymentBridge) record(ctx context.Context, op entities.Operation, reference string, outcome entities.Outcome) {
	if b.repo == nil {
		return
	}

	t := entities.Transaction{
		ID:        b.newID(),
		Reference: reference,
		Operation: op,
		Provider:  b.providerName(),
		CreatedAt: b.now(),
	}
	if outcome.OK() {
		t.Status = entities.TransactionStatusSuccess
		t.Response = outcome.Response
	} else {
		t.Status = entities.TransactionStatusError
		t.ErrorMessage = outcome.Err.Message
		t.ErrorDetails = outcome.Err.Details
	}

	// The caller's deadline may already be spent; the audit write gets its own.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if _, err := b.repo.Create(rctx, t); err != nil {
		b.log.Errorw("transaction record failed", "operation", op, "reference", reference, "error", err)
	}
}

func (b *PaymentBridge) providerName() string {
	if b.provider == nil {
		return ""
	}
	return b.provider.Name()
}

func (b *PaymentBridge) channelName() string {
	if b.registrar == nil {
		return ""
	}
	return b.registrar.ChannelName()
}

func translateProviderError(err error) *entities.ProviderError {
	var perr *entities.ProviderError
	if errors.As(err, &perr) && perr != nil {
		if perr.Details == nil {
			perr.Details = map[string]any{}
		}
		return perr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return entities.NewProviderError("payment provider timed out", entities.ErrorCodeTimeout)
	case errors.Is(err, context.Canceled):
		return entities.NewProviderError("payment request cancelled", entities.ErrorCodeTimeout)
	default:
		return entities.NewProviderError(err.Error(), entities.ErrorCodeProviderError)
	}
}
