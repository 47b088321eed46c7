package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/payments"
	mock_interfaces "paystack_bridge/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type staticRegistrar string

func (r staticRegistrar) ChannelName() string { return string(r) }

// collect reads the single outcome and checks the channel is closed after it.
func collect(t *testing.T, ch <-chan entities.Outcome) entities.Outcome {
	t.Helper()
	select {
	case o, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without an outcome")
		}
		select {
		case extra, ok := <-ch:
			if ok {
				t.Fatalf("received a second outcome: %+v", extra)
			}
		case <-time.After(time.Second):
			t.Fatalf("channel not closed after the outcome")
		}
		return o
	case <-time.After(2 * time.Second):
		t.Fatalf("no outcome received")
	}
	return entities.Outcome{}
}

func newMockProvider(ctrl *gomock.Controller) *mock_interfaces.MockIPaymentProvider {
	provider := mock_interfaces.NewMockIPaymentProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	return provider
}

func TestPaymentBridge_Construct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registrar := mock_interfaces.NewMockIRegistrar(ctrl)
	registrar.EXPECT().ChannelName().Return("flutter_paystack").AnyTimes()
	provider := newMockProvider(ctrl)
	repo := mock_interfaces.NewMockITransactionRepository(ctrl)

	// No ProcessPayment/VerifyTransaction/Create expectations: construction must not call them.
	b := NewPaymentBridge(registrar, provider, repo, nil)
	if b == nil {
		t.Fatalf("expected a bridge")
	}
	if b.channelName() != "flutter_paystack" {
		t.Fatalf("unexpected channel name: %s", b.channelName())
	}

	if NewPaymentBridge(nil, nil, nil, nil) == nil {
		t.Fatalf("construction with nil collaborators must not fail")
	}
}

func TestPaymentBridge_ProcessPayment(t *testing.T) {
	t.Run("success is recorded and delivered once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		repo := mock_interfaces.NewMockITransactionRepository(ctrl)
		b := NewPaymentBridge(staticRegistrar("flutter_paystack"), provider, repo, nil)

		req := entities.PaymentRequest{"amount": 1000, "currency": "NGN", "card": map[string]any{"number": "4084084084084081"}}
		provider.EXPECT().ProcessPayment(gomock.Any(), req).Return(entities.ResponsePayload{"status": "success", "reference": "txn_123"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
			if tx.Reference != "txn_123" || tx.Status != entities.TransactionStatusSuccess || tx.Operation != entities.OperationProcessPayment {
				t.Errorf("unexpected transaction record: %+v", tx)
			}
			if tx.Provider != "mock" || tx.ID == "" {
				t.Errorf("expected provider and id on record: %+v", tx)
			}
			return tx, nil
		})

		o := collect(t, b.ProcessPayment(context.Background(), req))
		if !o.OK() {
			t.Fatalf("expected success, got %v", o.Err)
		}
		if o.Response["status"] != "success" || o.Response["reference"] != "txn_123" {
			t.Fatalf("unexpected response: %+v", o.Response)
		}
	})

	t.Run("provider error is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		b := NewPaymentBridge(staticRegistrar("c"), provider, nil, nil)

		provider.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).Return(nil, entities.NewProviderError("Invalid amount", entities.ErrorCodeInvalidRequest))

		o := collect(t, b.ProcessPayment(context.Background(), entities.PaymentRequest{"amount": -1}))
		if o.OK() {
			t.Fatalf("expected error outcome")
		}
		if o.Err.Message != "Invalid amount" || o.Err.Code() != entities.ErrorCodeInvalidRequest {
			t.Fatalf("unexpected error: %+v", o.Err)
		}
		if o.Response != nil {
			t.Fatalf("error outcome must not carry a response")
		}
	})

	t.Run("error translation", func(t *testing.T) {
		cases := []struct {
			name, wantCode, wantMsg string
			err                     error
		}{
			{name: "generic", err: errors.New("connection reset"), wantCode: entities.ErrorCodeProviderError, wantMsg: "connection reset"},
			{name: "deadline", err: context.DeadlineExceeded, wantCode: entities.ErrorCodeTimeout, wantMsg: "payment provider timed out"},
			{name: "cancelled", err: context.Canceled, wantCode: entities.ErrorCodeTimeout, wantMsg: "payment request cancelled"},
			{name: "wrapped provider error", err: errors.Join(errors.New("ctx"), &entities.ProviderError{Message: "Declined"}), wantCode: "", wantMsg: "Declined"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				provider := newMockProvider(ctrl)
				b := NewPaymentBridge(staticRegistrar("c"), provider, nil, nil)
				provider.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).Return(nil, tc.err)

				o := collect(t, b.ProcessPayment(context.Background(), entities.PaymentRequest{}))
				if o.OK() || o.Err.Code() != tc.wantCode || o.Err.Message != tc.wantMsg {
					t.Fatalf("unexpected outcome: %+v", o.Err)
				}
				if o.Err.Details == nil {
					t.Fatalf("details must never be nil")
				}
			})
		}
	})

	t.Run("provider panic becomes an error outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		b := NewPaymentBridge(staticRegistrar("c"), provider, nil, nil)
		provider.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, entities.PaymentRequest) (entities.ResponsePayload, error) {
			panic("sdk exploded")
		})

		o := collect(t, b.ProcessPayment(context.Background(), entities.PaymentRequest{}))
		if o.OK() || o.Err.Code() != entities.ErrorCodeProviderError {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	})

	t.Run("missing provider", func(t *testing.T) {
		b := NewPaymentBridge(staticRegistrar("c"), nil, nil, nil)
		o := collect(t, b.ProcessPayment(context.Background(), entities.PaymentRequest{"amount": 1}))
		if o.OK() || o.Err.Code() != entities.ErrorCodeProviderUnavailable {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	})

	t.Run("record failure does not change the outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		repo := mock_interfaces.NewMockITransactionRepository(ctrl)
		b := NewPaymentBridge(staticRegistrar("c"), provider, repo, nil)

		provider.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).Return(entities.ResponsePayload{"status": "success"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Transaction{}, errors.New("dynamo down"))

		o := collect(t, b.ProcessPayment(context.Background(), entities.PaymentRequest{"reference": "ref-1"}))
		if !o.OK() {
			t.Fatalf("expected success, got %v", o.Err)
		}
	})

	t.Run("slow audit write does not delay the outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		repo := mock_interfaces.NewMockITransactionRepository(ctrl)
		b := NewPaymentBridge(staticRegistrar("c"), provider, repo, nil)

		release := make(chan struct{})
		provider.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).Return(entities.ResponsePayload{"reference": "r"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
			<-release
			return tx, nil
		})

		ch := b.ProcessPayment(context.Background(), entities.PaymentRequest{"amount": 1})
		select {
		case o := <-ch:
			if !o.OK() {
				t.Fatalf("expected success, got %v", o.Err)
			}
		case <-time.After(time.Second):
			t.Fatalf("outcome held back by the audit write")
		}
		close(release)

		select {
		case _, ok := <-ch:
			if ok {
				t.Fatalf("received a second outcome")
			}
		case <-time.After(time.Second):
			t.Fatalf("channel not closed after the audit write")
		}
	})
}

func TestPaymentBridge_VerifyTransaction(t *testing.T) {
	t.Run("error outcome is recorded with details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		repo := mock_interfaces.NewMockITransactionRepository(ctrl)
		b := NewPaymentBridge(staticRegistrar("c"), provider, repo, nil)

		provider.EXPECT().VerifyTransaction(gomock.Any(), "nonexistent").Return(nil, entities.NewProviderError("Transaction not found", entities.ErrorCodeNotFound))
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
			if tx.Reference != "nonexistent" || tx.Status != entities.TransactionStatusError || tx.Operation != entities.OperationVerifyTransaction {
				t.Errorf("unexpected transaction record: %+v", tx)
			}
			if tx.ErrorMessage != "Transaction not found" || tx.ErrorDetails["code"] != entities.ErrorCodeNotFound {
				t.Errorf("unexpected error fields: %+v", tx)
			}
			return tx, nil
		})

		o := collect(t, b.VerifyTransaction(context.Background(), "nonexistent"))
		if o.OK() || o.Err.Code() != entities.ErrorCodeNotFound {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	})

	t.Run("empty reference is forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		provider := newMockProvider(ctrl)
		b := NewPaymentBridge(staticRegistrar("c"), provider, nil, nil)
		provider.EXPECT().VerifyTransaction(gomock.Any(), "").Return(nil, entities.NewProviderError("Transaction not found", entities.ErrorCodeNotFound))

		o := collect(t, b.VerifyTransaction(context.Background(), ""))
		if o.OK() {
			t.Fatalf("expected error outcome")
		}
	})
}

func TestPaymentBridge_SimulatedScenarios(t *testing.T) {
	b := NewPaymentBridge(staticRegistrar("flutter_paystack"), payments.NewSimulatedGateway(0, nil), nil, nil)
	ctx := context.Background()

	o := collect(t, b.ProcessPayment(ctx, entities.PaymentRequest{
		"amount":    1000,
		"currency":  "NGN",
		"reference": "txn_123",
		"card":      map[string]any{"number": "4084084084084081", "cvv": "408", "expiry_month": "12", "expiry_year": "30"},
	}))
	if !o.OK() || o.Response["status"] != "success" || o.Response["reference"] != "txn_123" {
		t.Fatalf("unexpected process outcome: %+v %v", o.Response, o.Err)
	}

	o = collect(t, b.ProcessPayment(ctx, entities.PaymentRequest{"amount": -1}))
	if o.OK() || o.Err.Message != "Invalid amount" || o.Err.Code() != entities.ErrorCodeInvalidRequest {
		t.Fatalf("unexpected invalid amount outcome: %+v", o)
	}

	o = collect(t, b.VerifyTransaction(ctx, "txn_123"))
	if !o.OK() || o.Response["status"] != "success" || o.Response["reference"] != "txn_123" {
		t.Fatalf("unexpected verify outcome: %+v %v", o.Response, o.Err)
	}

	o = collect(t, b.VerifyTransaction(ctx, "nonexistent"))
	if o.OK() || o.Err.Message != "Transaction not found" || o.Err.Code() != entities.ErrorCodeNotFound {
		t.Fatalf("unexpected not found outcome: %+v", o)
	}
}

func TestPaymentBridge_ConcurrentCallsAreIndependent(t *testing.T) {
	b := NewPaymentBridge(staticRegistrar("c"), payments.NewSimulatedGateway(time.Millisecond, nil), nil, nil)

	const n = 50
	var wg sync.WaitGroup
	results := make([]entities.Outcome, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			amount := 100
			if i%2 == 1 {
				amount = 0
			}
			results[i] = Await(context.Background(), b.ProcessPayment(context.Background(), entities.PaymentRequest{"amount": amount}))
		}(i)
	}
	wg.Wait()

	for i, o := range results {
		if wantOK := i%2 == 0; o.OK() != wantOK {
			t.Fatalf("call %d: expected ok=%v, got %+v", i, wantOK, o)
		}
	}
}

func TestAwait(t *testing.T) {
	t.Run("context ends first", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		o := Await(ctx, make(chan entities.Outcome))
		if o.OK() || o.Err.Code() != entities.ErrorCodeTimeout {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	})

	t.Run("closed channel", func(t *testing.T) {
		ch := make(chan entities.Outcome)
		close(ch)
		o := Await(context.Background(), ch)
		if o.OK() || o.Err.Code() != entities.ErrorCodeProviderError {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	})

	t.Run("outcome", func(t *testing.T) {
		ch := make(chan entities.Outcome, 1)
		ch <- entities.Succeeded(nil)
		o := Await(context.Background(), ch)
		if !o.OK() || o.Response == nil {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	})
}
