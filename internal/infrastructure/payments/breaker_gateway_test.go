package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"paystack_bridge/internal/domain/entities"
	mock_interfaces "paystack_bridge/internal/usecase/interfaces/mocks"

	"github.com/sony/gobreaker"
	"go.uber.org/mock/gomock"
)

func TestBreakerGateway_TripsOnProviderFaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	next := mock_interfaces.NewMockIPaymentProvider(ctrl)
	next.EXPECT().Name().Return("paystack").AnyTimes()
	next.EXPECT().VerifyTransaction(gomock.Any(), "r").Return(nil, errors.New("connection refused")).Times(2)

	g := NewBreakerGateway(next, 2, time.Minute, nil)
	for i := 0; i < 2; i++ {
		if _, err := g.VerifyTransaction(context.Background(), "r"); err == nil || err.Error() != "connection refused" {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
	}
	if g.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", g.State())
	}

	_, err := g.VerifyTransaction(context.Background(), "r")
	var perr *entities.ProviderError
	if !errors.As(err, &perr) || perr.Code() != entities.ErrorCodeProviderUnavailable || perr.Details["provider"] != "paystack" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBreakerGateway_IgnoresProviderAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	next := mock_interfaces.NewMockIPaymentProvider(ctrl)
	next.EXPECT().Name().Return("paystack").AnyTimes()
	next.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
		Return(nil, entities.NewProviderError("Declined", entities.ErrorCodeDeclined)).Times(3)
	next.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
		Return(entities.ResponsePayload{"reference": "ok"}, nil)

	g := NewBreakerGateway(next, 1, time.Minute, nil)
	for i := 0; i < 3; i++ {
		if _, err := g.ProcessPayment(context.Background(), entities.PaymentRequest{}); err == nil {
			t.Fatalf("expected decline")
		}
	}
	if g.State() != gobreaker.StateClosed {
		t.Fatalf("declines must not open the breaker")
	}
	resp, err := g.ProcessPayment(context.Background(), entities.PaymentRequest{})
	if err != nil || resp.Reference() != "ok" {
		t.Fatalf("unexpected result: %+v %v", resp, err)
	}
}

func TestIsBreakerSuccess(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{err: nil, want: true},
		{err: context.Canceled, want: true},
		{err: context.DeadlineExceeded, want: false},
		{err: errors.New("eof"), want: false},
		{err: entities.NewProviderError("x", entities.ErrorCodeNotFound), want: true},
		{err: entities.NewProviderError("x", entities.ErrorCodeInvalidRequest), want: true},
		{err: entities.NewProviderError("x", entities.ErrorCodeProviderError), want: false},
		{err: entities.NewProviderError("x", entities.ErrorCodeTimeout), want: false},
	}
	for _, tc := range cases {
		if got := isBreakerSuccess(tc.err); got != tc.want {
			t.Fatalf("isBreakerSuccess(%v) = %v", tc.err, got)
		}
	}
}
