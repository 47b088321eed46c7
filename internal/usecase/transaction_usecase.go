package usecase

import (
	"context"
	"errors"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/usecase/interfaces"
	"sort"
	"strings"
)

var (
	ErrInvalidTransactionReference = errors.New("invalid transaction reference")
	ErrTransactionNotFound         = errors.New("transaction not found")
	ErrTransactionAuditDisabled    = errors.New("transaction audit disabled")
)

// ITransactionUseCase reads the audit trail written by the payment bridge.
type ITransactionUseCase interface {
	ListByReference(ctx context.Context, reference string) ([]entities.Transaction, error)
}

type TransactionUseCase struct {
	repo interfaces.ITransactionRepository
}

var _ ITransactionUseCase = (*TransactionUseCase)(nil)

func NewTransactionUseCase(repo interfaces.ITransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// ListByReference returns the recorded outcomes for a reference, oldest first.
func (u *TransactionUseCase) ListByReference(ctx context.Context, reference string) ([]entities.Transaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrInvalidTransactionReference
	}
	if u.repo == nil {
		return nil, ErrTransactionAuditDisabled
	}

	items, err := u.repo.ListByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrTransactionNotFound
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}
