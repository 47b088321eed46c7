package handlers

import (
	"errors"
	"net/http"
	response "paystack_bridge/internal/adapter/http/dto/response"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase"
	"paystack_bridge/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionHandler serves the audit trail of bridge outcomes.
type TransactionHandler struct {
	usecase usecase.ITransactionUseCase
	log     *zap.SugaredLogger
}

func NewTransactionHandler(uc usecase.ITransactionUseCase, log *zap.SugaredLogger) *TransactionHandler {
	return &TransactionHandler{usecase: uc, log: logger.OrNop(log).Named("http.transactions")}
}

// GetByReference godoc
// @Summary      List recorded outcomes for a reference
// @Tags         transactions
// @Produce      json
// @Param        reference  path  string  true  "Transaction reference"
// @Success      200  {object}  response.TransactionListResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /transactions/{reference} [get]
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	reference := c.Param("reference")

	items, err := h.usecase.ListByReference(c.Request.Context(), reference)
	if err != nil {
		h.log.Warnw("list failed", "reference", reference, "error", err)
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.log.Infow("list success", "reference", reference, "count", len(items))

	c.JSON(http.StatusOK, response.FromTransactions(reference, items))
}

func mapTransactionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTransactionReference):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTransactionAuditDisabled):
		return pkg.NewDomainErrorSimple("TRANSACTION_AUDIT_DISABLED", "Transaction audit is disabled", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
