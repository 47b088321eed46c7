package handlers

import (
	"net/http"
	request "paystack_bridge/internal/adapter/http/dto/request"
	response "paystack_bridge/internal/adapter/http/dto/response"
	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/usecase"
	"paystack_bridge/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MethodChannelHandler exposes the plugin channel over HTTP: the path names
// the method, the body carries its arguments.
type MethodChannelHandler struct {
	usecase usecase.IMethodChannelUseCase
	log     *zap.SugaredLogger
}

func NewMethodChannelHandler(uc usecase.IMethodChannelUseCase, log *zap.SugaredLogger) *MethodChannelHandler {
	return &MethodChannelHandler{usecase: uc, log: logger.OrNop(log).Named("http.channel")}
}

// HandleMethodCall godoc
// @Summary      Invoke a channel method
// @Description  Dispatches initialize, startPayment or verifyTransaction with the body as arguments.
// @Tags         channel
// @Accept       json
// @Produce      json
// @Param        method  path  string  true  "Method name"
// @Param        arguments  body  object  false  "Method arguments"
// @Success      200  {object}  response.MethodResultResponse
// @Failure      400  {object}  response.MethodResultResponse
// @Failure      404  {object}  response.MethodResultResponse
// @Failure      409  {object}  response.MethodResultResponse
// @Failure      422  {object}  response.MethodResultResponse
// @Failure      500  {object}  response.MethodResultResponse
// @Router       /channel/{method} [post]
func (h *MethodChannelHandler) HandleMethodCall(c *gin.Context) {
	method := c.Param("method")

	raw, err := c.GetRawData()
	if err != nil {
		h.log.Warnw("read body failed", "method", method, "error", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	args, err := request.ParseArguments(raw)
	if err != nil {
		h.log.Warnw("invalid arguments", "method", method, "error", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result := h.usecase.HandleMethodCall(c.Request.Context(), entities.MethodCall{Method: method, Arguments: args})
	status := statusForMethodResult(result)
	h.log.Infow("method call done", "method", method, "result", result.Kind, "code", result.Code, "http_status", status)

	c.JSON(status, response.FromMethodResult(result))
}

func statusForMethodResult(r entities.MethodResult) int {
	switch r.Kind {
	case entities.MethodResultSuccess:
		return http.StatusOK
	case entities.MethodResultNotImplemented:
		return http.StatusNotFound
	}

	switch r.Code {
	case usecase.CodeInvalidPublicKey, usecase.CodeInvalidEmail, usecase.CodeInvalidAmount, usecase.CodeInvalidReference:
		return http.StatusBadRequest
	case usecase.CodeNotInitialized, usecase.CodeDuplicateReference:
		return http.StatusConflict
	case usecase.CodePaymentProcessingError, usecase.CodeVerificationError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
