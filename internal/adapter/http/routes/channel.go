package routes

import (
	"net/http"
	"paystack_bridge/internal/adapter/http/handlers"
	"paystack_bridge/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const (
	PathChannel      = "/channel"
	PathTransactions = "/transactions"
)

// channelRegistrar is the host handle given to the payment bridge.
type channelRegistrar struct {
	name string
}

var _ interfaces.IRegistrar = channelRegistrar{}

func (r channelRegistrar) ChannelName() string { return r.name }

func addChannelRoutes(rg *gin.RouterGroup, channelHandler *handlers.MethodChannelHandler, transactionHandler *handlers.TransactionHandler) {
	rg.POST(PathChannel+"/:method", channelHandler.HandleMethodCall)
	rg.GET(PathTransactions+"/:reference", transactionHandler.GetByReference)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
