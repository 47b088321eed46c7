package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	_ "paystack_bridge/docs" // generated by swag init
	"paystack_bridge/internal/adapter/http/handlers"
	"paystack_bridge/internal/adapter/persistence/repository"
	"paystack_bridge/internal/config"
	"paystack_bridge/internal/infrastructure/cache"
	"paystack_bridge/internal/infrastructure/database"
	"paystack_bridge/internal/infrastructure/logger"
	"paystack_bridge/internal/infrastructure/payments"
	"paystack_bridge/internal/usecase"
	"paystack_bridge/internal/usecase/interfaces"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run loads the configuration, wires the service and serves until SIGINT or
// SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	router, err := NewRouter(context.Background(), cfg, log)
	if err != nil {
		log.Errorw("failed to wire the application", "error", err)
		return err
	}

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 5*time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		log.Infow("signal caught", "signal", s.String())
		shutdown <- srv.Shutdown(ctx)
	}()

	log.Infow("server has started", "addr", srv.Addr, "provider", cfg.PaymentProvider, "mock", cfg.PaymentMock)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	if err := <-shutdown; err != nil {
		return err
	}
	log.Infow("server has stopped", "addr", srv.Addr)
	return nil
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*gin.Engine, error) {
	log = logger.OrNop(log)

	channelUseCase, transactionUseCase, err := buildUseCases(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addChannelRoutes(v1,
		handlers.NewMethodChannelHandler(channelUseCase, log),
		handlers.NewTransactionHandler(transactionUseCase, log),
	)
	return router, nil
}

func buildUseCases(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*usecase.MethodChannelUseCase, *usecase.TransactionUseCase, error) {
	provider, err := payments.NewProvider(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	var repo interfaces.ITransactionRepository
	if cfg.TransactionAudit {
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			log.Warnw("transaction audit disabled", "error", err)
		} else {
			repo = repository.NewTransactionDynamoRepository(ddb, cfg.TransactionsTable)
		}
	}

	var store interfaces.IIdempotencyStore
	if cfg.RedisAddr != "" {
		redisStore := cache.NewRedisIdempotencyStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cache.InProgressTTL(cfg.ProviderTimeout))
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			log.Warnw("redis unreachable, duplicate references are checked best-effort", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		store = redisStore
	}

	bridge := usecase.NewPaymentBridge(channelRegistrar{name: cfg.ChannelName}, provider, repo, log)
	return usecase.NewMethodChannelUseCase(bridge, store, log), usecase.NewTransactionUseCase(repo), nil
}

func setMiddlewares(router *gin.Engine, log *zap.SugaredLogger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorw("recovered from panic", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
