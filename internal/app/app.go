package app

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"paymentrelay/config"
	"paymentrelay/internal/controller/rest"
	"paymentrelay/internal/controller/rest/handlers"
	"paymentrelay/internal/domain/callback"
	"paymentrelay/internal/domain/order"
	kafkaext "paymentrelay/internal/external/kafka"
	"paymentrelay/internal/external/rediscache"
	intent_repo "paymentrelay/internal/repo/intent"
	order_repo "paymentrelay/internal/repo/order"
	payment_repo "paymentrelay/internal/repo/payment"
	"paymentrelay/pkg/health"
	"paymentrelay/pkg/logger"
	"paymentrelay/pkg/metrics"
	"paymentrelay/pkg/postgres"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Run wires the service together and blocks until shutdown.
func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console"})

	if err := ApplyMigrations(cfg.PgURL, migrationFS); err != nil {
		return fmt.Errorf("app - Run - ApplyMigrations: %w", err)
	}

	pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("app - Run - postgres.New: %w", err)
	}
	defer pg.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	statusCache := rediscache.New(redisClient, cfg.RedisChannel, cfg.StatusTTL)

	publisher := kafkaext.NewPublisher(cfg.KafkaBrokers, cfg.KafkaStatusTopic)
	defer publisher.Close()

	paymentRepo := payment_repo.NewPgPaymentRepo(pg)
	orderRepo := order_repo.NewPgOrderRepo(pg)
	intentLog := intent_repo.NewPgIntentLog(pg)

	signer := callback.NewSigner(cfg.DuitkuMerchantCode, cfg.DuitkuAPIKey)
	pipeline := callback.NewPipeline(signer, paymentRepo, orderRepo, intentLog,
		statusCache, kafkaext.NewStatusSink(publisher))

	orderService := order.NewService(orderRepo)

	healthRegistry := health.NewRegistry(
		health.NewPostgresChecker(pg.Pool),
		health.NewRedisChecker(redisClient),
		health.NewKafkaChecker(cfg.KafkaBrokers),
	)

	router := rest.NewRouter(
		handlers.NewCallbackHandler(pipeline),
		handlers.NewOrderHandler(orderService),
		handlers.NewPaymentHandler(statusCache),
		healthRegistry,
	)

	engine := newGinEngine()
	router.SetUp(engine)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reconciler := callback.NewReconciler(intentLog, cfg.ReconcileInterval, cfg.ReconcileBatch)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return reconciler.Run(gCtx)
	})

	g.Go(func() error {
		slog.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("app - Run: %w", err)
	}
	return nil
}

func newGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = os.Stdout

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		logger.CorrelationMiddleware(),
		logger.RequestLogger(),
		metrics.GinMiddleware(),
	)
	return engine
}
