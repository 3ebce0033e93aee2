package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	application "figurine/internal/app"
	eventsGateway "figurine/internal/gateway/events"
	"figurine/internal/handlers/rest/checkout_post"
	"figurine/internal/handlers/rest/generate_post"
	"figurine/internal/handlers/rest/healthcheck_head"
	"figurine/internal/handlers/rest/payment_webhook_post"
	"figurine/internal/handlers/rest/ping_get"
	"figurine/internal/pkg/config"
	"figurine/internal/pkg/dotenv"
	"figurine/internal/pkg/kafka"
	metrics_system "figurine/internal/pkg/metrics"
	"figurine/internal/pkg/middlewares/graceful_shutdown"
	"figurine/internal/pkg/middlewares/metrics"
	"figurine/internal/pkg/middlewares/rate_limiter"
	"figurine/internal/pkg/middlewares/timeout"
	"figurine/internal/pkg/postgres"
	"figurine/internal/repository/orderfile"
	"figurine/internal/repository/orderpg"
	paymentService "figurine/internal/service/payment"
	"figurine/pkg/logger"
	"figurine/pkg/logger/zap_adapter"
	"figurine/pkg/querier"
	"figurine/pkg/token_bucket"
	"figurine/pkg/tx"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting figurine-shop application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	store, closeStore, err := newOrderStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("order store: %w", err)
	}
	defer closeStore()

	publisher, closePublisher, err := newPaidEventPublisher(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("event publisher: %w", err)
	}
	defer closePublisher()

	businessApp, err := application.InitializeApplication(ctx, log, store, publisher, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector()

	// ongoingCtx backs BaseContext and must survive SIGTERM: it is cancelled
	// only after server.Shutdown() so in-flight requests can finish.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil channel when pprof is disabled, case never fires
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx must be independent from ctx, which is already cancelled
	// at this point.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

// newOrderStore picks the storage driver per config. The file driver needs
// no teardown; the postgres driver owns a connection pool.
func newOrderStore(ctx context.Context, cfg *config.Config, log logger.Logger) (application.OrderStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}

		store := orderpg.New(querier.New(pool, pgxv5.DefaultCtxGetter), tx.New(pool))
		return store, pool.Close, nil
	default:
		store, err := orderfile.New(cfg.Store.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("file store: %w", err)
		}
		return store, func() {}, nil
	}
}

// newPaidEventPublisher returns a nil publisher when Kafka is disabled;
// the payment service treats nil as "publishing off".
func newPaidEventPublisher(ctx context.Context, cfg *config.Config, log logger.Logger) (paymentService.EventPublisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}

	producer, err := kafka.NewProducer(ctx, log, strings.Split(cfg.Kafka.Brokers, ","), cfg.Kafka.SaramaVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	closeProducer := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close Kafka producer", logger.NewField("error", err))
		}
	}

	return eventsGateway.New(producer, cfg.Kafka.Topic), closeProducer, nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/generate", generate_post.New(log, app.ServiceGeneration)).Methods("POST")
	router.Handle("/checkout", checkout_post.New(log, app.ServiceCheckout)).Methods("POST")
	router.Handle("/payment/webhook", payment_webhook_post.New(log, app.Authenticator, app.ServicePayment)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
