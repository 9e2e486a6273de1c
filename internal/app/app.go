package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/commerce/internal/health"
	"github.com/vladislavdragonenkov/commerce/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/commerce/internal/metrics"
	ordersvc "github.com/vladislavdragonenkov/commerce/internal/service/order"
	"github.com/vladislavdragonenkov/commerce/internal/version"
)

// Run собирает зависимости и держит сервис до отмены контекста:
// хранилище, сервис создания заказов, Kafka-приём запросов (опционально)
// и HTTP-сервер метрик с health checks.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	orderMetrics := metrics.NewOrderMetrics()

	// Kafka опционален: без brokers сервис остаётся строго in-process.
	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)

	var sink ordersvc.EventSink
	if producer != nil {
		sink = kafka.NewEventSink(producer, cfg.OrderEventsTopic, orderMetrics)
	}

	creator := ordersvc.NewCreator(
		deps.Customers,
		deps.Products,
		deps.Orders,
		sink,
		orderMetrics,
		logger.WithField("layer", "service"),
	)

	var consumer *kafka.Consumer
	if producer != nil {
		intake := kafka.NewOrderIntake(creator, producer, cfg.OrderEventsTopic, logger.WithField("component", "order-intake"))
		consumer, err = kafka.NewConsumerWithDLQ(
			strings.Split(cfg.KafkaBrokers, ","),
			cfg.ConsumerGroup,
			[]string{cfg.OrderRequestsTopic},
			intake.Handle,
			producer,
			cfg.ConsumerMaxRetries,
		)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka consumer, continuing without intake")
			consumer = nil
		} else if err := consumer.Start(ctx); err != nil {
			logger.WithError(err).Warn("failed to start kafka consumer")
			consumer = nil
		}
	}

	// HTTP health checks
	appVersion, _, _ := version.Info()
	healthHandler := healthcheck.NewHandler(appVersion)
	if store != nil {
		healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем сервис")

	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			logger.WithError(err).Warn("failed to stop kafka consumer")
		}
	}
	closeKafka(producer, logger)
	shutdownHTTP(metricsSrv, logger)

	return ctx.Err()
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
