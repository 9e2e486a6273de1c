package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/app"
	"github.com/vladislavdragonenkov/commerce/internal/version"
)

const (
	envMetricsAddr         = "COMMERCE_METRICS_ADDR"
	envStorageDriver       = "COMMERCE_STORAGE_DRIVER"
	envPostgresDSN         = "COMMERCE_POSTGRES_DSN"
	envPostgresAutoMigrate = "COMMERCE_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "KAFKA_BROKERS"
	envOrderRequestsTopic  = "COMMERCE_ORDER_REQUESTS_TOPIC"
	envOrderEventsTopic    = "COMMERCE_ORDER_EVENTS_TOPIC"
	envConsumerGroup       = "COMMERCE_CONSUMER_GROUP"
	envConsumerMaxRetries  = "COMMERCE_CONSUMER_MAX_RETRIES"
)

type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения из переменных окружения.
// Некорректные значения не останавливают запуск: остаётся значение по
// умолчанию, а причина возвращается в списке предупреждений.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookupTrimmed(lookup, envMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookupTrimmed(lookup, envStorageDriver); ok {
		driver := app.StorageDriver(strings.ToLower(v))
		if driver != app.StorageDriverMemory && driver != app.StorageDriverPostgres {
			warnings = append(warnings, fmt.Sprintf("%s: unsupported driver %q, keep %q", envStorageDriver, v, cfg.StorageDriver))
		} else {
			cfg.StorageDriver = driver
		}
	}
	if v, ok := lookupTrimmed(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
		if cfg.StorageDriver == app.StorageDriverMemory {
			cfg.StorageDriver = app.StorageDriverPostgres
		}
	}
	if v, ok := lookupTrimmed(lookup, envPostgresAutoMigrate); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envPostgresAutoMigrate, err))
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	if v, ok := lookupTrimmed(lookup, envKafkaBrokers); ok {
		cfg.KafkaBrokers = v
	}
	if v, ok := lookupTrimmed(lookup, envOrderRequestsTopic); ok {
		cfg.OrderRequestsTopic = v
	}
	if v, ok := lookupTrimmed(lookup, envOrderEventsTopic); ok {
		cfg.OrderEventsTopic = v
	}
	if v, ok := lookupTrimmed(lookup, envConsumerGroup); ok {
		cfg.ConsumerGroup = v
	}
	if v, ok := lookupTrimmed(lookup, envConsumerMaxRetries); ok {
		parsed, err := parseInt(v, func(n int) bool { return n >= 0 }, "must be >= 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envConsumerMaxRetries, err))
		} else {
			cfg.ConsumerMaxRetries = parsed
		}
	}

	return cfg, warnings
}

func lookupTrimmed(lookup envLookup, key string) (string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	return value, true
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseInt(raw string, valid func(int) bool, constraint string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q", raw)
	}
	if !valid(value) {
		return 0, fmt.Errorf("value %d: %s", value, constraint)
	}
	return value, nil
}

func main() {
	setupLogger()

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"build":          version.String(),
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_brokers":  cfg.KafkaBrokers,
	}).Info("запускаем сервис заказов")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис заказов остановлен")
}
