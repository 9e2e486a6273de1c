package app

import (
	"github.com/vladislavdragonenkov/commerce/internal/messaging/kafka"
)

// StorageDriver определяет реализацию хранилища.
type StorageDriver string

const (
	// StorageDriverMemory — in-memory хранилище для локальной разработки.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverPostgres — PostgreSQL через pgx.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool

	KafkaBrokers       string
	OrderRequestsTopic string
	OrderEventsTopic   string
	ConsumerGroup      string
	ConsumerMaxRetries int
}

// DefaultConfig возвращает базовую конфигурацию: in-memory хранилище,
// без Kafka, метрики на :9090.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		OrderRequestsTopic:  kafka.TopicOrderRequests,
		OrderEventsTopic:    kafka.TopicOrderEvents,
		ConsumerGroup:       "commerce-order-service",
		ConsumerMaxRetries:  3,
	}
}
