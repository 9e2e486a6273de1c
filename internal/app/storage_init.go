package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/storage/postgres"
)

// initStorage выбирает реализацию хранилища по конфигурации.
// Для postgres возвращает также Store, чтобы приложение могло закрыть
// подключение и зарегистрировать health check.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, *postgres.Store, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("using in-memory storage")
		return NewDependencies(logger), nil, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("postgres storage requires COMMERCE_POSTGRES_DSN")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres storage: %w", err)
		}

		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, nil, fmt.Errorf("apply migrations: %w", err)
			}
		}

		logger.Info("using postgres storage")
		return &Dependencies{
			Customers: postgres.NewCustomerRepository(store),
			Products:  postgres.NewProductRepository(store),
			Orders:    postgres.NewOrderRepository(store),
			Logger:    logger,
		}, store, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

// closeStore закрывает postgres store, если он был открыт.
func closeStore(store *postgres.Store, logger *log.Entry) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}
