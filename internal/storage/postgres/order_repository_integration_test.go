package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

func seedIntegrationCustomer(t *testing.T, store *Store) domain.Customer {
	t.Helper()

	repo := NewCustomerRepository(store)
	now := time.Now().UTC()
	customer := domain.Customer{
		ID: "customer-int-1", Name: "Alice", Email: "alice-int@example.com",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(customer))
	return customer
}

func TestOrderRepository_PostgresCreateAndGet(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	customer := seedIntegrationCustomer(t, store)

	items := []domain.OrderLineItem{
		{ProductID: "product-int-1", PriceMinor: 100, Qty: 3},
		{ProductID: "product-int-2", PriceMinor: 250, Qty: 2},
	}

	order, err := repo.Create(customer, items)
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.EqualValues(t, 800, order.AmountMinor)

	stored, err := repo.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, customer.ID, stored.CustomerID)
	require.Len(t, stored.Items, 2)

	// Позиции читаются в порядке запроса.
	require.Equal(t, "product-int-1", stored.Items[0].ProductID)
	require.Equal(t, "product-int-2", stored.Items[1].ProductID)

	_, err = repo.Get("missing")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepository_PostgresListByCustomer(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	customer := seedIntegrationCustomer(t, store)

	items := []domain.OrderLineItem{{ProductID: "product-int-1", PriceMinor: 100, Qty: 1}}
	for i := 0; i < 3; i++ {
		_, err := repo.Create(customer, items)
		require.NoError(t, err)
	}

	orders, err := repo.ListByCustomer(customer.ID, 0)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, order := range orders {
		require.Equal(t, customer.ID, order.CustomerID)
		require.Len(t, order.Items, 1)
	}

	limited, err := repo.ListByCustomer(customer.ID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	empty, err := repo.ListByCustomer("ghost", 10)
	require.NoError(t, err)
	require.Empty(t, empty)
}
