package order

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

const defaultListLimit = 100

// Finder отдаёт сохранённые заказы на чтение.
type Finder struct {
	orders domain.OrderRepository
	logger *log.Entry
}

// NewFinder конструирует сервис чтения заказов.
func NewFinder(orders domain.OrderRepository, logger *log.Entry) *Finder {
	if logger == nil {
		logger = log.New().WithField("component", "order-finder")
	}
	return &Finder{orders: orders, logger: logger}
}

// Find возвращает заказ по идентификатору или ErrOrderNotFound.
func (f *Finder) Find(id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return f.orders.Get(id)
}

// ListByCustomer возвращает заказы клиента, от новых к старым.
// limit <= 0 заменяется на значение по умолчанию.
func (f *Finder) ListByCustomer(customerID string, limit int) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return f.orders.ListByCustomer(customerID, limit)
}
