package order

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
	"github.com/vladislavdragonenkov/commerce/internal/metrics"
)

// EventSink получает уведомление об успешно созданном заказе. Публикация
// best-effort: ошибка логируется и не влияет на результат операции.
type EventSink interface {
	OrderCreated(order domain.Order) error
}

// Creator выполняет операцию создания заказа: валидация клиента и товаров,
// расчёт позиций, сохранение заказа и пакетное списание остатков.
// Никакого внутреннего параллелизма и состояния между вызовами нет.
type Creator struct {
	customers domain.CustomerLookup
	catalog   domain.ProductCatalog
	orders    domain.OrderStore
	events    EventSink
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// NewCreator конструирует сервис с обязательными коллабораторами.
// events и m опциональны: nil отключает публикацию событий и метрики.
func NewCreator(
	customers domain.CustomerLookup,
	catalog domain.ProductCatalog,
	orders domain.OrderStore,
	events EventSink,
	m *metrics.OrderMetrics,
	logger *log.Entry,
) *Creator {
	if logger == nil {
		logger = log.New().WithField("component", "order-creator")
	}
	return &Creator{
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		events:    events,
		metrics:   m,
		logger:    logger,
	}
}

// Execute создаёт заказ по запросу. Последовательность фиксированная:
// клиент, батчевый резолв товаров, проверка остатков и расчёт позиций в
// памяти, сохранение заказа, запись остатков. Любая ошибка валидации
// прерывает операцию до первого мутирующего вызова; ошибки коллабораторов
// пробрасываются без обёртки. Операция сознательно не идемпотентна:
// каждый вызов — новый заказ.
func (c *Creator) Execute(req domain.OrderRequest) (domain.Order, error) {
	started := time.Now()
	if c.metrics != nil {
		c.metrics.RecordCreateStarted()
		defer func() {
			c.metrics.RecordCreateFinished()
			c.metrics.RecordCreateDuration(time.Since(started))
		}()
	}

	if err := req.Validate(); err != nil {
		return domain.Order{}, c.reject(req, err)
	}

	customer, err := c.customers.FindByID(req.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, c.reject(req, domain.ErrInvalidCustomer)
		}
		return domain.Order{}, err
	}

	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	// Рабочие копии товаров: остатки уменьшаются локально и уходят обратно
	// в каталог одним батчем только после успешного сохранения заказа.
	products, err := c.catalog.FindAllByID(ids)
	if err != nil {
		return domain.Order{}, err
	}

	index := make(map[string]int, len(products))
	for i := range products {
		index[products[i].ID] = i
	}

	items := make([]domain.OrderLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		i, ok := index[item.ProductID]
		if !ok {
			return domain.Order{}, c.reject(req, domain.ErrInvalidProduct)
		}
		product := &products[i]
		if item.Qty > product.Quantity {
			return domain.Order{}, c.reject(req, domain.ErrInsufficientStock)
		}
		product.Quantity -= item.Qty
		items = append(items, domain.OrderLineItem{
			ProductID:  item.ProductID,
			PriceMinor: product.PriceMinor,
			Qty:        item.Qty,
		})
	}

	order, err := c.orders.Create(customer, items)
	if err != nil {
		c.logger.WithError(err).WithField("customer_id", req.CustomerID).Error("failed to persist order")
		return domain.Order{}, err
	}

	// Батч включает и товары, чьи остатки не менялись: семантика
	// UpdateQuantity — записать значения всех рабочих копий.
	if err := c.catalog.UpdateQuantity(products); err != nil {
		c.logger.WithError(err).WithField("order_id", order.ID).Error("failed to persist stock levels")
		return domain.Order{}, err
	}

	if c.metrics != nil {
		c.metrics.RecordCreated()
	}
	c.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"items":        len(order.Items),
		"amount_minor": order.AmountMinor,
	}).Info("order created")

	c.publishCreated(order)

	return order, nil
}

// reject логирует отклонение запроса и отдаёт ошибку вызывающему как есть.
func (c *Creator) reject(req domain.OrderRequest, err error) error {
	if c.metrics != nil {
		c.metrics.RecordRejected(rejectionReason(err))
	}
	c.logger.WithError(err).WithFields(log.Fields{
		"customer_id": req.CustomerID,
		"items":       len(req.Items),
	}).Warn("order request rejected")
	return err
}

func (c *Creator) publishCreated(order domain.Order) {
	if c.events == nil {
		return
	}
	if err := c.events.OrderCreated(order); err != nil {
		c.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order created event")
	}
}

// rejectionReason сводит ошибку валидации к метке метрики.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCustomer):
		return "invalid_customer"
	case errors.Is(err, domain.ErrInvalidProduct):
		return "invalid_product"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrDuplicateProduct):
		return "duplicate_product"
	default:
		return "bad_request"
	}
}
