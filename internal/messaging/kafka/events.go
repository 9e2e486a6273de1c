package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderCreated  EventType = "order.created"
	EventTypeOrderRejected EventType = "order.rejected"
)

// Topics для Kafka
const (
	TopicOrderRequests   = "commerce.order.requests"
	TopicOrderEvents     = "commerce.order.events"
	TopicDeadLetterQueue = "commerce.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers для retry логики
const (
	HeaderRetryCount    = "x-retry-count"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// OrderRequestMessage — входящий запрос на создание заказа из топика requests.
type OrderRequestMessage struct {
	CustomerID string                    `json:"customer_id"`
	Items      []OrderRequestMessageItem `json:"items"`
}

// OrderRequestMessageItem — одна позиция входящего запроса.
type OrderRequestMessageItem struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"qty"`
}

// ToDomain конвертирует сообщение в доменный запрос.
func (m OrderRequestMessage) ToDomain() domain.OrderRequest {
	items := make([]domain.OrderRequestItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, domain.OrderRequestItem{ProductID: item.ProductID, Qty: item.Qty})
	}
	return domain.OrderRequest{CustomerID: m.CustomerID, Items: items}
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType   EventType        `json:"event_type"`
	OrderID     string           `json:"order_id,omitempty"`
	CustomerID  string           `json:"customer_id"`
	AmountMinor int64            `json:"amount_minor,omitempty"`
	Items       []OrderEventItem `json:"items,omitempty"`
	Reason      string           `json:"reason,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// NewOrderCreatedEvent создаёт событие об успешно созданном заказе.
func NewOrderCreatedEvent(order domain.Order) *OrderEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}
	return &OrderEvent{
		EventType:   EventTypeOrderCreated,
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Items:       items,
		Timestamp:   time.Now().UTC(),
	}
}

// NewOrderRejectedEvent создаёт событие об отклонённом запросе.
func NewOrderRejectedEvent(customerID, reason string) *OrderEvent {
	return &OrderEvent{
		EventType:  EventTypeOrderRejected,
		CustomerID: customerID,
		Reason:     reason,
		Timestamp:  time.Now().UTC(),
	}
}
