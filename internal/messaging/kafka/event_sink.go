package kafka

import (
	"github.com/vladislavdragonenkov/commerce/internal/domain"
	"github.com/vladislavdragonenkov/commerce/internal/metrics"
)

// EventSink публикует события заказов в топик order events.
// Реализует order.EventSink поверх Producer.
type EventSink struct {
	producer *Producer
	topic    string
	metrics  *metrics.OrderMetrics
}

// NewEventSink создаёт sink поверх готового producer. m опционален.
func NewEventSink(producer *Producer, topic string, m *metrics.OrderMetrics) *EventSink {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &EventSink{producer: producer, topic: topic, metrics: m}
}

// OrderCreated публикует событие order.created с ключом по ID заказа.
func (s *EventSink) OrderCreated(order domain.Order) error {
	if err := s.producer.PublishEvent(s.topic, order.ID, NewOrderCreatedEvent(order)); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
	return nil
}
