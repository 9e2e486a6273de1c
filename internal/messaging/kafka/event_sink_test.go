package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

func TestEventSinkOrderCreated(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	var captured []byte
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		captured = value
		return nil
	})

	producer := &Producer{producer: mockProducer, logger: log.WithField("test", "event-sink")}
	sink := NewEventSink(producer, "", nil)

	order := domain.Order{
		ID:          "order-1",
		CustomerID:  "customer-1",
		AmountMinor: 300,
		Items:       []domain.OrderLineItem{{ProductID: "product-1", PriceMinor: 100, Qty: 3}},
	}

	if err := sink.OrderCreated(order); err != nil {
		t.Fatalf("OrderCreated failed: %v", err)
	}

	var event OrderEvent
	if err := json.Unmarshal(captured, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.EventType != EventTypeOrderCreated {
		t.Fatalf("unexpected event type: %s", event.EventType)
	}
	if event.OrderID != "order-1" || event.AmountMinor != 300 {
		t.Fatalf("unexpected event: %+v", event)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEventSinkOrderCreated_PublishError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := &Producer{producer: mockProducer, logger: log.WithField("test", "event-sink-err")}
	sink := NewEventSink(producer, TopicOrderEvents, nil)

	if err := sink.OrderCreated(domain.Order{ID: "order-1"}); err == nil {
		t.Fatal("expected publish error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
