package kafka

import (
	"context"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

// orderCreator — минимальный контракт сервиса создания заказа, который нужен intake.
type orderCreator interface {
	Execute(req domain.OrderRequest) (domain.Order, error)
}

// OrderIntake принимает запросы на создание заказа из Kafka и ведёт их через
// сервис создания. Ошибка валидации — окончательный результат: сообщение
// считается обработанным, а в топик событий уходит order.rejected. Ошибки
// инфраструктуры возвращаются consumer'у и идут по retry/DLQ-пути.
type OrderIntake struct {
	creator  orderCreator
	producer *Producer
	topic    string
	logger   *log.Entry
}

// NewOrderIntake создаёт обработчик входящих запросов. producer опционален:
// без него отклонённые запросы только логируются.
func NewOrderIntake(creator orderCreator, producer *Producer, eventsTopic string, logger *log.Entry) *OrderIntake {
	if eventsTopic == "" {
		eventsTopic = TopicOrderEvents
	}
	if logger == nil {
		logger = log.WithField("component", "order-intake")
	}
	return &OrderIntake{
		creator:  creator,
		producer: producer,
		topic:    eventsTopic,
		logger:   logger,
	}
}

// Handle реализует MessageHandler для топика order requests.
func (i *OrderIntake) Handle(_ context.Context, message *sarama.ConsumerMessage) error {
	request, err := ParseOrderRequest(message)
	if err != nil {
		// Нечитаемое сообщение отдаем consumer'у: через retry-цикл оно уйдёт в DLQ.
		i.logger.WithError(err).WithFields(log.Fields{
			"topic":  message.Topic,
			"offset": message.Offset,
		}).Error("failed to decode order request")
		return err
	}

	order, err := i.creator.Execute(request.ToDomain())
	if err != nil {
		if domain.IsValidationError(err) {
			i.logger.WithError(err).WithField("customer_id", request.CustomerID).Warn("order request rejected")
			i.publishRejected(request.CustomerID, err.Error())
			return nil
		}
		return err
	}

	i.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
	}).Info("order request processed")
	return nil
}

func (i *OrderIntake) publishRejected(customerID, reason string) {
	if i.producer == nil {
		return
	}
	event := NewOrderRejectedEvent(customerID, reason)
	if err := i.producer.PublishEvent(i.topic, customerID, event); err != nil {
		i.logger.WithError(err).WithField("customer_id", customerID).Warn("failed to publish order rejected event")
	}
}
