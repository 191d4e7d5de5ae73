package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/taskhive/identity-service/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RegistrationPublisher публикует события регистрации в обменник identity.
type RegistrationPublisher struct {
	ch *amqp.Channel
}

// NewRegistrationPublisher создает издателя событий регистрации.
func NewRegistrationPublisher(ch *amqp.Channel) *RegistrationPublisher {
	return &RegistrationPublisher{ch: ch}
}

// PublishRegistration отправляет событие успешной регистрации.
func (p *RegistrationPublisher) PublishRegistration(_ context.Context, event models.RegistrationEvent) error {
	return PublishMessage(p.ch, ExchangeName, RegisteredRoutingKey, event)
}
