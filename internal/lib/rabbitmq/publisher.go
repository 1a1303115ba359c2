package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// RecipeEvent описывает событие жизненного цикла рецепта,
// публикуемое в обменник recipe-events.
type RecipeEvent struct {
	RecipeID   string    `json:"recipe_id"`
	Title      string    `json:"title"`
	AuthorUID  string    `json:"author_uid"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher публикует события рецептов в RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// Publish публикует сообщение с указанным ключом маршрутизации.
func (p *Publisher) Publish(routingKey string, message any) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		EventsExchange,
		routingKey,
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
