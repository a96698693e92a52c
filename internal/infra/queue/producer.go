package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SignupPayload is the registration event emitted after a row is
// committed. The consumer side turns it into a welcome email.
type SignupPayload struct {
	Email        string `json:"email"`
	Language     string `json:"language"`
	ReferralCode string `json:"referral_code"`
	Position     int    `json:"position"`
	Source       string `json:"source"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSignup(ctx context.Context, payload SignupPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal signup payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.waitlist
		RoutingKey,   // k.signup
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish signup event: %w", err)
	}

	return nil
}
