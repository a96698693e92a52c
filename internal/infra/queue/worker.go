package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thearchitech/waitlist-api/internal/infra/http/middleware"
)

// WelcomeMailer is the external email-sending capability. The worker
// does not care whether it is SMTP or an API provider.
type WelcomeMailer interface {
	SendWelcome(to, language, referralCode string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  WelcomeMailer
}

func NewWorker(ch *amqp.Channel, mailer WelcomeMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual, a lost message is a lost welcome email)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload SignupPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON, dead-lettering: %s", err)
				// Malformed message. Reject without requeue so it cannot
				// block the queue.
				d.Nack(false, false)
				continue
			}

			if err := w.ProcessSignup(payload); err != nil {
				log.Printf("[WORKER] welcome email for %s failed: %s", payload.Email, err)
				middleware.RecordWelcomeEmailError()
				// Off to the DLQ. Re-queueing an SMTP failure would just
				// spin on the same broken relay.
				d.Nack(false, false)
			} else {
				log.Printf("[WORKER] welcome email sent to %s (position %d)", payload.Email, payload.Position)
				middleware.RecordWelcomeEmailSent(payload.Language)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Welcome-email worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) ProcessSignup(payload SignupPayload) error {
	return w.Mailer.SendWelcome(payload.Email, payload.Language, payload.ReferralCode)
}
