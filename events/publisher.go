package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const TopicBookingCancelled = "booking.cancelled"

// BookingCancelledEvent is the payload consumed by the refund pipeline.
type BookingCancelledEvent struct {
	BookingID          string    `json:"booking_id"`
	TutorID            string    `json:"tutor_id"`
	StudentID          string    `json:"student_id"`
	TotalAmount        float64   `json:"total_amount"`
	CancellationReason *string   `json:"cancellation_reason"`
	Timestamp          time.Time `json:"timestamp"`
}

// Publisher pushes domain events onto the message bus. Delivery is
// best-effort; callers decide whether a failure matters.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// AMQPPublisher publishes JSON events to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops every event. Used when no broker is configured so the
// booking flow keeps working in development.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, payload any) error { return nil }
func (NoopPublisher) Close() error                                                 { return nil }
