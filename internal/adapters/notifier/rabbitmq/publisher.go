// Package rabbitmq delivers notifications through a durable RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

const (
	DefaultQueue       = "playervote.notifications"
	defaultDialTimeout = 5 * time.Second
)

// Message is the wire form of a notification on the queue.
type Message struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}

type Publisher struct {
	url   string
	queue string
}

func NewPublisher(url, queue string) ports.Notifier {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{url: url, queue: queue}
}

// Notify opens a short-lived connection per message. Dialing and the AMQP
// handshake are bounded by the deadline of ctx.
func (p *Publisher) Notify(ctx context.Context, n domain.Notification) (bool, error) {
	conn, err := dial(ctx, p.url)
	if err != nil {
		return false, fmt.Errorf("failed to dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return false, fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch, p.queue); err != nil {
		return false, err
	}

	body, err := json.Marshal(Message{Title: n.Title, Content: n.Content, SentAt: time.Now().UTC()})
	if err != nil {
		return false, fmt.Errorf("failed to encode notification: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return false, fmt.Errorf("failed to publish notification: %w", err)
	}
	return true, nil
}

func dial(ctx context.Context, url string) (*amqp.Connection, error) {
	timeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return nil
}
