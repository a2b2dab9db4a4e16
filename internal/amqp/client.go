// Package amqp publishes and consumes transaction events over RabbitMQ.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	applog "saldo/internal/log"
)

const publishTimeout = 5 * time.Second

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       *applog.Logger
}

func NewClient(url, exchangeName, queueName string, logger *applog.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger.WithComponent(applog.ComponentAMQP),
	}
	if err := c.setup(); err != nil {
		c.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return c, nil
}

// setup declares a durable direct exchange and a queue bound under its own name.
func (c *Client) setup() error {
	if err := c.channel.ExchangeDeclare(c.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := c.channel.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishTransactionEvent sends e as a persistent JSON message.
func (c *Client) PublishTransactionEvent(ctx context.Context, e TransactionEvent) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(ctx, c.exchangeName, c.queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    e.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	c.logger.DebugContext(ctx, "Published transaction event",
		slog.String("type", string(e.Type)),
		slog.String(applog.FieldOwnerID, e.OwnerID),
		slog.String(applog.FieldTransaction, e.TransactionID))
	return nil
}

// Handler processes one event. A returned error requeues the message.
type Handler func(context.Context, TransactionEvent) error

// ConsumeTransactionEvents delivers events to handler with manual
// acknowledgement until ctx is cancelled.
func (c *Client) ConsumeTransactionEvents(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "Started consuming transaction events", slog.String("queue", c.queueName))

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "Stopping message consumption", slog.Any("reason", ctx.Err()))
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			handleDelivery(ctx, c.logger, d, handler)
		}
	}
}

// handleDelivery acks processed messages, drops malformed ones and requeues
// messages whose handler failed.
func handleDelivery(ctx context.Context, logger *applog.Logger, d amqp091.Delivery, handler Handler) {
	e, err := TransactionEventFromJSON(d.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Dropping malformed transaction event", slog.Any(applog.FieldError, err))
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, e); err != nil {
		logger.ErrorContext(ctx, "Failed to handle transaction event",
			slog.Any(applog.FieldError, err),
			slog.String(applog.FieldOwnerID, e.OwnerID),
			slog.String(applog.FieldTransaction, e.TransactionID))
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
	logger.DebugContext(ctx, "Processed transaction event",
		slog.String(applog.FieldOwnerID, e.OwnerID),
		slog.String(applog.FieldTransaction, e.TransactionID))
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
