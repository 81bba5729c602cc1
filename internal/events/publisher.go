package events

import (
	"context"
	"encoding/json"
	"fmt"

	"shrimati-be/internal/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Routing keys published by the storefront.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	EmailActivation    = "email.activation"
	EmailPasswordReset = "email.password_reset"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher emits storefront events to interested consumers
// (mail worker, fulfillment dashboards).
type Publisher interface {
	Publish(ctx context.Context, event string, data interface{}) error
	Close()
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &amqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event string, data interface{}) error {
	body, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	logger.FromCtx(ctx).Debug("publishing event",
		zap.String("event", event),
		zap.String("exchange", p.exchange),
	)

	err = p.channel.Publish(
		p.exchange,
		event,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopPublisher drops events; used when AMQP_URL is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event string, data interface{}) error {
	logger.FromCtx(ctx).Debug("event dropped (no publisher configured)",
		zap.String("event", event),
	)
	return nil
}

func (NopPublisher) Close() {}
