package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-gin-event-hub/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName = "events"
	ExchangeKind = "topic"

	RoutingEventCreated   = "event.created"
	RoutingEventUpdated   = "event.updated"
	RoutingBookingCreated = "booking.created"
)

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close()
}

// RabbitMQPublisherImpl 發佈整合事件到 topic exchange；amqp.Channel 非併發安全，以 mutex 保護
type RabbitMQPublisherImpl struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

func NewRabbitMQPublisher(url string) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &RabbitMQPublisherImpl{conn: conn, channel: ch}, nil
}

func (p *RabbitMQPublisherImpl) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.WithComponent("publisher").Debug("published",
		zap.String("exchange", ExchangeName),
		zap.String("routing_key", routingKey),
	)
	return nil
}

func (p *RabbitMQPublisherImpl) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher 未設定 RABBITMQ_URL 時使用
type NoopPublisher struct{}

func NewNoopPublisher() EventPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	logger.WithComponent("publisher").Debug("event would be published (noop)", zap.String("routing_key", routingKey))
	return nil
}

func (NoopPublisher) Close() {}
