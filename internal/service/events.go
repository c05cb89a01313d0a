package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/queue"
)

// OrderPublisher delivers order events to downstream consumers.
type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, ev queue.OrderEvent) error
}

// NopPublisher drops every event.  It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, queue.OrderEvent) error { return nil }

// AMQPPublisher publishes to the durable orders queue on RabbitMQ.  It dials
// per event; order writes are infrequent and this keeps no connection state
// to repair after a broker restart.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
	Log         logrus.FieldLogger
}

func NewAMQPPublisher(url string, log logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: 2 * time.Second, Log: log}
}

// PublishOrderEvent marks messages persistent.  Errors are logged and
// returned so the caller may ignore them.
func (p *AMQPPublisher) PublishOrderEvent(ctx context.Context, ev queue.OrderEvent) error {
	err := p.publish(ctx, ev)
	if err != nil {
		p.Log.WithError(err).WithFields(logrus.Fields{"kind": ev.Kind, "order_id": ev.OrderID}).Warn("rabbitmq: publish order event failed")
	}
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, ev queue.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := queue.DeclareOrders(ch); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                    // default exchange
		queue.OrdersQueueName, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}
