// Package queue defines message payloads exchanged over the message broker.
package queue

import amqp "github.com/rabbitmq/amqp091-go"

// OrdersQueueName is the durable queue carrying OrderEvent messages.
const OrdersQueueName = "orders.events"

// Event kinds.
const (
	OrderPlaced  = "order.placed"
	OrderUpdated = "order.updated"
)

// OrderEvent is published after an order row is written.  It carries the
// submitted values so consumers do not need to query the primary database.
type OrderEvent struct {
	Kind       string  `json:"kind"`
	OrderID    uint64  `json:"order_id"`
	CustomerID uint64  `json:"customer_id"`
	CropID     uint64  `json:"crop_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	At         string  `json:"at"`
}

// DeclareOrders declares the orders queue (idempotent).  Durable so messages
// survive broker restarts.
func DeclareOrders(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		OrdersQueueName, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	)
	return err
}
