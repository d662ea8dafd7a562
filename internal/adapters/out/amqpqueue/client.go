// Package amqpqueue is the broker-backed alternative to the Postgres job
// queue, selected with QUEUE_DRIVER=amqp. Jobs flow through a durable queue
// with a dead-letter exchange; retries are republished with an attempt
// header after the backoff delay.
package amqpqueue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker topology. Rejected deliveries are routed by the dead-letter
// exchange into the parking queue for operator inspection.
const (
	QueueName      = "orders.schedule"
	DeadLetterName = "orders.schedule.dlq"
	dlxName        = "orders.dlx"

	attemptHeader = "x-attempt"
)

// Client owns the AMQP connection and channel used by both the publisher
// and the consumer.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and declares the queue topology.
func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	client := &Client{conn: conn, ch: ch}
	if err = client.declare(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// Channel exposes the underlying channel for publishing and consuming.
func (c *Client) Channel() *amqp.Channel {
	return c.ch
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) declare() error {
	if err := c.ch.ExchangeDeclare(dlxName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := c.ch.QueueDeclare(QueueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxName,
		"x-dead-letter-routing-key": DeadLetterName,
	}); err != nil {
		return err
	}

	if _, err := c.ch.QueueDeclare(DeadLetterName, true, false, false, false, nil); err != nil {
		return err
	}

	return c.ch.QueueBind(DeadLetterName, DeadLetterName, dlxName, false, nil)
}
