package rabbit

import (
	"context"
	"errors"
	"fmt"

	"github.com/streadway/amqp"
)

var ErrNotConnected = errors.New("rabbit provider is not connected")

type Config struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Queue    string
}

type Provider struct {
	conn       *amqp.Connection
	queue      amqp.Queue
	channel    *amqp.Channel
	connString string
	queueName  string
}

func New(config Config) *Provider {
	return &Provider{
		connString: fmt.Sprintf(
			"amqp://%s:%s@%s:%d/",
			config.User,
			config.Password,
			config.Host,
			config.Port,
		),
		queueName: config.Queue,
	}
}

func (r *Provider) Connect() error {
	var err error
	r.conn, err = amqp.Dial(r.connString)
	if err != nil {
		return fmt.Errorf("failed to dial rabbit: %w", err)
	}

	r.channel, err = r.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbit channel: %w", err)
	}
	r.queue, err = r.channel.QueueDeclare(
		r.queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", r.queueName, err)
	}
	return nil
}

func (r *Provider) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

func (r *Provider) Publish(contentType string, body []byte) error {
	if r.channel == nil {
		return ErrNotConnected
	}
	return r.channel.Publish(
		"",           // exchange
		r.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

type MessageProcess = func(msg amqp.Delivery)

func (r *Provider) Consume(ctx context.Context, process MessageProcess) error {
	if r.channel == nil {
		return ErrNotConnected
	}
	msgs, err := r.channel.Consume(
		r.queue.Name, // queue
		"",           // consumer
		true,         // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", r.queue.Name, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			process(m)
		}
	}
}
