package rabbitmq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"pos-voice/internal/config"
)

const (
	OrdersExchange        = "orders_topic"
	NotificationsExchange = "notifications_fanout"
	NotificationsQueue    = "notifications_queue"
)

// confirmBuffer leaves room for confirmations of publishes whose caller
// stopped waiting.
const confirmBuffer = 16

var (
	ErrNack          = errors.New("publish NACK from broker")
	ErrConfirmClosed = errors.New("confirmation channel closed")
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation // для publisher confirms
	mu   sync.Mutex               // сериализуем Publish при использовании confirms
	tag  uint64                   // тег последней публикации
}

func URL(cfg config.RabbitMQConfig) string {
	scheme := "amqp"
	if cfg.UseTLS {
		scheme = "amqps"
	}
	vhost := cfg.VHost
	if vhost == "" || vhost == "/" {
		vhost = ""
	}
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + vhost,
	}
	return u.String()
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	if cfg.UseTLS {
		conn, err = amqp.DialTLS(URL(cfg), &tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		conn, err = amqp.Dial(URL(cfg))
	}
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Включаем publisher confirms и подписываемся на подтверждения
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Лёгкая health-проверка соединения
func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopology declares the exchanges the order service publishes to.
// Declarations are idempotent.
func (c *Client) DeclareTopology() error {
	if err := c.ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", OrdersExchange, err)
	}
	if err := c.ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", NotificationsExchange, err)
	}
	return nil
}

// PublishJSON publishes body and waits for the broker to confirm it.
// Concurrent callers are serialized.
func (c *Client) PublishJSON(ctx context.Context, exchange, key, correlationID string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.PublishWithContext(
		ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/json",
			MessageId:     uuid.NewString(),
			CorrelationId: correlationID,
			Timestamp:     time.Now().UTC(),
			Headers:       amqp.Table{"x-source": "pos-voice"},
			Body:          body,
		},
	); err != nil {
		return err
	}
	// в confirm-режиме теги идут подряд с 1
	c.tag++
	return waitConfirm(ctx, c.acks, c.tag)
}

// waitConfirm waits for the confirmation of tag. Confirmations for earlier
// tags belong to publishes that timed out and are dropped.
func waitConfirm(ctx context.Context, acks <-chan amqp.Confirmation, tag uint64) error {
	for {
		select {
		case conf, ok := <-acks:
			if !ok {
				return ErrConfirmClosed
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if conf.Ack {
				return nil
			}
			return ErrNack
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Subscribe binds a durable queue to a fanout exchange and starts consuming
// with manual acks.
func (c *Client) Subscribe(exchange, queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", exchange, err)
	}
	if _, err := c.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	if err := c.ch.QueueBind(queue, "", exchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind %s: %w", queue, err)
	}
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

// CancelConsumer stops deliveries for the given consumer tag.
func (c *Client) CancelConsumer(consumer string) error {
	return c.ch.Cancel(consumer, false)
}
