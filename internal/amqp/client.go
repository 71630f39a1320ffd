package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// Options tune how the client connects.
type Options struct {
	// DialRetries is the number of retries after the first failed dial.
	DialRetries uint64
	// InitialInterval is the first backoff delay between dials.
	InitialInterval time.Duration
}

func (o Options) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if o.InitialInterval > 0 {
		b.InitialInterval = o.InitialInterval
	}
	b.MaxElapsedTime = 0 // bounded by DialRetries instead
	return backoff.WithContext(backoff.WithMaxRetries(b, o.DialRetries), ctx)
}

type dialFunc func(url string) (*amqp091.Connection, error)

// NewClient dials the broker, retrying with exponential backoff, and
// declares the exchange and queue.
func NewClient(ctx context.Context, url, exchangeName, queueName string, opts Options) (*Client, error) {
	conn, err := dialWithRetry(ctx, amqp091.Dial, url, opts)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func dialWithRetry(ctx context.Context, dial dialFunc, url string, opts Options) (*amqp091.Connection, error) {
	var conn *amqp091.Connection
	attempt := 0
	op := func() error {
		attempt++
		c, err := dial(url)
		if err != nil {
			slog.WarnContext(ctx, "AMQP dial failed", "attempt", attempt, "error", err)
			return err
		}
		conn = c
		return nil
	}
	if err := backoff.Retry(op, opts.backOff(ctx)); err != nil {
		return nil, err
	}
	return conn, nil
}

func (c *Client) setup() error {
	// Declare exchange
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Declare queue
	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Bind queue to exchange
	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key (same as queue name for direct exchange)
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishLedgerLoaded publishes a ledger loaded event
func (c *Client) PublishLedgerLoaded(ctx context.Context, msg *LedgerLoadedMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, TypeLedgerLoaded, body); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Published ledger loaded message",
		"user_id", msg.UserID,
		"records", msg.Records,
		"exchange", c.exchangeName,
		"queue", c.queueName)
	return nil
}

// PublishLedgerImported publishes a ledger imported event
func (c *Client) PublishLedgerImported(ctx context.Context, msg *LedgerImportedMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, TypeLedgerImported, body); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Published ledger imported message",
		"source", msg.Source,
		"imported", msg.Imported,
		"exchange", c.exchangeName,
		"queue", c.queueName)
	return nil
}

func (c *Client) publish(ctx context.Context, msgType string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Type:         msgType,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
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
