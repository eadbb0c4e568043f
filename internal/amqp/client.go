// Package amqp publishes and consumes the ledger's events over RabbitMQ.
// Event delivery is best effort: publishing sits behind a circuit breaker
// so a dead broker degrades to dropped events instead of blocked writes.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Circuit breaker states.
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	maxFailures    = 5
	openTimeout    = 30 * time.Second
	publishTimeout = 5 * time.Second

	// alertQueue receives budget alerts; transaction events use the
	// queue the client was configured with.
	alertQueue      = "budget_alerts"
	alertRoutingKey = "budget.alert"
)

type Client struct {
	url          string
	exchangeName string
	queueName    string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel

	failureCount int64
	state        int32
	lastFailure  time.Time
}

// NewClient dials the broker and declares the exchange and queues. A
// client that loses its connection later reconnects on the next publish.
func NewClient(url, exchangeName, queueName string) (*Client, error) {
	client := &Client{
		url:          url,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if _, err := client.ensureChannel(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// ensureChannel returns a live channel, dialing and redeclaring the
// topology when the previous one is gone.
func (c *Client) ensureChannel() (*amqp091.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil && !c.channel.IsClosed() {
		return c.channel, nil
	}

	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp091.Dial(c.url)
		if err != nil {
			return nil, fmt.Errorf("dial AMQP: %w", err)
		}
		c.conn = conn
	}

	channel, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(channel, c.exchangeName, c.queueName); err != nil {
		channel.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	c.channel = channel
	return channel, nil
}

func setupTopology(channel *amqp091.Channel, exchangeName, queueName string) error {
	err := channel.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// The events queue binds under its own name, the alerts queue under
	// the alert routing key.
	for _, q := range []struct{ name, key string }{
		{queueName, queueName},
		{alertQueue, alertRoutingKey},
	} {
		_, err = channel.QueueDeclare(
			q.name, // name
			true,   // durable
			false,  // delete when unused
			false,  // exclusive
			false,  // no-wait
			nil,    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", q.name, err)
		}
		if err := channel.QueueBind(q.name, q.key, exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", q.name, err)
		}
	}

	return nil
}

// PublishTransactionRecorded announces a stored transaction.
func (c *Client) PublishTransactionRecorded(ctx context.Context, msg *TransactionRecorded) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, c.queueName, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published transaction recorded message",
		"id", msg.ID,
		"category", msg.Category,
		"month", msg.Month,
		"exchange", c.exchangeName,
		"queue", c.queueName)

	return nil
}

// PublishBudgetAlert reports a category that went over its limit.
func (c *Client) PublishBudgetAlert(ctx context.Context, msg *BudgetAlert) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, alertRoutingKey, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published budget alert",
		"category", msg.Category,
		"month", msg.Month,
		"limit_cents", msg.LimitCents,
		"actual_cents", msg.ActualCents,
		"exchange", c.exchangeName)

	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.isCircuitOpen() {
		return fmt.Errorf("circuit breaker is open, dropping publish to %s", c.exchangeName)
	}

	channel, err := c.ensureChannel()
	if err != nil {
		c.recordFailure()
		return err
	}

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = channel.PublishWithContext(
		pctx,
		c.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.recordFailure()
		if isConnectionError(err) {
			c.dropChannel()
		}
		return fmt.Errorf("publish message: %w", err)
	}

	c.recordSuccess()
	return nil
}

// dropChannel discards the current channel so the next publish redials.
func (c *Client) dropChannel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
}

// ConsumeTransactionEvents delivers each transaction event to the handler
// with manual acks: unmarshal failures are dropped, handler failures are
// requeued. Lost channels are re-established with exponential backoff
// until the context ends.
func (c *Client) ConsumeTransactionEvents(ctx context.Context, handler func(*TransactionRecorded) error) error {
	for attempt := 0; ; attempt++ {
		err := c.consumeOnce(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := exponentialBackoff(attempt)
		slog.WarnContext(ctx, "Consumer disconnected, retrying",
			"error", err,
			"retry_in", wait,
			"attempt", attempt+1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) consumeOnce(ctx context.Context, handler func(*TransactionRecorded) error) error {
	channel, err := c.ensureChannel()
	if err != nil {
		return err
	}

	msgs, err := channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming transaction events", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			msg, err := TransactionRecordedFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal message", "error", err)
				delivery.Nack(false, false) // reject and don't requeue
				continue
			}

			if err := handler(msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle message",
					"error", err,
					"id", msg.ID,
					"category", msg.Category)
				delivery.Nack(false, true) // reject and requeue
				continue
			}

			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// isCircuitOpen reports whether publishing is suspended. An open circuit
// moves to half-open once the timeout has passed, letting one attempt
// through to probe the broker.
func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.state) != StateOpen {
		return false
	}

	c.mu.Lock()
	last := c.lastFailure
	c.mu.Unlock()

	if time.Since(last) > openTimeout {
		atomic.StoreInt32(&c.state, StateHalfOpen)
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

func (c *Client) recordFailure() {
	failures := atomic.AddInt64(&c.failureCount, 1)
	c.mu.Lock()
	c.lastFailure = time.Now()
	c.mu.Unlock()

	if failures >= maxFailures {
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

// exponentialBackoff doubles from one second per attempt, capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return 30 * time.Second
	}
	return time.Second << attempt
}

// isConnectionError matches the broker failure modes worth a reconnect.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range []string{
		"connection refused",
		"connection closed",
		"EOF",
		"broken pipe",
		"use of closed network connection",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
