package events

import (
	"context"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
)

// connection holds one broker connection and redials it with backoff when
// the server drops it. setup runs against every fresh connection.
type connection struct {
	cfg   config.BrokerConfig
	log   logger.Logger
	setup func(*amqp091.Connection) error

	mu   sync.Mutex
	amqp *amqp091.Connection
	done chan struct{}
}

func dial(cfg config.BrokerConfig, log logger.Logger, setup func(*amqp091.Connection) error) (*connection, error) {
	c := &connection{cfg: cfg, log: log, setup: setup, done: make(chan struct{})}
	if err := c.open(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *connection) open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return retry.Unrecoverable(errors.New("rabbitmq connection closed"))
	default:
	}

	conn, err := amqp091.Dial(c.cfg.URL)
	if err != nil {
		return errors.Wrap(err, "dial rabbitmq")
	}
	if c.setup != nil {
		if err := c.setup(conn); err != nil {
			conn.Close()
			return err
		}
	}
	c.amqp = conn
	go c.watch(conn)
	return nil
}

func (c *connection) current() *amqp091.Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.amqp
}

func (c *connection) closed() <-chan struct{} {
	return c.done
}

func (c *connection) watch(conn *amqp091.Connection) {
	reason, ok := <-conn.NotifyClose(make(chan *amqp091.Error, 1))
	if !ok {
		// closed by us
		return
	}
	c.log.Warnf("RabbitMQ connection lost: %v", reason)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := retry.Do(
		c.open,
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(c.cfg.ReconnectDelay),
		retry.MaxDelay(c.cfg.MaxReconnectDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Errorf("RabbitMQ reconnect attempt %d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		c.log.Warnf("Stopped reconnecting to RabbitMQ: %v", err)
		return
	}
	c.log.Info("Reconnected to RabbitMQ")
}

func (c *connection) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return nil
	default:
		close(c.done)
	}
	if c.amqp == nil || c.amqp.IsClosed() {
		return nil
	}
	return errors.Wrap(c.amqp.Close(), "close rabbitmq connection")
}
