package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const publishRetryDelay = 100 * time.Millisecond

// Publisher sends events on a confirm-mode channel. Publish returns once the
// broker acknowledged the message or every attempt failed.
type Publisher struct {
	conn     *connection
	log      logger.Logger
	attempts uint
	timeout  time.Duration

	mu       sync.Mutex
	channel  *amqp091.Channel
	confirms chan amqp091.Confirmation
}

func NewPublisher(cfg config.BrokerConfig, log logger.Logger) (*Publisher, error) {
	conn, err := dial(cfg, log, func(c *amqp091.Connection) error {
		ch, err := c.Channel()
		if err != nil {
			return errors.Wrap(err, "open topology channel")
		}
		defer ch.Close()
		return declareTopology(ch, cfg.MessageTTL)
	})
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:     conn,
		log:      log,
		attempts: cfg.PublishAttempts,
		timeout:  cfg.PublishTimeout,
	}, nil
}

func (p *Publisher) PublishScanRequest(ctx context.Context, request dto.ScanRequested) error {
	event := NewEvent(request.DomainID, EntityTypeDomain, EventType[dto.ScanRequested](), request)
	return p.publish(ctx, ExchangeTrackerDirect, RoutingKeyScanRequest, event)
}

func (p *Publisher) publish(ctx context.Context, exchange, routingKey string, event dto.Event) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Publisher.Publish")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, event.Event.EntityId)
	span.SetTag("routing_key", routingKey)

	event.Metadata = dto.EventMetadata{
		UberTraceId: tracing.UberTraceId(span),
		AppSource:   utils.GetAppSourceFromContext(ctx),
		UserId:      utils.GetUserIdFromContext(ctx),
		Timestamp:   utils.Now().Format(time.RFC3339),
	}
	tracing.LogObjectAsJson(span, "event", event)

	body, err := json.Marshal(event)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "marshal event")
	}

	err = retry.Do(
		func() error { return p.publishConfirmed(ctx, exchange, routingKey, body) },
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(publishRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.log.Warnf("Publish attempt %d on %s failed: %v", n+1, routingKey, err)
		}),
	)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "publish %s", event.Event.EventType)
	}
	return nil
}

func (p *Publisher) publishConfirmed(ctx context.Context, exchange, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.confirmChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, exchange, routingKey, true, false, amqp091.Publishing{
		DeliveryMode: amqp091.Persistent,
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    utils.Now(),
	})
	if err != nil {
		return errors.Wrap(err, "publish message")
	}

	select {
	case confirm, ok := <-p.confirms:
		if !ok {
			return errors.New("channel closed before confirmation")
		}
		if !confirm.Ack {
			return errors.New("message nacked by broker")
		}
		return nil
	case <-time.After(p.timeout):
		return errors.Errorf("no confirmation within %v", p.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// confirmChannel reuses the open channel or opens a new one on the current
// connection. Callers hold p.mu.
func (p *Publisher) confirmChannel() (*amqp091.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	conn := p.conn.current()
	if conn == nil || conn.IsClosed() {
		return nil, errors.New("rabbitmq connection unavailable")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open publish channel")
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, errors.Wrap(err, "enable publisher confirms")
	}

	p.confirms = ch.NotifyPublish(make(chan amqp091.Confirmation, 1))
	p.channel = ch
	return ch, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.channel != nil && !p.channel.IsClosed() {
		if err := p.channel.Close(); err != nil {
			p.log.Errorf("Error closing publish channel: %v", err)
		}
	}
	p.mu.Unlock()

	return p.conn.close()
}
