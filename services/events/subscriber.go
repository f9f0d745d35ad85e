package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

const (
	AppSourceListener = "tracker-listener"

	resubscribeDelay = 5 * time.Second
	settleRetryDelay = 100 * time.Millisecond
)

// Subscriber routes messages from its queues to the listener registered for
// their event type. A message is acked when the listener succeeds and
// dead-lettered otherwise.
type Subscriber struct {
	conn        *connection
	log         logger.Logger
	prefetch    int
	ackAttempts uint

	mu        sync.RWMutex
	listeners map[string]interfaces.EventListener
}

func NewSubscriber(cfg config.BrokerConfig, log logger.Logger) (*Subscriber, error) {
	conn, err := dial(cfg, log, nil)
	if err != nil {
		return nil, err
	}

	return &Subscriber{
		conn:        conn,
		log:         log,
		prefetch:    cfg.Prefetch,
		ackAttempts: cfg.AckAttempts,
		listeners:   make(map[string]interfaces.EventListener),
	}, nil
}

func (s *Subscriber) RegisterListener(listener interfaces.EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners[listener.GetEventType()] = listener
	s.log.Infof("Registered listener for %s on queue %s", listener.GetEventType(), listener.GetQueueName())
}

func (s *Subscriber) listenerFor(eventType string) (interfaces.EventListener, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listener, ok := s.listeners[eventType]
	return listener, ok
}

// ListenQueue consumes queueName in the background until Close is called,
// resubscribing whenever the delivery stream ends.
func (s *Subscriber) ListenQueue(queueName string) error {
	go func() {
		defer tracing.RecoverAndLogToJaeger(s.log)
		for {
			if err := s.consume(queueName); err != nil {
				s.log.Errorf("Consumer on queue %s stopped: %v", queueName, err)
			}

			select {
			case <-s.conn.closed():
				return
			case <-time.After(resubscribeDelay):
				s.log.Warnf("Resubscribing to queue %s", queueName)
			}
		}
	}()

	return nil
}

func (s *Subscriber) consume(queueName string) error {
	conn := s.conn.current()
	if conn == nil || conn.IsClosed() {
		return errors.New("rabbitmq connection unavailable")
	}

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "open channel")
	}
	defer ch.Close()

	if err := ch.Qos(s.prefetch, 0, false); err != nil {
		return errors.Wrap(err, "set prefetch")
	}
	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "register consumer")
	}

	s.log.Infof("Listening for messages on queue %s", queueName)
	for d := range deliveries {
		s.deliver(queueName, d)
	}
	return nil
}

func (s *Subscriber) deliver(queueName string, d amqp091.Delivery) {
	defer tracing.RecoverAndLogToJaeger(s.log)

	settle := func() error { return d.Ack(false) }
	if err := s.dispatch(queueName, d.Body); err != nil {
		s.log.Errorf("Failed to process message on queue %s: %v", queueName, err)
		settle = func() error { return d.Nack(false, false) }
	}

	err := retry.Do(
		settle,
		retry.Attempts(s.ackAttempts),
		retry.Delay(settleRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.log.Errorf("Failed to settle message on queue %s: %v", queueName, err)
	}
}

func (s *Subscriber) dispatch(queueName string, body []byte) (err error) {
	defer tracing.RecoverAsError(s.log, &err)

	var event dto.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return errors.Wrap(err, "unmarshal event")
	}

	listener, ok := s.listenerFor(event.Event.EventType)
	switch {
	case !ok:
		s.log.Infof("No listener for %s on queue %s", event.Event.EventType, queueName)
		return nil
	case listener.GetQueueName() != queueName:
		s.log.Warnf("Event %s arrived on queue %s, expected %s", event.Event.EventType, queueName, listener.GetQueueName())
		return nil
	}

	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{
		AppSource: AppSourceListener,
		UserId:    event.Metadata.UserId,
	})
	ctx, span := tracing.StartMessageSpan(ctx, "Subscriber.Dispatch", event.Metadata.UberTraceId)
	defer span.Finish()
	span.LogKV("event_type", event.Event.EventType, "queue_name", queueName)

	err = listener.Handle(ctx, event)
	if err != nil {
		tracing.TraceErr(span, err)
	}
	return err
}

func (s *Subscriber) Close() error {
	return s.conn.close()
}
