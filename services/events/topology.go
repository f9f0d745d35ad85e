package events

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeTrackerDirect = "tracker-direct"
	ExchangeDeadLetter    = "dead-letter"

	QueueScanRequests = "scan-requests"
	QueueScanResults  = "scan-results"

	RoutingKeyScanRequest = "tracker-scan-request"
	RoutingKeyScanResult  = "tracker-scan-result"

	EntityTypeDomain = "domain"
)

type binding struct {
	queue      string
	routingKey string
}

// deadLetterQueue also serves as the dead letter routing key, so rejected
// messages land only in the queue paired with their origin.
func (b binding) deadLetterQueue() string {
	return b.queue + "-dlq"
}

var bindings = []binding{
	{queue: QueueScanRequests, routingKey: RoutingKeyScanRequest},
	{queue: QueueScanResults, routingKey: RoutingKeyScanResult},
}

// queueArgs expire messages into the dead letter exchange after ttl.
func (b binding) queueArgs(ttl time.Duration) amqp091.Table {
	return amqp091.Table{
		"x-dead-letter-exchange":    ExchangeDeadLetter,
		"x-dead-letter-routing-key": b.deadLetterQueue(),
		"x-message-ttl":             ttl.Milliseconds(),
	}
}

// declareTopology is idempotent and runs on every (re)connect.
func declareTopology(ch *amqp091.Channel, ttl time.Duration) error {
	for _, exchange := range []string{ExchangeDeadLetter, ExchangeTrackerDirect} {
		if err := ch.ExchangeDeclare(exchange, amqp091.ExchangeDirect, true, false, false, false, nil); err != nil {
			return errors.Wrapf(err, "declare exchange %s", exchange)
		}
	}

	for _, b := range bindings {
		dlq := b.deadLetterQueue()
		if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
			return errors.Wrapf(err, "declare queue %s", dlq)
		}
		if err := ch.QueueBind(dlq, dlq, ExchangeDeadLetter, false, nil); err != nil {
			return errors.Wrapf(err, "bind queue %s", dlq)
		}
		if _, err := ch.QueueDeclare(b.queue, true, false, false, false, b.queueArgs(ttl)); err != nil {
			return errors.Wrapf(err, "declare queue %s", b.queue)
		}
		if err := ch.QueueBind(b.queue, b.routingKey, ExchangeTrackerDirect, false, nil); err != nil {
			return errors.Wrapf(err, "bind queue %s", b.queue)
		}
	}
	return nil
}
