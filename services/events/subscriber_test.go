package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/logger"
)

type countingAcknowledger struct {
	mu      sync.Mutex
	acks    int
	nacks   int
	requeue bool
}

func (a *countingAcknowledger) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *countingAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks++
	a.requeue = requeue
	return nil
}

func (a *countingAcknowledger) Reject(uint64, bool) error {
	return nil
}

type funcListener struct {
	Listener[dto.ScanCompleted]
	handle func(ctx context.Context, event any) error
}

func (l *funcListener) Handle(ctx context.Context, event any) error {
	return l.handle(ctx, event)
}

func newTestSubscriber(listeners ...interfaces.EventListener) *Subscriber {
	s := &Subscriber{
		log:         logger.NewNopLogger(),
		ackAttempts: 1,
		listeners:   make(map[string]interfaces.EventListener),
	}
	for _, l := range listeners {
		s.RegisterListener(l)
	}
	return s
}

func scanCompletedDelivery(t *testing.T, ack amqp091.Acknowledger) amqp091.Delivery {
	t.Helper()
	body, err := json.Marshal(NewEvent("dom_1", EntityTypeDomain, EventType[dto.ScanCompleted](), dto.ScanCompleted{DomainID: "dom_1"}))
	require.NoError(t, err)
	return amqp091.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestSubscriber_Deliver(t *testing.T) {
	tests := []struct {
		name   string
		handle func(ctx context.Context, event any) error
		acks   int
		nacks  int
	}{
		{
			name:   "handled",
			handle: func(context.Context, any) error { return nil },
			acks:   1,
		},
		{
			name:   "listener error",
			handle: func(context.Context, any) error { return assert.AnError },
			nacks:  1,
		},
		{
			name:   "listener panic",
			handle: func(context.Context, any) error { panic("boom") },
			nacks:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &countingAcknowledger{}
			s := newTestSubscriber(&funcListener{
				Listener: NewListener[dto.ScanCompleted](QueueScanResults),
				handle:   tt.handle,
			})

			s.deliver(QueueScanResults, scanCompletedDelivery(t, ack))

			assert.Equal(t, tt.acks, ack.acks)
			assert.Equal(t, tt.nacks, ack.nacks)
			assert.False(t, ack.requeue)
		})
	}
}

func TestSubscriber_DeliverUnroutable(t *testing.T) {
	ack := &countingAcknowledger{}
	s := newTestSubscriber()

	s.deliver(QueueScanResults, scanCompletedDelivery(t, ack))
	s.deliver(QueueScanResults, amqp091.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("{")})

	assert.Equal(t, 1, ack.acks)
	assert.Equal(t, 1, ack.nacks)
}
