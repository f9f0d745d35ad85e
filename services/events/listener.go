package events

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

// Listener binds the payload type T to the queue it arrives on. Embed it in a
// type implementing Handle to get an interfaces.EventListener.
type Listener[T any] struct {
	queueName string
}

func NewListener[T any](queueName string) Listener[T] {
	return Listener[T]{queueName: queueName}
}

func (l Listener[T]) GetEventType() string {
	return EventType[T]()
}

func (l Listener[T]) GetQueueName() string {
	return l.queueName
}

// Decode checks that input is an event of type T and decodes its payload.
func (l Listener[T]) Decode(ctx context.Context, input any) (*dto.Event, T, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Listener.Decode")
	defer span.Finish()
	tracing.SetDefaultListenerSpanTags(ctx, span)

	var payload T
	event, err := l.validate(input)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, payload, err
	}

	// the subscriber leaves Data as generic json values
	raw, err := json.Marshal(event.Event.Data)
	if err == nil {
		err = json.Unmarshal(raw, &payload)
	}
	if err != nil {
		err = errors.Wrapf(err, "decode %s payload", event.Event.EventType)
		tracing.TraceErr(span, err)
		return nil, payload, err
	}
	return event, payload, nil
}

func (l Listener[T]) validate(input any) (*dto.Event, error) {
	var event *dto.Event
	switch e := input.(type) {
	case dto.Event:
		event = &e
	case *dto.Event:
		event = e
	}
	switch {
	case event == nil:
		return nil, errors.Errorf("unexpected message %T", input)
	case event.Event.EventType != l.GetEventType():
		return nil, errors.Errorf("unexpected event type %q", event.Event.EventType)
	case event.Event.Data == nil:
		return nil, errors.New("message data is nil")
	}
	return event, nil
}

func NewEvent(entityId, entityType, eventType string, data interface{}) dto.Event {
	return dto.Event{
		Event: dto.EventDetails{
			Id:         utils.GenerateNanoIdWithPrefix("evt", 21),
			EntityId:   entityId,
			EntityType: entityType,
			EventType:  eventType,
			Data:       data,
		},
	}
}

// EventType is the name events carrying a T payload are published under.
func EventType[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
