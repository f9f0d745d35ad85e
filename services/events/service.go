package events

import (
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
)

// EventsService owns the two broker connections: one publishing, one consuming.
type EventsService struct {
	Publisher  *Publisher
	Subscriber *Subscriber
}

func NewEventsService(cfg config.BrokerConfig, log logger.Logger) (*EventsService, error) {
	publisher, err := NewPublisher(cfg, log)
	if err != nil {
		return nil, errors.Wrap(err, "start publisher")
	}

	subscriber, err := NewSubscriber(cfg, log)
	if err != nil {
		publisher.Close()
		return nil, errors.Wrap(err, "start subscriber")
	}

	return &EventsService{Publisher: publisher, Subscriber: subscriber}, nil
}

// Close stops consuming before it stops publishing.
func (s *EventsService) Close() error {
	subErr := s.Subscriber.Close()
	pubErr := s.Publisher.Close()
	if subErr != nil {
		return errors.Wrap(subErr, "close subscriber")
	}
	return errors.Wrap(pubErr, "close publisher")
}
