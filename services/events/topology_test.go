package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/logger"
)

func TestBindings_DeadLetterQueues(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range bindings {
		dlq := b.deadLetterQueue()
		assert.Equal(t, b.queue+"-dlq", dlq)
		assert.False(t, seen[dlq], "dead letter queue %s shared", dlq)
		seen[dlq] = true

		args := b.queueArgs(24 * time.Hour)
		assert.Equal(t, ExchangeDeadLetter, args["x-dead-letter-exchange"])
		assert.Equal(t, dlq, args["x-dead-letter-routing-key"])
		assert.Equal(t, int64(86400000), args["x-message-ttl"])
	}
	assert.Len(t, seen, 2)
}

func TestNewEventsService_BadURL(t *testing.T) {
	_, err := NewEventsService(config.BrokerConfig{URL: "http://localhost:5672"}, logger.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start publisher")
}
