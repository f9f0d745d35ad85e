package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/dto"
)

func TestEventType(t *testing.T) {
	assert.Equal(t, "ScanCompleted", EventType[dto.ScanCompleted]())
	assert.Equal(t, "ScanRequested", EventType[*dto.ScanRequested]())
}

func TestListener_Decode(t *testing.T) {
	listener := NewListener[dto.ScanCompleted](QueueScanResults)
	assert.Equal(t, QueueScanResults, listener.GetQueueName())
	assert.Equal(t, "ScanCompleted", listener.GetEventType())

	event := NewEvent("dom_1", EntityTypeDomain, "ScanCompleted", map[string]interface{}{
		"domainId": "dom_1",
		"domain":   "canada.ca",
		"scanType": "spf",
		"record":   "v=spf1 -all",
	})

	for _, input := range []any{event, &event} {
		decoded, result, err := listener.Decode(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "dom_1", decoded.Event.EntityId)
		assert.Equal(t, "canada.ca", result.Domain)
		assert.Equal(t, "spf", result.ScanType)
		assert.Equal(t, "v=spf1 -all", result.Record)
	}
}

func TestListener_DecodeRejects(t *testing.T) {
	listener := NewListener[dto.ScanCompleted](QueueScanResults)
	ctx := context.Background()

	tests := []struct {
		name  string
		input any
	}{
		{name: "not an event", input: "not an event"},
		{name: "nil data", input: NewEvent("dom_1", EntityTypeDomain, "ScanCompleted", nil)},
		{name: "other event type", input: NewEvent("dom_1", EntityTypeDomain, "ScanRequested", map[string]interface{}{})},
		{name: "payload of the wrong shape", input: NewEvent("dom_1", EntityTypeDomain, "ScanCompleted", []int{1, 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := listener.Decode(ctx, tt.input)
			assert.Error(t, err)
		})
	}
}
