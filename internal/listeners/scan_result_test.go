package listeners

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/services/events"
)

func TestScanResultListener_Handle(t *testing.T) {
	scans := new(mocks.ScanService)
	scans.On("ProcessScanResult", mock.Anything, mock.MatchedBy(func(result dto.ScanCompleted) bool {
		return result.DomainID == "dom_1" && result.ScanType == "dmarc" && result.Record == "v=DMARC1; p=reject"
	})).Return(nil)

	listener := NewScanResultListener(logger.NewNopLogger(), scans)
	assert.Equal(t, "ScanCompleted", listener.GetEventType())
	assert.Equal(t, events.QueueScanResults, listener.GetQueueName())

	event := events.NewEvent("dom_1", events.EntityTypeDomain, "ScanCompleted", map[string]interface{}{
		"domain":   "canada.ca",
		"scanType": "dmarc",
		"record":   "v=DMARC1; p=reject",
	})

	require.NoError(t, listener.Handle(context.Background(), event))
	scans.AssertExpectations(t)
}

func TestScanResultListener_RejectsOtherEvents(t *testing.T) {
	scans := new(mocks.ScanService)
	listener := NewScanResultListener(logger.NewNopLogger(), scans)

	event := events.NewEvent("dom_1", events.EntityTypeDomain, "ScanRequested", map[string]interface{}{"domain": "canada.ca"})

	assert.Error(t, listener.Handle(context.Background(), event))
	scans.AssertNotCalled(t, "ProcessScanResult", mock.Anything, mock.Anything)
}
