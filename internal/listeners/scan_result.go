package listeners

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/services/events"
)

// ScanResultListener stores the results the scanners publish on the scan results queue.
type ScanResultListener struct {
	events.Listener[dto.ScanCompleted]
	log         logger.Logger
	scanService interfaces.ScanService
}

func NewScanResultListener(log logger.Logger, scanService interfaces.ScanService) interfaces.EventListener {
	return &ScanResultListener{
		Listener:    events.NewListener[dto.ScanCompleted](events.QueueScanResults),
		log:         log,
		scanService: scanService,
	}
}

func (l *ScanResultListener) Handle(ctx context.Context, baseEvent any) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ScanResultListener.Handle")
	defer span.Finish()
	tracing.SetDefaultListenerSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "event", baseEvent)

	event, result, err := l.Decode(ctx, baseEvent)
	if err != nil {
		tracing.TraceErr(span, err)
		l.log.Warnf("Dropping scan result: %v", err)
		return err
	}
	if result.DomainID == "" {
		result.DomainID = event.Event.EntityId
	}
	tracing.TagEntity(span, result.DomainID)

	return l.scanService.ProcessScanResult(ctx, result)
}
