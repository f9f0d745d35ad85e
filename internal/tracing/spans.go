package tracing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

const uberTraceIdKey = "uber-trace-id"

// StartHTTPServerSpan continues the trace of an incoming request, or starts a new one.
func StartHTTPServerSpan(ctx context.Context, operationName string, headers http.Header) (context.Context, opentracing.Span) {
	tracer := opentracing.GlobalTracer()
	parent, err := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(headers))
	return startChildOf(ctx, tracer, operationName, parent, err)
}

// StartMessageSpan continues the trace carried in a broker message.
func StartMessageSpan(ctx context.Context, operationName string, uberTraceId string) (context.Context, opentracing.Span) {
	tracer := opentracing.GlobalTracer()
	carrier := opentracing.TextMapCarrier{uberTraceIdKey: uberTraceId}
	parent, err := tracer.Extract(opentracing.TextMap, carrier)
	return startChildOf(ctx, tracer, operationName, parent, err)
}

// StartTracerSpan starts a root span, for work that is not triggered by a request.
func StartTracerSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	span := opentracing.GlobalTracer().StartSpan(operationName)
	return span, opentracing.ContextWithSpan(ctx, span)
}

func startChildOf(ctx context.Context, tracer opentracing.Tracer, operationName string, parent opentracing.SpanContext, extractErr error) (context.Context, opentracing.Span) {
	var span opentracing.Span
	if extractErr != nil || parent == nil {
		span = tracer.StartSpan(operationName)
	} else {
		span = tracer.StartSpan(operationName, ext.RPCServerOption(parent))
	}
	return opentracing.ContextWithSpan(ctx, span), span
}

// UberTraceId returns the uber-trace-id value to propagate span in a message.
func UberTraceId(span opentracing.Span) string {
	carrier := opentracing.TextMapCarrier{}
	if err := opentracing.GlobalTracer().Inject(span.Context(), opentracing.TextMap, carrier); err != nil {
		return ""
	}
	return carrier[uberTraceIdKey]
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	ext.LogError(span, err, fields...)
}

// LogObjectAsJson logs object as a JSON string field, falling back to the
// reflection based encoder when it does not marshal.
func LogObjectAsJson(span opentracing.Span, name string, object any) {
	if object == nil {
		span.LogFields(log.String(name, "nil"))
		return
	}
	if raw, err := json.Marshal(object); err == nil {
		span.LogFields(log.String(name, string(raw)))
		return
	}
	span.LogFields(log.Object(name, object))
}
