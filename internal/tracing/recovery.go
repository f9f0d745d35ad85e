package tracing

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/internal/logger"
)

// RecoveryWithJaeger answers 500 to a panicking request and reports the panic as a span.
func RecoveryWithJaeger(tracer opentracing.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				reportPanic(tracer, r, string(debug.Stack()), c.Request.Method+" "+c.FullPath())
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// RecoverAndLogToJaeger is deferred at the top of background goroutines.
func RecoverAndLogToJaeger(appLogger logger.Logger) {
	if r := recover(); r != nil {
		stack := string(debug.Stack())
		reportPanic(opentracing.GlobalTracer(), r, stack, "")
		appLogger.Errorf("Recovered from panic: %v\nStack trace:\n%s", r, stack)
	}
}

// RecoverAsError turns a panic into an error stored in *err. Deferred by
// callers that must still act on failure, such as nacking a message.
func RecoverAsError(appLogger logger.Logger, err *error) {
	if r := recover(); r != nil {
		stack := string(debug.Stack())
		reportPanic(opentracing.GlobalTracer(), r, stack, "")
		appLogger.Errorf("Recovered from panic: %v\nStack trace:\n%s", r, stack)
		*err = errors.Errorf("recovered from panic: %v", r)
	}
}

func reportPanic(tracer opentracing.Tracer, recovered any, stack, route string) {
	span := tracer.StartSpan("panic-recovery")
	defer span.Finish()

	ext.Error.Set(span, true)
	if route != "" {
		span.SetTag("http.route", route)
	}
	span.LogKV(
		"event", "error",
		"error.object", recovered,
		"stack", stack,
	)
}
