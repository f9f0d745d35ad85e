package tracing

import (
	"io"
	"net"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerzap "github.com/uber/jaeger-client-go/log/zap"

	"github.com/canada-ca/tracker-sub010/internal/logger"
)

// JaegerConfig is read from the JAEGER_* environment. Spans go to the
// collector when Endpoint is set, to the local agent otherwise.
type JaegerConfig struct {
	Endpoint     string  `env:"JAEGER_ENDPOINT"`
	ServiceName  string  `env:"JAEGER_SERVICE_NAME" envDefault:"tracker-api"`
	AgentHost    string  `env:"JAEGER_AGENT_HOST" envDefault:"localhost"`
	AgentPort    string  `env:"JAEGER_AGENT_PORT" envDefault:"6831"`
	Enabled      bool    `env:"JAEGER_ENABLED" envDefault:"false"`
	LogSpans     bool    `env:"JAEGER_REPORTER_LOG_SPANS" envDefault:"false"`
	SamplerType  string  `env:"JAEGER_SAMPLER_TYPE" envDefault:"const"`
	SamplerParam float64 `env:"JAEGER_SAMPLER_PARAM" envDefault:"1"`
}

func (c *JaegerConfig) configuration() *jaegercfg.Configuration {
	reporter := &jaegercfg.ReporterConfig{LogSpans: c.LogSpans}
	if c.Endpoint == "" {
		reporter.LocalAgentHostPort = net.JoinHostPort(c.AgentHost, c.AgentPort)
	} else {
		reporter.CollectorEndpoint = c.Endpoint
	}

	return &jaegercfg.Configuration{
		ServiceName: c.ServiceName,
		Disabled:    !c.Enabled,
		Sampler:     &jaegercfg.SamplerConfig{Type: c.SamplerType, Param: c.SamplerParam},
		Reporter:    reporter,
	}
}

// NewJaegerTracer builds the tracer and the closer that flushes it. With
// tracing disabled the tracer is a noop.
func NewJaegerTracer(c *JaegerConfig, log logger.Logger) (opentracing.Tracer, io.Closer, error) {
	if c.Enabled && c.SamplerType == jaeger.SamplerTypeConst && c.SamplerParam != 0 && c.SamplerParam != 1 {
		return nil, nil, errors.Errorf("const sampler takes 0 or 1, got %v", c.SamplerParam)
	}

	tracer, closer, err := c.configuration().NewTracer(jaegercfg.Logger(jaegerzap.NewLogger(log.Logger())))
	if err != nil {
		return nil, nil, errors.Wrap(err, "create jaeger tracer")
	}
	return tracer, closer, nil
}
