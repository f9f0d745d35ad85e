package tracing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/internal/logger"
)

func TestJaegerConfig_Reporter(t *testing.T) {
	agent := (&JaegerConfig{AgentHost: "jaeger", AgentPort: "6831"}).configuration()
	assert.Equal(t, "jaeger:6831", agent.Reporter.LocalAgentHostPort)
	assert.Empty(t, agent.Reporter.CollectorEndpoint)
	assert.True(t, agent.Disabled)

	collector := (&JaegerConfig{Endpoint: "http://jaeger:14268/api/traces", Enabled: true}).configuration()
	assert.Equal(t, "http://jaeger:14268/api/traces", collector.Reporter.CollectorEndpoint)
	assert.Empty(t, collector.Reporter.LocalAgentHostPort)
	assert.False(t, collector.Disabled)
}

func TestNewJaegerTracer(t *testing.T) {
	log := logger.NewNopLogger()

	tracer, closer, err := NewJaegerTracer(&JaegerConfig{ServiceName: "tracker-api", SamplerType: "const", SamplerParam: 1}, log)
	require.NoError(t, err)
	require.NotNil(t, tracer)
	assert.NoError(t, closer.Close())

	_, _, err = NewJaegerTracer(&JaegerConfig{ServiceName: "tracker-api", Enabled: true, SamplerType: "const", SamplerParam: 0.5}, log)
	assert.Error(t, err)
}
