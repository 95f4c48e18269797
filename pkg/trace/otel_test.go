package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefault_UsesConfigTracingService(t *testing.T) {
	t.Setenv("VC_TRACING_SERVICE_NAME", "vc-test-service")
	tracer := NewDefault()
	assert.NotNil(t, tracer)
}
