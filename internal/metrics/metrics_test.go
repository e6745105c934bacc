package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fallbacks(t *testing.T, op string) float64 {
	m := &dto.Metric{}
	require.NoError(t, JobSourceFallbacks.WithLabelValues(op).Write(m))
	return m.GetCounter().GetValue()
}

func TestRecordFallback(t *testing.T) {
	before := fallbacks(t, "list")
	RecordFallback("list")
	RecordFallback("list")
	assert.Equal(t, before+2, fallbacks(t, "list"))
}
