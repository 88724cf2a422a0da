// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestObservability_RecordInvocation(t *testing.T) {
	reader := metric.NewManualReader()
	obs := NewWithReader("ai-web-explorer-test", reader)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordInvocation(ctx, "web_search", 120*time.Millisecond)
	obs.RecordInvocation(ctx, "web_search", 80*time.Millisecond)
	obs.RecordInvocation(ctx, "general_knowledge", 40*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	counts := map[string]int64{}
	var histogramSeen bool
	for _, m := range rm.ScopeMetrics[0].Metrics {
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			assert.Equal(t, "agent.invocations", m.Name)
			for _, dp := range data.DataPoints {
				mode, _ := dp.Attributes.Value(attribute.Key("mode"))
				counts[mode.AsString()] = dp.Value
			}
		case metricdata.Histogram[float64]:
			assert.Equal(t, "agent.duration", m.Name)
			histogramSeen = true
		}
	}

	assert.Equal(t, int64(2), counts["web_search"])
	assert.Equal(t, int64(1), counts["general_knowledge"])
	assert.True(t, histogramSeen)
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordInvocation(context.Background(), "web_search", time.Second)
		obs.Shutdown()
	})
	assert.NotPanics(t, func() {
		(&Observability{}).RecordInvocation(context.Background(), "x", time.Second)
	})
}
