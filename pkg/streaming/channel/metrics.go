package channel

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// channelMetrics are the per-channel collectors, updated inside the state
// machine's critical sections (all operations are O(1) atomics).
type channelMetrics struct {
	sends      prometheus.Counter
	deferred   prometheus.Counter
	resumes    prometheus.Counter
	cancelled  prometheus.Counter
	waterLevel prometheus.Gauge
	suspended  prometheus.Gauge
}

// EnableMetrics attaches Prometheus collectors for this channel under the
// given name. Call it once, before the channel sees concurrent traffic.
func (c *Channel[T]) EnableMetrics(config metrics.Config, name string) {
	if !config.Enabled {
		return
	}

	registry := metrics.ForConfig(config)
	c.state.setMetrics(&channelMetrics{
		sends:      registry.ChannelSends.WithLabelValues(name),
		deferred:   registry.ChannelDeferred.WithLabelValues(name),
		resumes:    registry.ChannelResumes.WithLabelValues(name),
		cancelled:  registry.ChannelCancelled.WithLabelValues(name),
		waterLevel: registry.ChannelWaterLevel.WithLabelValues(name),
		suspended:  registry.ChannelSuspended.WithLabelValues(name),
	})
}
