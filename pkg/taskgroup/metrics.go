package taskgroup

import (
	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// EnableMetrics attaches task and failure counters for this group under
// the given name. Call it before spawning tasks.
func (g *Group) EnableMetrics(config metrics.Config, name string) {
	if !config.Enabled {
		return
	}

	registry := metrics.ForConfig(config)
	g.tasks = registry.GroupTasks.WithLabelValues(name)
	g.failures = registry.GroupFailures.WithLabelValues(name)
}
