package metrics

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for seqflow components.
type Registry struct {
	// Channel Metrics
	ChannelSends      *prometheus.CounterVec
	ChannelDeferred   *prometheus.CounterVec
	ChannelResumes    *prometheus.CounterVec
	ChannelCancelled  *prometheus.CounterVec
	ChannelWaterLevel *prometheus.GaugeVec
	ChannelSuspended  *prometheus.GaugeVec

	// Sequence Metrics
	SeqItems  *prometheus.CounterVec
	SeqErrors *prometheus.CounterVec

	// Task Group Metrics
	GroupTasks    *prometheus.CounterVec
	GroupFailures *prometheus.CounterVec
	RetryAttempts *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by seqflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// registryKey identifies one collector set: the registerer it lives in plus
// the namespace and constant labels its collectors were created with.
type registryKey struct {
	reg       prometheus.Registerer
	namespace string
	labels    string
}

var (
	registriesMu sync.Mutex
	registries   = make(map[registryKey]*Registry)
)

// NewRegistry returns the metrics registry for the given Prometheus
// registerer, with the default namespace and no constant labels. The result
// is memoized, so repeated calls never double-register.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return ForConfig(Config{Registry: reg})
}

// ForConfig returns the registry described by config: its registerer (the
// default registerer when nil), its namespace ("seqflow" when empty), and
// its constant labels. Registries are memoized per distinct combination, so
// components sharing a configuration share one collector set and never
// double-register.
func ForConfig(config Config) *Registry {
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = "seqflow"
	}
	key := registryKey{
		reg:       reg,
		namespace: namespace,
		labels:    labelFingerprint(config.Labels),
	}

	registriesMu.Lock()
	defer registriesMu.Unlock()
	if r, ok := registries[key]; ok {
		return r
	}
	r := newRegistry(reg, namespace, config.Labels)
	registries[key] = r
	return r
}

// labelFingerprint renders labels in a stable order so equal label sets map
// to the same registry key.
func labelFingerprint(labels prometheus.Labels) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
		b.WriteByte(';')
	}
	return b.String()
}

func newRegistry(reg prometheus.Registerer, namespace string, labels prometheus.Labels) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		ChannelSends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "channel",
				Name:        "sends_total",
				Help:        "Total number of admitted sends",
				ConstLabels: labels,
			},
			[]string{"channel_name"},
		),

		ChannelDeferred: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "channel",
				Name:        "deferred_sends_total",
				Help:        "Total number of sends deferred at the high watermark",
				ConstLabels: labels,
			},
			[]string{"channel_name"},
		),

		ChannelResumes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "channel",
				Name:        "producer_resumes_total",
				Help:        "Total number of suspended producers resumed at the low watermark",
				ConstLabels: labels,
			},
			[]string{"channel_name"},
		),

		ChannelCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "channel",
				Name:        "cancelled_sends_total",
				Help:        "Total number of suspended sends cancelled before resumption",
				ConstLabels: labels,
			},
			[]string{"channel_name"},
		),

		ChannelWaterLevel: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "channel",
				Name:        "water_level",
				Help:        "Current summed weight of buffered, undelivered elements",
				ConstLabels: labels,
			},
			[]string{"channel_name"},
		),

		ChannelSuspended: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "channel",
				Name:        "suspended_producers",
				Help:        "Number of producers currently parked behind the high watermark",
				ConstLabels: labels,
			},
			[]string{"channel_name"},
		),

		SeqItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "seq",
				Name:        "items_total",
				Help:        "Total number of elements yielded by instrumented sequences",
				ConstLabels: labels,
			},
			[]string{"seq_name"},
		),

		SeqErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "seq",
				Name:        "errors_total",
				Help:        "Total number of errors yielded by instrumented sequences",
				ConstLabels: labels,
			},
			[]string{"seq_name"},
		),

		GroupTasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "taskgroup",
				Name:        "tasks_total",
				Help:        "Total number of tasks spawned in instrumented groups",
				ConstLabels: labels,
			},
			[]string{"group_name"},
		),

		GroupFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "taskgroup",
				Name:        "task_failures_total",
				Help:        "Total number of failed tasks in instrumented groups",
				ConstLabels: labels,
			},
			[]string{"group_name"},
		),

		RetryAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "taskgroup",
				Name:        "retry_attempts_total",
				Help:        "Total number of retry attempts",
				ConstLabels: labels,
			},
			[]string{"operation"},
		),
	}
}
