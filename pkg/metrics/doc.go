// Package metrics provides Prometheus instrumentation for seqflow components.
//
// # Quick Start
//
// Components are instrumented through their own surface:
//
//	ch, src, _ := channel.New(channel.DefaultConfig[int]())
//	ch.EnableMetrics(metrics.DefaultConfig(), "ingest")
//
//	s := seq.Instrumented(upstream, metrics.DefaultConfig(), "events")
//
//	g, _ := taskgroup.New(ctx)
//	g.EnableMetrics(metrics.DefaultConfig(), "workers")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Available Metrics
//
// Channel metrics (label: channel_name):
//
//   - seqflow_channel_sends_total: admitted sends
//   - seqflow_channel_deferred_sends_total: sends deferred at the high watermark
//   - seqflow_channel_producer_resumes_total: producers resumed at the low watermark
//   - seqflow_channel_cancelled_sends_total: suspended sends cancelled before resumption
//   - seqflow_channel_water_level: summed weight of buffered elements
//   - seqflow_channel_suspended_producers: producers parked behind the high watermark
//
// Sequence metrics (label: seq_name):
//
//   - seqflow_seq_items_total: elements yielded by instrumented sequences
//   - seqflow_seq_errors_total: terminal errors yielded by instrumented sequences
//
// Task group metrics (labels: group_name, operation):
//
//   - seqflow_taskgroup_tasks_total: tasks spawned
//   - seqflow_taskgroup_task_failures_total: failed tasks
//   - seqflow_taskgroup_retry_attempts_total: retry attempts
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation, Namespace to rename the
// metric prefix, and Labels to tag every collector:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:   true,
//		Registry:  registry,
//		Namespace: "myapp",
//		Labels:    prometheus.Labels{"service": "ingest"},
//	}
//	ch.EnableMetrics(config, "ingest")
//
// Registries are memoized per registerer, namespace, and label set, so
// components sharing a configuration share one collector set and never
// double-register.
package metrics
