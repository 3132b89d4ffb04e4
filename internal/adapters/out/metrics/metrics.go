// Package metrics exposes workflow and notification counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements workflow.Metrics and notify.QueueMetrics. Every
// collector lives in its own registry so tests can create as many
// instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	Transitions          *prometheus.CounterVec
	OperationFailures    *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	QueueEvents          *prometheus.CounterVec
	BrokerAssignments    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preclear_shipment_transitions_total",
			Help: "Applied shipment status transitions by source and target status",
		}, []string{"from", "to"}),

		OperationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preclear_workflow_failures_total",
			Help: "Failed workflow operations by operation and error kind",
		}, []string{"operation", "kind"}),

		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preclear_notification_rejections_total",
			Help: "Notifications the workflow could not hand to the notifier, by recipient role",
		}, []string{"role"}),

		QueueEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preclear_notification_queue_events_total",
			Help: "Notification queue events: queued, dropped, delivered, failed",
		}, []string{"event"}),

		BrokerAssignments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preclear_broker_assignment_runs_total",
			Help: "Broker assignment job runs by outcome",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) TransitionApplied(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) OperationFailed(operation, kind string) {
	m.OperationFailures.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) NotificationFailed(role string) {
	m.NotificationFailures.WithLabelValues(role).Inc()
}

// QueueMetrics adapts the queue counters to notify.QueueMetrics, whose
// NotificationFailed method takes no role.
func (m *Metrics) QueueMetrics() QueueMetrics {
	return QueueMetrics{events: m.QueueEvents}
}

// AssignmentRun records the outcome of one broker assignment job run:
// assigned, idle or error.
func (m *Metrics) AssignmentRun(outcome string) {
	m.BrokerAssignments.WithLabelValues(outcome).Inc()
}

type QueueMetrics struct {
	events *prometheus.CounterVec
}

func (q QueueMetrics) NotificationQueued()    { q.events.WithLabelValues("queued").Inc() }
func (q QueueMetrics) NotificationDropped()   { q.events.WithLabelValues("dropped").Inc() }
func (q QueueMetrics) NotificationDelivered() { q.events.WithLabelValues("delivered").Inc() }
func (q QueueMetrics) NotificationFailed()    { q.events.WithLabelValues("failed").Inc() }
