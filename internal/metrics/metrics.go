// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts complaint operations and notification dispatch outcomes.
type Collector struct {
	registry *prometheus.Registry

	complaintsCreated      prometheus.Counter
	complaintsUpdated      prometheus.Counter
	complaintsDeleted      prometheus.Counter
	notificationsPublished *prometheus.CounterVec
	notificationsFailed    *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		complaintsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaints_created_total",
			Help: "Total number of complaints created.",
		}),
		complaintsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaints_updated_total",
			Help: "Total number of complaint updates.",
		}),
		complaintsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaints_deleted_total",
			Help: "Total number of complaints deleted.",
		}),
		notificationsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Notification messages published to the mail queue, by type.",
		}, []string{"type"}),
		notificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Notification messages that failed to publish, by type.",
		}, []string{"type"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		c.complaintsCreated,
		c.complaintsUpdated,
		c.complaintsDeleted,
		c.notificationsPublished,
		c.notificationsFailed,
	)

	return c
}

func (c *Collector) RecordComplaintCreated() { c.complaintsCreated.Inc() }
func (c *Collector) RecordComplaintUpdated() { c.complaintsUpdated.Inc() }
func (c *Collector) RecordComplaintDeleted() { c.complaintsDeleted.Inc() }

func (c *Collector) RecordNotificationPublished(mailType string) {
	c.notificationsPublished.WithLabelValues(mailType).Inc()
}

func (c *Collector) RecordNotificationFailed(mailType string) {
	c.notificationsFailed.WithLabelValues(mailType).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
