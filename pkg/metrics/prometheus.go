package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	EmailsImported     prometheus.Counter
	TripsCreated       prometheus.Counter
	ItemsParsed        *prometheus.CounterVec
	CurrencyFallbacks  prometheus.Counter
	RemindersDelivered prometheus.Counter
	ImportTime         prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		EmailsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_imported_total",
			Help:      "The total number of imported booking emails",
		}),
		TripsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_created_total",
			Help:      "The total number of trips created from imports",
		}),
		ItemsParsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_parsed_total",
			Help:      "The total number of itinerary items extracted from emails",
		}, []string{"type"}),
		CurrencyFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "currency_fallbacks_total",
			Help:      "The total number of conversions served from offline rates",
		}),
		RemindersDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_delivered_total",
			Help:      "The total number of reminders dispatched",
		}),
		ImportTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "email_import_time_seconds",
			Help:      "Time taken to import booking emails",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
