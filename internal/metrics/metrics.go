package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TranslationsTotal counts translation attempts, labeled by provider and outcome.
	TranslationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlsql_translations_total",
		Help: "The total number of natural-language to SQL translations",
	}, []string{"provider", "status"}) // status: success, error

	// TranslationDuration measures end-to-end time for one translation.
	TranslationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nlsql_translation_duration_seconds",
		Help:    "Time taken to translate a query, including the provider call",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	// QueryRequests counts incoming API requests, labeled by status.
	QueryRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlsql_query_requests_total",
		Help: "The total number of received query requests",
	}, []string{"status"}) // status: accepted, invalid, rejected, error

	// SchemaInspections counts schema introspection runs against the source database.
	SchemaInspections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlsql_schema_inspections_total",
		Help: "The total number of schema introspection runs",
	}, []string{"status"}) // status: success, error

	// StorageFailures counts failed history writes.
	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlsql_storage_failures_total",
		Help: "Total number of failed translation history writes",
	}, []string{"op"})
)
