package entityanalyzer

import "github.com/prometheus/client_golang/prometheus"

var (
	processingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "semextract_analysis_duration_seconds",
			Help: "Time spent analyzing documents",
		},
		[]string{"status"},
	)

	documentsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "semextract_documents_processed_total",
			Help: "Number of documents analyzed",
		},
	)

	entitiesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semextract_entities_published_total",
			Help: "Number of entities published to the graph",
		},
		[]string{"schema"},
	)

	processingErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semextract_processing_errors_total",
			Help: "Number of failed analysis jobs",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(processingDuration)
	prometheus.MustRegister(documentsProcessed)
	prometheus.MustRegister(entitiesPublished)
	prometheus.MustRegister(processingErrors)
}
