package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors emitted by the news pipeline.
type Metrics struct {
	FetchAttempts   *prometheus.CounterVec
	TickerResults   *prometheus.CounterVec
	Extractions     *prometheus.CounterVec
	Summaries       *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_digest",
			Name:      "fetch_attempts_total",
			Help:      "News metadata fetch attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		TickerResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_digest",
			Name:      "ticker_results_total",
			Help:      "Per-ticker results by outcome.",
		}, []string{"outcome"}),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_digest",
			Name:      "article_extractions_total",
			Help:      "Article extraction attempts by outcome.",
		}, []string{"outcome"}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_digest",
			Name:      "summaries_total",
			Help:      "Summary generation calls by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "news_digest",
			Name:      "request_duration_seconds",
			Help:      "Duration of news aggregation requests.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}, []string{"status"}),
	}

	reg.MustRegister(m.FetchAttempts, m.TickerResults, m.Extractions, m.Summaries, m.RequestDuration)
	return m
}

// NewNop returns collectors registered on a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
