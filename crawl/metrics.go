package crawl

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Page outcomes recorded by Metrics.Pages.
const (
	OutcomeSaved    = "saved"
	OutcomeEntry    = "entry"
	OutcomeNotFound = "not_found"
	OutcomeSkipped  = "skipped"
)

// Metrics collects crawl counters in a private Prometheus registry so a run
// can be exported to a node_exporter textfile when it ends.
type Metrics struct {
	Registry *prometheus.Registry

	Pages         *prometheus.CounterVec
	Retries       prometheus.Counter
	Bytes         prometheus.Counter
	FetchDuration prometheus.Histogram
	Pending       prometheus.Gauge
}

// NewMetrics creates and registers the crawl metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wikidoc",
			Subsystem: "crawl",
			Name:      "pages_total",
			Help:      "Pages processed by outcome.",
		}, []string{"outcome"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wikidoc",
			Subsystem: "crawl",
			Name:      "fetch_retries_total",
			Help:      "Fetch attempts repeated after a transport error.",
		}),
		Bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wikidoc",
			Subsystem: "crawl",
			Name:      "markdown_bytes_total",
			Help:      "Markdown bytes written to the corpus.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wikidoc",
			Subsystem: "crawl",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching a page including retries.",
			Buckets:   prometheus.DefBuckets,
		}),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wikidoc",
			Subsystem: "crawl",
			Name:      "frontier_pending",
			Help:      "Identifiers waiting to be fetched.",
		}),
	}
	m.Registry.MustRegister(m.Pages, m.Retries, m.Bytes, m.FetchDuration, m.Pending)
	return m
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func (m *Metrics) page(outcome string) {
	if m == nil {
		return
	}
	m.Pages.WithLabelValues(outcome).Inc()
}

func (m *Metrics) retry() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}

func (m *Metrics) written(n int) {
	if m == nil {
		return
	}
	m.Bytes.Add(float64(n))
}

func (m *Metrics) fetched(seconds float64) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(seconds)
}

func (m *Metrics) pending(n int) {
	if m == nil {
		return
	}
	m.Pending.Set(float64(n))
}
