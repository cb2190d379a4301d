package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScrapeRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipsight_scrape_runs_total",
		Help: "Total scrape runs",
	})
	ScrapeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipsight_scrape_errors_total",
		Help: "Total scrape errors",
	})
	ScrapeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "clipsight_scrape_duration_seconds",
		Help:    "Scrape duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	CleanedRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "clipsight_cleaned_rows",
		Help: "Rows in the most recent cleaned dataset",
	})
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsight_api_requests_total",
		Help: "Total analytics API requests",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(ScrapeRuns, ScrapeErrors, ScrapeDuration, CleanedRows, APIRequests)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}

// ObserveScrapeDuration records a run duration.
func ObserveScrapeDuration(start time.Time) {
	ScrapeDuration.Observe(time.Since(start).Seconds())
}
