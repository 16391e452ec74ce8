package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so several servers can live in one
// process (tests) without duplicate registration panics.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	filmQueries     *prometheus.CounterVec
	datasetFilms    prometheus.Gauge
	datasetYears    prometheus.Gauge
	datasetLoads    *prometheus.CounterVec
	datasetLoadedAt prometheus.Gauge
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		filmQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "film_queries_total",
				Help: "Total number of dataset queries by operation and outcome",
			},
			[]string{"operation", "outcome"}, // outcome: ok or an errs code
		),
		datasetFilms: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_films",
				Help: "Number of films in the served snapshot",
			},
		),
		datasetYears: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_years",
				Help: "Number of distinct years in the served snapshot",
			},
		),
		datasetLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataset_loads_total",
				Help: "Total number of dataset load attempts",
			},
			[]string{"result"},
		),
		datasetLoadedAt: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_loaded_timestamp_seconds",
				Help: "Unix time of the last successful dataset load",
			},
		),
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveFilmQuery(operation, outcome string) {
	c.filmQueries.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) DatasetLoaded(films, years int) {
	c.datasetFilms.Set(float64(films))
	c.datasetYears.Set(float64(years))
	c.datasetLoads.WithLabelValues("success").Inc()
	c.datasetLoadedAt.SetToCurrentTime()
}

func (c *Collector) DatasetLoadFailed(error) {
	c.datasetLoads.WithLabelValues("failure").Inc()
}
