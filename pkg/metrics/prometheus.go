// Package metrics provides Prometheus metrics for pipeline runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric of a pipeline run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Input volume
	rowsLoaded         *prometheus.CounterVec
	games              prometheus.Counter
	perspectiveRecords prometheus.Counter
	teams              *prometheus.GaugeVec

	// Output
	matchups   *prometheus.CounterVec
	outputRows *prometheus.GaugeVec

	// Run health
	stageDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Configure()
}

// Configure rebuilds the global manager on a fresh registry. Values recorded
// before the call are discarded, so call it once before a run.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	all := append(append([]Option(nil), opts...), WithPrometheusRegistry(customRegistry))
	globalManager = NewManager(all...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "marchprep",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Rows kept from each input table after season filtering",
		ConstLabels: m.constLabels,
	}, []string{"table"})

	m.games = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "games_total",
		Help:        "Games read from the box-score tables",
		ConstLabels: m.constLabels,
	})

	m.perspectiveRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "perspective_records_total",
		Help:        "Team-perspective records produced by symmetrization",
		ConstLabels: m.constLabels,
	})

	m.teams = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "teams",
		Help:        "Teams in the aggregated feature table",
		ConstLabels: m.constLabels,
	}, []string{"population"})

	m.matchups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "matchups_total",
		Help:        "Matchups by population and outcome (kept, missing_seed, incomplete, unassigned)",
		ConstLabels: m.constLabels,
	}, []string{"population", "outcome"})

	m.outputRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "output_rows",
		Help:        "Rows written to each feature file by the last run",
		ConstLabels: m.constLabels,
	}, []string{"population"})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_seconds",
		Help:        "Wall time of each pipeline stage",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Pipeline runs by final status",
		ConstLabels: m.constLabels,
	}, []string{"status"})

	m.lastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time of the last successful run",
		ConstLabels: m.constLabels,
	})
}

// RecordRowsLoaded adds n rows read from table.
func RecordRowsLoaded(table string, n int) {
	globalManager.rowsLoaded.WithLabelValues(table).Add(float64(n))
}

// RecordGames adds n games.
func RecordGames(n int) {
	globalManager.games.Add(float64(n))
}

// RecordPerspectiveRecords adds n team-perspective records.
func RecordPerspectiveRecords(n int) {
	globalManager.perspectiveRecords.Add(float64(n))
}

// UpdateTeams sets the team count of a population.
func UpdateTeams(population string, n int) {
	globalManager.teams.WithLabelValues(population).Set(float64(n))
}

// RecordMatchups adds n matchups with the given outcome.
func RecordMatchups(population, outcome string, n int) {
	globalManager.matchups.WithLabelValues(population, outcome).Add(float64(n))
}

// UpdateOutputRows sets the row count written for a population.
func UpdateOutputRows(population string, n int) {
	globalManager.outputRows.WithLabelValues(population).Set(float64(n))
}

// ObserveStage records how long a stage took.
func ObserveStage(stage string, d time.Duration) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun counts a finished run.
func RecordRun(status string) {
	globalManager.runs.WithLabelValues(status).Inc()
}

// MarkSuccess stores the completion time of a successful run.
func MarkSuccess(t time.Time) {
	globalManager.lastSuccess.Set(float64(t.Unix()))
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node exporter textfile collector. Batch runs exit before any scrape.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
