package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"newscheck/internal/classifier"
	"newscheck/internal/db"
	"newscheck/internal/detector"
	"newscheck/internal/models"
)

var (
	outcomeDesc = prometheus.NewDesc(
		"newscheck_outcomes_total",
		"Persisted decision count by decision and label",
		[]string{"decision", "label"},
		nil,
	)

	decisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newscheck_decisions_total",
		Help: "Decisions made since process start by decision and label",
	}, []string{"decision", "label"})

	predictErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newscheck_predict_errors_total",
		Help: "Predictions downgraded to uncertain because inference failed, by failure kind",
	}, []string{"kind"})

	lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newscheck_lookups_total",
		Help: "Fallback news lookups by outcome",
	}, []string{"outcome"})

	lookupDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "newscheck_lookup_duration_seconds",
		Help:    "Latency of fallback news lookups",
		Buckets: prometheus.DefBuckets,
	})

	upstreamUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "newscheck_upstream_up",
		Help: "Whether the news search host answered the last reachability check",
	})
)

// OutcomeCollector is a custom Prometheus collector that reads persisted
// outcome counts from the database on each scrape.
type OutcomeCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *OutcomeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- outcomeDesc
}

// Collect queries the database for all outcome counts and emits them as counters.
func (c *OutcomeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.db.GetAllOutcomeCounts(ctx)
	if err != nil {
		slog.Error("failed to collect outcome metrics", "error", err)
		return
	}
	for _, o := range counts {
		ch <- prometheus.MustNewConstMetric(
			outcomeDesc,
			prometheus.CounterValue,
			float64(o.Count),
			o.Decision,
			o.Label,
		)
	}
}

// Recorder provides async outcome recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder *Recorder
	initOnce sync.Once
)

// Init registers the collectors. database may be nil, in which case outcomes
// are only counted in memory. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(decisions, predictErrors, lookups, lookupDuration, upstreamUp)
		if database != nil {
			recorder = &Recorder{db: database}
			prometheus.MustRegister(&OutcomeCollector{db: database})
		}
	})
}

// RecordDecision counts a decision and, when a database is configured,
// asynchronously persists it.
func RecordDecision(decision, label string) {
	decisions.WithLabelValues(decision, label).Inc()
	if recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.db.IncrementOutcome(ctx, decision, label); err != nil {
			slog.Error("failed to record outcome", "decision", decision, "label", label, "error", err)
		}
	}()
}

// RecordPredictError counts an inference failure of the given kind.
func RecordPredictError(kind string) {
	predictErrors.WithLabelValues(kind).Inc()
}

// RecordLookup counts a fallback lookup and its latency.
func RecordLookup(outcome string, elapsed time.Duration) {
	lookups.WithLabelValues(outcome).Inc()
	lookupDuration.Observe(elapsed.Seconds())
}

// SetUpstreamUp records the result of a reachability check.
func SetUpstreamUp(up bool) {
	if up {
		upstreamUp.Set(1)
		return
	}
	upstreamUp.Set(0)
}

// ObserveVerdict records everything a single decision produced.
func ObserveVerdict(v detector.Verdict) {
	RecordDecision(v.Decision, string(v.Classification.Label))
	if v.PredictErr != nil {
		kind := string(classifier.KindOf(v.PredictErr))
		if kind == "" {
			kind = "unknown"
		}
		RecordPredictError(kind)
	}
	if v.Lookup != models.LookupSkipped {
		RecordLookup(v.Lookup, v.LookupDuration)
	}
}
