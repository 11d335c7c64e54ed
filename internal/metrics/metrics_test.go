package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"newscheck/internal/classifier"
	"newscheck/internal/detector"
	"newscheck/internal/models"
)

func TestRecordDecision(t *testing.T) {
	before := testutil.ToFloat64(decisions.WithLabelValues("trust_model", "real"))

	RecordDecision("trust_model", "real")
	RecordDecision("trust_model", "real")

	after := testutil.ToFloat64(decisions.WithLabelValues("trust_model", "real"))
	if after-before != 2 {
		t.Errorf("decisions delta = %v, want 2", after-before)
	}
}

func TestRecordPredictError(t *testing.T) {
	before := testutil.ToFloat64(predictErrors.WithLabelValues("transform"))
	RecordPredictError("transform")
	if got := testutil.ToFloat64(predictErrors.WithLabelValues("transform")) - before; got != 1 {
		t.Errorf("predict errors delta = %v, want 1", got)
	}
}

func TestRecordLookup(t *testing.T) {
	before := testutil.ToFloat64(lookups.WithLabelValues("found"))
	RecordLookup("found", 150*time.Millisecond)
	if got := testutil.ToFloat64(lookups.WithLabelValues("found")) - before; got != 1 {
		t.Errorf("lookups delta = %v, want 1", got)
	}
}

func TestSetUpstreamUp(t *testing.T) {
	tests := []struct {
		name string
		up   bool
		want float64
	}{
		{"reachable", true, 1},
		{"unreachable", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetUpstreamUp(tt.up)
			if got := testutil.ToFloat64(upstreamUp); got != tt.want {
				t.Errorf("upstream gauge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObserveVerdict(t *testing.T) {
	t.Run("trusted verdict skips lookup metrics", func(t *testing.T) {
		lookupsBefore := testutil.CollectAndCount(lookups)
		decisionBefore := testutil.ToFloat64(decisions.WithLabelValues(models.DecisionTrustModel, "fake"))

		ObserveVerdict(detector.Verdict{
			Decision:       models.DecisionTrustModel,
			Classification: models.ClassificationResult{Label: models.LabelFake, Confidence: 0.9},
			Lookup:         models.LookupSkipped,
		})

		if got := testutil.ToFloat64(decisions.WithLabelValues(models.DecisionTrustModel, "fake")) - decisionBefore; got != 1 {
			t.Errorf("decisions delta = %v, want 1", got)
		}
		if got := testutil.CollectAndCount(lookups); got != lookupsBefore {
			t.Errorf("lookup series = %d, want %d", got, lookupsBefore)
		}
	})

	t.Run("failed prediction and lookup", func(t *testing.T) {
		errBefore := testutil.ToFloat64(predictErrors.WithLabelValues("model"))
		failedBefore := testutil.ToFloat64(lookups.WithLabelValues(models.LookupFailed))

		ObserveVerdict(detector.Verdict{
			Decision:       models.DecisionFallback,
			Classification: classifier.Failed(),
			PredictErr:     &classifier.PredictError{Kind: classifier.KindModel, Err: classifier.ErrNonFiniteScore},
			Lookup:         models.LookupFailed,
			LookupDuration: time.Second,
		})

		if got := testutil.ToFloat64(predictErrors.WithLabelValues("model")) - errBefore; got != 1 {
			t.Errorf("predict errors delta = %v, want 1", got)
		}
		if got := testutil.ToFloat64(lookups.WithLabelValues(models.LookupFailed)) - failedBefore; got != 1 {
			t.Errorf("failed lookups delta = %v, want 1", got)
		}
	})
}
