package db_test

import (
	"context"
	"testing"

	"newscheck/internal/models"
	"newscheck/internal/testutil"
)

func TestIncrementOutcome(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := db.IncrementOutcome(ctx, models.DecisionTrustModel, string(models.LabelReal)); err != nil {
			t.Fatalf("IncrementOutcome() error = %v", err)
		}
	}
	if err := db.IncrementOutcome(ctx, models.DecisionFallback, string(models.LabelUncertain)); err != nil {
		t.Fatalf("IncrementOutcome() error = %v", err)
	}

	counts, err := db.GetAllOutcomeCounts(ctx)
	if err != nil {
		t.Fatalf("GetAllOutcomeCounts() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(counts))
	}

	got := map[string]int64{}
	for _, c := range counts {
		got[c.Decision+"/"+c.Label] = c.Count
		if c.LastSeenAt.IsZero() {
			t.Errorf("LastSeenAt not set for %s/%s", c.Decision, c.Label)
		}
	}
	if got["trust_model/real"] != 3 {
		t.Errorf("trust_model/real = %d, want 3", got["trust_model/real"])
	}
	if got["fallback/uncertain"] != 1 {
		t.Errorf("fallback/uncertain = %d, want 1", got["fallback/uncertain"])
	}
}

func TestGetAllOutcomeCounts_Empty(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	counts, err := db.GetAllOutcomeCounts(context.Background())
	if err != nil {
		t.Fatalf("GetAllOutcomeCounts() error = %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no rows, got %d", len(counts))
	}
}
