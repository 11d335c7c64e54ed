package models

import "time"

// Decision states of the hybrid policy.
const (
	DecisionTrustModel = "trust_model"
	DecisionFallback   = "fallback"
)

// Lookup outcome constants, used for metrics.
const (
	LookupSkipped  = "skipped"
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupFailed   = "failed"
)

// OutcomeCount is a persisted per-decision hit count.
type OutcomeCount struct {
	Decision   string
	Label      string
	Count      int64
	LastSeenAt time.Time
}
