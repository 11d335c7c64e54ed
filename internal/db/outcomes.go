package db

import (
	"context"

	"newscheck/internal/models"
)

// IncrementOutcome upserts the hit count for a decision/label pair.
func (d *DB) IncrementOutcome(ctx context.Context, decision, label string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO outcome_counts (decision, label, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (decision, label) DO UPDATE
		SET count = outcome_counts.count + 1, last_seen_at = NOW()
	`, decision, label)
	return err
}

// GetAllOutcomeCounts returns all outcome rows for metrics export.
func (d *DB) GetAllOutcomeCounts(ctx context.Context) ([]models.OutcomeCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT decision, label, count, last_seen_at
		FROM outcome_counts
		ORDER BY decision, label
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.OutcomeCount
	for rows.Next() {
		var o models.OutcomeCount
		if err := rows.Scan(&o.Decision, &o.Label, &o.Count, &o.LastSeenAt); err != nil {
			return nil, err
		}
		counts = append(counts, o)
	}
	return counts, rows.Err()
}
