package repository

import (
	"context"
	"database/sql"

	"github.com/openjustice/crimetrack/internal/query"
)

// countFor runs the COUNT(*) side of a SearchQuery. The count and the
// data statement are independent reads; callers that want to overlap
// them can run countFor in its own goroutine.
func countFor(ctx context.Context, db *sql.DB, q *query.SearchQuery) (int64, error) {
	countSQL, args := q.CountSQL()
	var total int64
	if err := db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return 0, query.Classify(err)
	}
	return total, nil
}
