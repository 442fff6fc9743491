package repository

import (
	"context"
	"database/sql"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
)

const arrestColumns = "arrest_id, rec_id, officer_name, location, arrested_at, notes, created_at"

// rec_id is mutable so an arrest can be re-filed under the correct
// record; the id and created_at stay server-controlled.
var arrestAllowedUpdates = []string{"rec_id", "officer_name", "location", "arrested_at", "notes"}

// ArrestRepo mirrors the 'arrests' table.
type ArrestRepo struct{ DB *sql.DB }

func NewArrestRepo(db *sql.DB) *ArrestRepo { return &ArrestRepo{DB: db} }

// Create inserts an arrest under a criminal record. A dangling rec_id
// surfaces as ErrInvalidReference from the FK constraint.
func (r *ArrestRepo) Create(ctx context.Context, a model.Arrest) (model.Arrest, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO arrests (rec_id, officer_name, location, arrested_at, notes) VALUES (?,?,?,?,?)",
		a.RecordID, a.OfficerName, a.Location, a.ArrestedAt, a.Notes)
	if err != nil {
		return model.Arrest{}, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Arrest{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one arrest.
func (r *ArrestRepo) GetByID(ctx context.Context, id uint64) (model.Arrest, error) {
	var a model.Arrest
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+arrestColumns+" FROM arrests WHERE arrest_id=? LIMIT 1", id).
		Scan(&a.ID, &a.RecordID, &a.OfficerName, &a.Location, &a.ArrestedAt, &a.Notes, &a.CreatedAt)
	if err != nil {
		return model.Arrest{}, query.Classify(err)
	}
	return a, nil
}

// Update applies a partial payload and returns the fresh row.
func (r *ArrestRepo) Update(ctx context.Context, id uint64, payload map[string]any) (model.Arrest, error) {
	uq, err := query.BuildUpdate("arrests", "arrest_id", id, payload, arrestAllowedUpdates)
	if err != nil {
		return model.Arrest{}, err
	}
	if _, err := r.DB.ExecContext(ctx, uq.SQL, uq.Args...); err != nil {
		return model.Arrest{}, query.Classify(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes an arrest.
func (r *ArrestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM arrests WHERE arrest_id=?", id)
	if err != nil {
		return query.Classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return query.ErrNotFound
	}
	return nil
}

// List returns a page of arrests, optionally narrowed to one record,
// with a term search over officer and location.
func (r *ArrestRepo) List(ctx context.Context, recordID uint64, term string, page, limit int) ([]model.Arrest, query.Pagination, error) {
	q := query.NewSearch("arrests", arrestColumns, "arrested_at DESC", page, limit).
		AddSearchGroup([]string{"officer_name", "location"}, term)
	if recordID != 0 {
		q.AddCondition("rec_id", recordID)
	}

	total, err := countFor(ctx, r.DB, q)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	dataSQL, dataArgs := q.DataSQL()
	rows, err := r.DB.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	defer rows.Close()

	out := make([]model.Arrest, 0, q.Limit())
	for rows.Next() {
		var a model.Arrest
		if err := rows.Scan(&a.ID, &a.RecordID, &a.OfficerName, &a.Location,
			&a.ArrestedAt, &a.Notes, &a.CreatedAt); err != nil {
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	return out, query.NewPagination(total, q.Page(), q.Limit()), nil
}
