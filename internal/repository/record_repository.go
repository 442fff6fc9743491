package repository

import (
	"context"
	"database/sql"

	"github.com/openjustice/crimetrack/internal/dbx"
	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
)

const recordColumns = "rec_id, cit_id, crime_type, description, status, date_committed, created_by, created_at, updated_at"

// Mutable record columns; rec_id, created_by and the audit timestamps
// stay server-controlled.
var recordAllowedUpdates = []string{"cit_id", "crime_type", "description", "status", "date_committed"}

// RecordRepo mirrors the 'criminal_records' table and owns the arrests
// that hang off each record.
type RecordRepo struct{ DB *sql.DB }

func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{DB: db} }

// RecordDetail is a criminal record with its arrests grouped under it.
type RecordDetail struct {
	Record  model.CriminalRecord
	Arrests []model.Arrest
}

// Create inserts a record stamped with the creating user and returns
// the stored row.
func (r *RecordRepo) Create(ctx context.Context, rec model.CriminalRecord, createdBy uint64) (model.CriminalRecord, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO criminal_records (cit_id, crime_type, description, status, date_committed, created_by) VALUES (?,?,?,?,?,?)",
		rec.CitizenID, rec.CrimeType, rec.Description, rec.Status, rec.DateCommitted, createdBy)
	if err != nil {
		return model.CriminalRecord{}, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CriminalRecord{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one record.
func (r *RecordRepo) GetByID(ctx context.Context, id uint64) (model.CriminalRecord, error) {
	var rec model.CriminalRecord
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM criminal_records WHERE rec_id=? LIMIT 1", id).
		Scan(&rec.ID, &rec.CitizenID, &rec.CrimeType, &rec.Description, &rec.Status,
			&rec.DateCommitted, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return model.CriminalRecord{}, query.Classify(err)
	}
	return rec, nil
}

// GetDetail joins the record with its arrests, newest arrest first.
func (r *RecordRepo) GetDetail(ctx context.Context, id uint64) (RecordDetail, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return RecordDetail{}, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT arrest_id, rec_id, officer_name, location, arrested_at, notes, created_at FROM arrests WHERE rec_id=? ORDER BY arrested_at DESC",
		id)
	if err != nil {
		return RecordDetail{}, query.Classify(err)
	}
	defer rows.Close()

	detail := RecordDetail{Record: rec, Arrests: []model.Arrest{}}
	for rows.Next() {
		var a model.Arrest
		if err := rows.Scan(&a.ID, &a.RecordID, &a.OfficerName, &a.Location,
			&a.ArrestedAt, &a.Notes, &a.CreatedAt); err != nil {
			return RecordDetail{}, query.Classify(err)
		}
		detail.Arrests = append(detail.Arrests, a)
	}
	if err := rows.Err(); err != nil {
		return RecordDetail{}, query.Classify(err)
	}
	return detail, nil
}

// Update applies a partial payload and returns the fresh row.
func (r *RecordRepo) Update(ctx context.Context, id uint64, payload map[string]any) (model.CriminalRecord, error) {
	uq, err := query.BuildUpdate("criminal_records", "rec_id", id, payload, recordAllowedUpdates)
	if err != nil {
		return model.CriminalRecord{}, err
	}
	if _, err := r.DB.ExecContext(ctx, uq.SQL, uq.Args...); err != nil {
		return model.CriminalRecord{}, query.Classify(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a record and its arrests atomically: either both
// deletes commit or neither does.
func (r *RecordRepo) Delete(ctx context.Context, id uint64) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM arrests WHERE rec_id=?", id); err != nil {
			return query.Classify(err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM criminal_records WHERE rec_id=?", id)
		if err != nil {
			return query.Classify(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return query.ErrNotFound
		}
		return nil
	})
}

// List returns a page of records filtered by crime type, status and
// citizen, with a term search over type and description.
func (r *RecordRepo) List(ctx context.Context, crimeType, status string, citizenID uint64, term string, page, limit int) ([]model.CriminalRecord, query.Pagination, error) {
	q := query.NewSearch("criminal_records", recordColumns, "created_at DESC", page, limit).
		AddCondition("crime_type", crimeType).
		AddCondition("status", status).
		AddSearchGroup([]string{"crime_type", "description"}, term)
	if citizenID != 0 {
		q.AddCondition("cit_id", citizenID)
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

	out := make([]model.CriminalRecord, 0, q.Limit())
	for rows.Next() {
		var rec model.CriminalRecord
		if err := rows.Scan(&rec.ID, &rec.CitizenID, &rec.CrimeType, &rec.Description,
			&rec.Status, &rec.DateCommitted, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	return out, query.NewPagination(total, q.Page(), q.Limit()), nil
}
