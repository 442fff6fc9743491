package repository

import (
	"context"
	"database/sql"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
)

const victimColumns = "vic_id, rec_id, first_name, last_name, phone, address, created_at, updated_at"

var victimAllowedUpdates = []string{"rec_id", "first_name", "last_name", "phone", "address"}

// VictimRepo mirrors the 'victims' table.
type VictimRepo struct{ DB *sql.DB }

func NewVictimRepo(db *sql.DB) *VictimRepo { return &VictimRepo{DB: db} }

// Create inserts a victim and returns the stored row.
func (r *VictimRepo) Create(ctx context.Context, v model.Victim) (model.Victim, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO victims (rec_id, first_name, last_name, phone, address) VALUES (?,?,?,?,?)",
		v.RecordID, v.FirstName, v.LastName, v.Phone, v.Address)
	if err != nil {
		return model.Victim{}, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Victim{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one victim.
func (r *VictimRepo) GetByID(ctx context.Context, id uint64) (model.Victim, error) {
	var v model.Victim
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+victimColumns+" FROM victims WHERE vic_id=? LIMIT 1", id).
		Scan(&v.ID, &v.RecordID, &v.FirstName, &v.LastName, &v.Phone,
			&v.Address, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return model.Victim{}, query.Classify(err)
	}
	return v, nil
}

// Update applies a partial payload and returns the fresh row.
func (r *VictimRepo) Update(ctx context.Context, id uint64, payload map[string]any) (model.Victim, error) {
	uq, err := query.BuildUpdate("victims", "vic_id", id, payload, victimAllowedUpdates)
	if err != nil {
		return model.Victim{}, err
	}
	if _, err := r.DB.ExecContext(ctx, uq.SQL, uq.Args...); err != nil {
		return model.Victim{}, query.Classify(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a victim.
func (r *VictimRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM victims WHERE vic_id=?", id)
	if err != nil {
		return query.Classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return query.ErrNotFound
	}
	return nil
}

// List returns a page of victims, optionally narrowed to one record,
// with a term search over the name columns.
func (r *VictimRepo) List(ctx context.Context, recordID uint64, term string, page, limit int) ([]model.Victim, query.Pagination, error) {
	q := query.NewSearch("victims", victimColumns, "last_name ASC, first_name ASC", page, limit).
		AddSearchGroup([]string{"first_name", "last_name"}, term)
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

	out := make([]model.Victim, 0, q.Limit())
	for rows.Next() {
		var v model.Victim
		if err := rows.Scan(&v.ID, &v.RecordID, &v.FirstName, &v.LastName,
			&v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	return out, query.NewPagination(total, q.Page(), q.Limit()), nil
}
