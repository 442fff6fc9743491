package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
)

const citizenColumns = "cit_id, first_name, last_name, national_id, dob, gender, address, city, phone, photo_url, created_at, updated_at"

// Mutable citizen columns; cit_id and the audit timestamps are excluded
// so a client echoing back a full resource cannot move a primary key.
var citizenAllowedUpdates = []string{
	"first_name", "last_name", "national_id", "dob", "gender",
	"address", "city", "phone", "photo_url",
}

// CitizenSearchColumns are the columns the free-text search matches.
var CitizenSearchColumns = []string{"first_name", "last_name", "national_id", "address", "city"}

// CitizenRepo mirrors the 'citizens' table.
type CitizenRepo struct{ DB *sql.DB }

func NewCitizenRepo(db *sql.DB) *CitizenRepo { return &CitizenRepo{DB: db} }

// Create inserts a citizen and returns the stored row.
func (r *CitizenRepo) Create(ctx context.Context, c model.Citizen) (model.Citizen, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO citizens (first_name, last_name, national_id, dob, gender, address, city, phone) VALUES (?,?,?,?,?,?,?,?)",
		c.FirstName, c.LastName, c.NationalID, c.DOB, c.Gender, c.Address, c.City, c.Phone)
	if err != nil {
		return model.Citizen{}, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Citizen{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one citizen.
func (r *CitizenRepo) GetByID(ctx context.Context, id uint64) (model.Citizen, error) {
	var c model.Citizen
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+citizenColumns+" FROM citizens WHERE cit_id=? LIMIT 1", id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.NationalID, &c.DOB, &c.Gender,
			&c.Address, &c.City, &c.Phone, &c.PhotoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Citizen{}, query.Classify(err)
	}
	return c, nil
}

// Update applies a partial payload and returns the fresh row. Unknown
// payload keys are dropped by the builder, so clients may send back the
// whole resource.
func (r *CitizenRepo) Update(ctx context.Context, id uint64, payload map[string]any) (model.Citizen, error) {
	uq, err := query.BuildUpdate("citizens", "cit_id", id, payload, citizenAllowedUpdates)
	if err != nil {
		return model.Citizen{}, err
	}
	if _, err := r.DB.ExecContext(ctx, uq.SQL, uq.Args...); err != nil {
		return model.Citizen{}, query.Classify(err)
	}
	// MySQL reports zero affected rows for identical values, so existence
	// is decided by the re-read, not by RowsAffected.
	return r.GetByID(ctx, id)
}

// SetPhotoURL records the object-store location of the citizen's photo.
func (r *CitizenRepo) SetPhotoURL(ctx context.Context, id uint64, url string) (model.Citizen, error) {
	return r.Update(ctx, id, map[string]any{"photo_url": url})
}

// Delete removes a citizen.
func (r *CitizenRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM citizens WHERE cit_id=?", id)
	if err != nil {
		return query.Classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return query.ErrNotFound
	}
	return nil
}

// List returns a page of citizens. City and gender filter by equality;
// term matches the free-text columns. The COUNT(*) runs concurrently
// with the row query since the two reads are independent.
func (r *CitizenRepo) List(ctx context.Context, city, gender, term string, page, limit int) ([]model.Citizen, query.Pagination, error) {
	q := query.NewSearch("citizens", citizenColumns, "last_name ASC, first_name ASC", page, limit).
		AddCondition("city", city).
		AddCondition("gender", gender).
		AddSearchGroup(CitizenSearchColumns, term)

	type countResult struct {
		total int64
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		total, err := countFor(ctx, r.DB, q)
		countCh <- countResult{total, err}
	}()

	dataSQL, dataArgs := q.DataSQL()
	rows, err := r.DB.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		<-countCh
		return nil, query.Pagination{}, query.Classify(err)
	}
	defer rows.Close()

	out := make([]model.Citizen, 0, q.Limit())
	for rows.Next() {
		var c model.Citizen
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.NationalID, &c.DOB,
			&c.Gender, &c.Address, &c.City, &c.Phone, &c.PhotoURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			<-countCh
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		<-countCh
		return nil, query.Pagination{}, query.Classify(err)
	}

	cr := <-countCh
	if cr.err != nil {
		return nil, query.Pagination{}, cr.err
	}
	return out, query.NewPagination(cr.total, q.Page(), q.Limit()), nil
}

// PassportRepo mirrors the 'passports' table.
type PassportRepo struct{ DB *sql.DB }

func NewPassportRepo(db *sql.DB) *PassportRepo { return &PassportRepo{DB: db} }

// PassportSearchColumns are the columns the free-text search matches.
var PassportSearchColumns = []string{"passport_no", "country"}

const passportColumns = "passport_id, cit_id, passport_no, country, issued_at, expires_at, created_at"

// Create inserts a passport for a citizen.
func (r *PassportRepo) Create(ctx context.Context, p model.Passport) (model.Passport, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO passports (cit_id, passport_no, country, issued_at, expires_at) VALUES (?,?,?,?,?)",
		p.CitizenID, p.PassportNo, p.Country, p.IssuedAt, p.ExpiresAt)
	if err != nil {
		return model.Passport{}, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Passport{}, err
	}
	p.ID = uint64(id)
	p.CreatedAt = time.Now().UTC()
	return p, nil
}

// ListByCitizen returns all passports held by one citizen.
func (r *PassportRepo) ListByCitizen(ctx context.Context, citizenID uint64) ([]model.Passport, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+passportColumns+" FROM passports WHERE cit_id=? ORDER BY issued_at DESC", citizenID)
	if err != nil {
		return nil, query.Classify(err)
	}
	defer rows.Close()

	var out []model.Passport
	for rows.Next() {
		var p model.Passport
		if err := rows.Scan(&p.ID, &p.CitizenID, &p.PassportNo, &p.Country,
			&p.IssuedAt, &p.ExpiresAt, &p.CreatedAt); err != nil {
			return nil, query.Classify(err)
		}
		out = append(out, p)
	}
	return out, query.Classify(rows.Err())
}

// Search returns a page of passports matching the free-text term.
func (r *PassportRepo) Search(ctx context.Context, term string, page, limit int) ([]model.Passport, query.Pagination, error) {
	q := query.NewSearch("passports", passportColumns, "passport_no ASC", page, limit).
		AddSearchGroup(PassportSearchColumns, term)

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

	out := make([]model.Passport, 0, q.Limit())
	for rows.Next() {
		var p model.Passport
		if err := rows.Scan(&p.ID, &p.CitizenID, &p.PassportNo, &p.Country,
			&p.IssuedAt, &p.ExpiresAt, &p.CreatedAt); err != nil {
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	return out, query.NewPagination(total, q.Page(), q.Limit()), nil
}
