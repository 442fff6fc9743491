// Package repository implements the data access layer over MySQL. Every
// repo is a thin struct around the shared *sql.DB pool; partial updates
// and paginated lists are delegated to the query package so allow-list
// filtering, placeholder bookkeeping and error classification live in
// one place.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/openjustice/crimetrack/internal/dbx"
	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
	"github.com/openjustice/crimetrack/internal/utils"
)

const userColumns = "id, full_name, email, password_hash, role, is_verified, is_approved, last_login, created_at, updated_at"

// userAllowedUpdates is the allow-list of mutable user columns. The id,
// email, password hash and audit timestamps are never client-settable
// through the generic update path.
var userAllowedUpdates = []string{"full_name", "role", "is_verified", "is_approved"}

// UserRepo mirrors the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts an unverified, unapproved user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, fullName, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (full_name, email, password_hash, role, is_verified, is_approved) VALUES (?,?,?,?,0,0)",
		fullName, email, hash, role)
	if err != nil {
		return 0, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepo) scanRow(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsVerified, &u.IsApproved, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, query.Classify(err)
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ResolveIdentity is the liveness lookup used by the auth middleware on
// every protected request: a deleted user invalidates otherwise-valid
// tokens immediately.
func (r *UserRepo) ResolveIdentity(ctx context.Context, id uint64) (model.Identity, error) {
	var ident model.Identity
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, role, full_name FROM users WHERE id=? LIMIT 1", id).
		Scan(&ident.UserID, &ident.Email, &ident.Role, &ident.FullName)
	if err != nil {
		return model.Identity{}, query.Classify(err)
	}
	return ident, nil
}

// MarkVerified flips is_verified after the email-verification flow.
func (r *UserRepo) MarkVerified(ctx context.Context, id uint64) error {
	return r.execOne(ctx, "UPDATE users SET is_verified=1 WHERE id=?", id)
}

// Approve flips is_approved; only admins reach this path.
func (r *UserRepo) Approve(ctx context.Context, id uint64) error {
	return r.execOne(ctx, "UPDATE users SET is_approved=1 WHERE id=?", id)
}

// TouchLastLogin stamps a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET last_login=NOW() WHERE id=?", id)
	return query.Classify(err)
}

// Update applies a partial payload through the shared builder and
// returns the fresh row.
func (r *UserRepo) Update(ctx context.Context, id uint64, payload map[string]any) (model.User, error) {
	uq, err := query.BuildUpdate("users", "id", id, payload, userAllowedUpdates)
	if err != nil {
		return model.User{}, err
	}
	if _, err := r.DB.ExecContext(ctx, uq.SQL, uq.Args...); err != nil {
		return model.User{}, query.Classify(err)
	}
	return r.GetByID(ctx, id)
}

// List returns a page of users, optionally filtered by role and
// approval state, with a term search over name and email.
func (r *UserRepo) List(ctx context.Context, role string, approved *bool, term string, page, limit int) ([]model.User, query.Pagination, error) {
	q := query.NewSearch("users", userColumns, "created_at DESC", page, limit).
		AddCondition("role", role).
		AddSearchGroup([]string{"full_name", "email"}, term)
	if approved != nil {
		q.AddCondition("is_approved", *approved)
	}

	countSQL, countArgs := q.CountSQL()
	var total int64
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}

	dataSQL, dataArgs := q.DataSQL()
	rows, err := r.DB.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	defer rows.Close()

	out := make([]model.User, 0, q.Limit())
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role,
			&u.IsVerified, &u.IsApproved, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	return out, query.NewPagination(total, q.Page(), q.Limit()), nil
}

// Delete removes a user and their refresh tokens in one transaction so
// no orphaned credentials survive a partial failure.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id=?", id); err != nil {
			return query.Classify(err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
		if err != nil {
			return query.Classify(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return query.ErrNotFound
		}
		return nil
	})
}

// execOne runs a single-row UPDATE and maps a zero match to ErrNotFound.
func (r *UserRepo) execOne(ctx context.Context, sqlText string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, sqlText, args...)
	if err != nil {
		return query.Classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is missing or the flag was already set; a
		// follow-up existence probe keeps the two cases apart.
		var one int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", args[len(args)-1]).Scan(&one); err != nil {
			return query.Classify(err)
		}
	}
	return nil
}
