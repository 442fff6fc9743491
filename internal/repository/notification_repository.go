package repository

import (
	"context"
	"database/sql"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
)

const notificationColumns = "notif_id, title, body, created_by, ip_address, latitude, longitude, city, country, created_at"

// NotificationRepo mirrors the 'notifications' table.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification with whatever geolocation the lookup
// produced; the coordinate fields stay NULL when it failed.
func (r *NotificationRepo) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (title, body, created_by, ip_address, latitude, longitude, city, country) VALUES (?,?,?,?,?,?,?,?)",
		n.Title, n.Body, n.CreatedBy, n.IPAddress, n.Latitude, n.Longitude, n.City, n.Country)
	if err != nil {
		return model.Notification{}, query.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Notification{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one notification.
func (r *NotificationRepo) GetByID(ctx context.Context, id uint64) (model.Notification, error) {
	var n model.Notification
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE notif_id=? LIMIT 1", id).
		Scan(&n.ID, &n.Title, &n.Body, &n.CreatedBy, &n.IPAddress,
			&n.Latitude, &n.Longitude, &n.City, &n.Country, &n.CreatedAt)
	if err != nil {
		return model.Notification{}, query.Classify(err)
	}
	return n, nil
}

// Delete removes a notification.
func (r *NotificationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notifications WHERE notif_id=?", id)
	if err != nil {
		return query.Classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return query.ErrNotFound
	}
	return nil
}

// List returns a page of notifications, newest first, optionally
// filtered by country and matched against title/body.
func (r *NotificationRepo) List(ctx context.Context, country, term string, page, limit int) ([]model.Notification, query.Pagination, error) {
	q := query.NewSearch("notifications", notificationColumns, "created_at DESC", page, limit).
		AddCondition("country", country).
		AddSearchGroup([]string{"title", "body"}, term)

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

	out := make([]model.Notification, 0, q.Limit())
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedBy, &n.IPAddress,
			&n.Latitude, &n.Longitude, &n.City, &n.Country, &n.CreatedAt); err != nil {
			return nil, query.Pagination{}, query.Classify(err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, query.Classify(err)
	}
	return out, query.NewPagination(total, q.Page(), q.Limit()), nil
}

// NearbyRow is a notification annotated with its distance from the
// query point.
type NearbyRow struct {
	model.Notification
	DistanceKm float64
}

// Nearby returns notifications within radiusKm of (lat, lon), nearest
// first, using a haversine expression evaluated in SQL. Rows without
// coordinates are excluded by the NULL checks before the math runs.
func (r *NotificationRepo) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]NearbyRow, error) {
	if limit < 1 || limit > query.MaxLimit {
		limit = 20
	}
	const nearbySQL = `SELECT ` + notificationColumns + `,
		(6371 * ACOS(
			COS(RADIANS(?)) * COS(RADIANS(latitude)) * COS(RADIANS(longitude) - RADIANS(?)) +
			SIN(RADIANS(?)) * SIN(RADIANS(latitude))
		)) AS distance_km
		FROM notifications
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		HAVING distance_km <= ?
		ORDER BY distance_km ASC
		LIMIT ?`

	rows, err := r.DB.QueryContext(ctx, nearbySQL, lat, lon, lat, radiusKm, limit)
	if err != nil {
		return nil, query.Classify(err)
	}
	defer rows.Close()

	out := make([]NearbyRow, 0, limit)
	for rows.Next() {
		var n NearbyRow
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedBy, &n.IPAddress,
			&n.Latitude, &n.Longitude, &n.City, &n.Country, &n.CreatedAt, &n.DistanceKm); err != nil {
			return nil, query.Classify(err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Classify(err)
	}
	return out, nil
}
