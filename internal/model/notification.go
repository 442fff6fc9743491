package model

import "time"

// Notification is a row in the `notifications` table. Notifications
// are broadcast messages filed by staff; the creating request's IP
// is resolved to coordinates so notifications can be queried by
// proximity. Geolocation is best-effort: the coordinate columns are
// null when the lookup failed or the IP was private.
//
// Fields:
//  ID        – primary key identifier (notif_id).
//  Title     – short headline.
//  Body      – message body.
//  CreatedBy – user who filed the notification (FK to users.id, nullable).
//  IPAddress – request IP captured at creation.
//  Latitude  – resolved latitude (nullable).
//  Longitude – resolved longitude (nullable).
//  City      – resolved city name (nullable).
//  Country   – resolved country name (nullable).
//  CreatedAt – timestamp of creation.
type Notification struct {
	ID        uint64    // notifications.notif_id
	Title     string    // notifications.title
	Body      string    // notifications.body
	CreatedBy *uint64   // notifications.created_by (nullable)
	IPAddress string    // notifications.ip_address
	Latitude  *float64  // notifications.latitude (nullable)
	Longitude *float64  // notifications.longitude (nullable)
	City      *string   // notifications.city (nullable)
	Country   *string   // notifications.country (nullable)
	CreatedAt time.Time // notifications.created_at
}
