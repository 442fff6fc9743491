package handler

import (
	"time"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/repository"
)

// Response views. The model package deliberately carries no json
// tags, so every handler maps rows onto one of these before
// serializing. Credential material (password hashes, token hashes)
// never appears here.

type userView struct {
	ID         uint64     `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	IsApproved bool       `json:"is_approved"`
	LastLogin  *time.Time `json:"last_login"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toUserView(u model.User) userView {
	return userView{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		IsApproved: u.IsApproved,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}

func toUserViews(us []model.User) []userView {
	out := make([]userView, 0, len(us))
	for _, u := range us {
		out = append(out, toUserView(u))
	}
	return out
}

type citizenView struct {
	ID         uint64     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	NationalID string     `json:"national_id"`
	DOB        *time.Time `json:"dob"`
	Gender     string     `json:"gender"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	Phone      string     `json:"phone"`
	PhotoURL   *string    `json:"photo_url"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toCitizenView(c model.Citizen) citizenView {
	return citizenView{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		NationalID: c.NationalID,
		DOB:        c.DOB,
		Gender:     c.Gender,
		Address:    c.Address,
		City:       c.City,
		Phone:      c.Phone,
		PhotoURL:   c.PhotoURL,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCitizenViews(cs []model.Citizen) []citizenView {
	out := make([]citizenView, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCitizenView(c))
	}
	return out
}

type passportView struct {
	ID         uint64    `json:"id"`
	CitizenID  uint64    `json:"citizen_id"`
	PassportNo string    `json:"passport_no"`
	Country    string    `json:"country"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func toPassportView(p model.Passport) passportView {
	return passportView{
		ID:         p.ID,
		CitizenID:  p.CitizenID,
		PassportNo: p.PassportNo,
		Country:    p.Country,
		IssuedAt:   p.IssuedAt,
		ExpiresAt:  p.ExpiresAt,
	}
}

func toPassportViews(ps []model.Passport) []passportView {
	out := make([]passportView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPassportView(p))
	}
	return out
}

type recordView struct {
	ID            uint64     `json:"id"`
	CitizenID     *uint64    `json:"citizen_id"`
	CrimeType     string     `json:"crime_type"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	DateCommitted *time.Time `json:"date_committed"`
	CreatedBy     *uint64    `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toRecordView(r model.CriminalRecord) recordView {
	return recordView{
		ID:            r.ID,
		CitizenID:     r.CitizenID,
		CrimeType:     r.CrimeType,
		Description:   r.Description,
		Status:        r.Status,
		DateCommitted: r.DateCommitted,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toRecordViews(rs []model.CriminalRecord) []recordView {
	out := make([]recordView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecordView(r))
	}
	return out
}

type victimView struct {
	ID        uint64    `json:"id"`
	RecordID  *uint64   `json:"record_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toVictimView(v model.Victim) victimView {
	return victimView{
		ID:        v.ID,
		RecordID:  v.RecordID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Phone:     v.Phone,
		Address:   v.Address,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func toVictimViews(vs []model.Victim) []victimView {
	out := make([]victimView, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVictimView(v))
	}
	return out
}

type arrestView struct {
	ID          uint64    `json:"id"`
	RecordID    uint64    `json:"record_id"`
	OfficerName string    `json:"officer_name"`
	Location    string    `json:"location"`
	ArrestedAt  time.Time `json:"arrested_at"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func toArrestView(a model.Arrest) arrestView {
	return arrestView{
		ID:          a.ID,
		RecordID:    a.RecordID,
		OfficerName: a.OfficerName,
		Location:    a.Location,
		ArrestedAt:  a.ArrestedAt,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
	}
}

func toArrestViews(as []model.Arrest) []arrestView {
	out := make([]arrestView, 0, len(as))
	for _, a := range as {
		out = append(out, toArrestView(a))
	}
	return out
}

type recordDetailView struct {
	recordView
	Arrests []arrestView `json:"arrests"`
}

func toRecordDetailView(d repository.RecordDetail) recordDetailView {
	return recordDetailView{
		recordView: toRecordView(d.Record),
		Arrests:    toArrestViews(d.Arrests),
	}
}

type notificationView struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy *uint64   `json:"created_by"`
	IPAddress string    `json:"ip_address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	City      *string   `json:"city"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationView(n model.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		CreatedBy: n.CreatedBy,
		IPAddress: n.IPAddress,
		Latitude:  n.Latitude,
		Longitude: n.Longitude,
		City:      n.City,
		Country:   n.Country,
		CreatedAt: n.CreatedAt,
	}
}

func toNotificationViews(ns []model.Notification) []notificationView {
	out := make([]notificationView, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNotificationView(n))
	}
	return out
}

type nearbyView struct {
	notificationView
	DistanceKm float64 `json:"distance_km"`
}

func toNearbyViews(rows []repository.NearbyRow) []nearbyView {
	out := make([]nearbyView, 0, len(rows))
	for _, r := range rows {
		out = append(out, nearbyView{
			notificationView: toNotificationView(r.Notification),
			DistanceKm:       r.DistanceKm,
		})
	}
	return out
}
