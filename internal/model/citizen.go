package model

import "time"

// Citizen is a row in the `citizens` table. Citizens are the
// central registry that criminal records, victims and passports
// reference. PhotoURL points at the object-store location of the
// citizen's photo and is set by the upload endpoint.
//
// Fields:
//  ID         – primary key identifier (cit_id).
//  FirstName  – given name.
//  LastName   – family name.
//  NationalID – unique national identity number.
//  DOB        – date of birth (null when unknown).
//  Gender     – free-form gender string.
//  Address    – street address.
//  City       – city of residence.
//  Phone      – contact phone number.
//  PhotoURL   – object-store URL of the citizen photo (null until uploaded).
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type Citizen struct {
	ID         uint64     // citizens.cit_id
	FirstName  string     // citizens.first_name
	LastName   string     // citizens.last_name
	NationalID string     // citizens.national_id
	DOB        *time.Time // citizens.dob (nullable)
	Gender     string     // citizens.gender
	Address    string     // citizens.address
	City       string     // citizens.city
	Phone      string     // citizens.phone
	PhotoURL   *string    // citizens.photo_url (nullable)
	CreatedAt  time.Time  // citizens.created_at
	UpdatedAt  time.Time  // citizens.updated_at
}

// Passport is a row in the `passports` table. A citizen may hold
// several passports (renewals, multiple citizenships); each row
// keeps its own validity window.
//
// Fields:
//  ID         – primary key identifier (passport_id).
//  CitizenID  – owning citizen (FK to citizens.cit_id).
//  PassportNo – unique passport number.
//  Country    – issuing country.
//  IssuedAt   – date of issue.
//  ExpiresAt  – date of expiry.
//  CreatedAt  – timestamp of creation.
type Passport struct {
	ID         uint64    // passports.passport_id
	CitizenID  uint64    // passports.cit_id
	PassportNo string    // passports.passport_no
	Country    string    // passports.country
	IssuedAt   time.Time // passports.issued_at
	ExpiresAt  time.Time // passports.expires_at
	CreatedAt  time.Time // passports.created_at
}
