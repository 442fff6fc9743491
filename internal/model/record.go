package model

import "time"

// CriminalRecord is a row in the `criminal_records` table. Each
// record ties a crime to a citizen and to the staff user who filed
// it. CreatedBy is never client-settable; it is stamped from the
// authenticated identity at insert time.
//
// Fields:
//  ID            – primary key identifier (rec_id).
//  CitizenID     – accused citizen (FK to citizens.cit_id, nullable when unidentified).
//  CrimeType     – category of the crime (e.g. Theft, Assault).
//  Description   – free-form case description.
//  Status        – case state (OPEN, CLOSED, PENDING).
//  DateCommitted – when the crime took place.
//  CreatedBy     – user who filed the record (FK to users.id, nullable).
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type CriminalRecord struct {
	ID            uint64     // criminal_records.rec_id
	CitizenID     *uint64    // criminal_records.cit_id (nullable)
	CrimeType     string     // criminal_records.crime_type
	Description   string     // criminal_records.description
	Status        string     // criminal_records.status
	DateCommitted *time.Time // criminal_records.date_committed (nullable)
	CreatedBy     *uint64    // criminal_records.created_by (nullable)
	CreatedAt     time.Time  // criminal_records.created_at
	UpdatedAt     time.Time  // criminal_records.updated_at
}

// Victim is a row in the `victims` table. A victim may be linked
// to a criminal record or stand alone while a case is still being
// assembled.
//
// Fields:
//  ID        – primary key identifier (vic_id).
//  RecordID  – linked criminal record (FK to criminal_records.rec_id, nullable).
//  FirstName – given name.
//  LastName  – family name.
//  Phone     – contact phone number.
//  Address   – street address.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Victim struct {
	ID        uint64    // victims.vic_id
	RecordID  *uint64   // victims.rec_id (nullable)
	FirstName string    // victims.first_name
	LastName  string    // victims.last_name
	Phone     string    // victims.phone
	Address   string    // victims.address
	CreatedAt time.Time // victims.created_at
	UpdatedAt time.Time // victims.updated_at
}

// Arrest is a row in the `arrests` table. Arrests always belong to
// a criminal record and are removed together with it.
//
// Fields:
//  ID          – primary key identifier (arrest_id).
//  RecordID    – criminal record the arrest belongs to (FK to criminal_records.rec_id).
//  OfficerName – arresting officer.
//  Location    – where the arrest took place.
//  ArrestedAt  – when the arrest took place.
//  Notes       – free-form remarks.
//  CreatedAt   – timestamp of creation.
type Arrest struct {
	ID          uint64    // arrests.arrest_id
	RecordID    uint64    // arrests.rec_id
	OfficerName string    // arrests.officer_name
	Location    string    // arrests.location
	ArrestedAt  time.Time // arrests.arrested_at
	Notes       string    // arrests.notes
	CreatedAt   time.Time // arrests.created_at
}
