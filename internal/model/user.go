package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Accounts go through a two-step activation: IsVerified is set by
// the email-verification flow and IsApproved by an admin. Login is
// refused until both are true.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FullName     – display name shown in audit trails.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (ADMIN, STAFF or VIEWER).
//  IsVerified   – whether the email address has been confirmed.
//  IsApproved   – whether an admin has approved the account.
//  LastLogin    – timestamp of the most recent successful login (null until first login).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	FullName     string     // users.full_name
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Role         string     // users.role
	IsVerified   bool       // users.is_verified
	IsApproved   bool       // users.is_approved
	LastLogin    *time.Time // users.last_login (nullable)
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}

// Identity is the authenticated principal attached to the request
// context by the JWT middleware after the liveness lookup. It is a
// projection of User without credential material.
type Identity struct {
	UserID   uint64 // users.id
	Email    string // users.email
	Role     string // users.role
	FullName string // users.full_name
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation. The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
