package model

import "time"

// Application roles.  An ADMIN account is a club: coaches created by an
// admin carry the admin's ID as their ClubID.  SUPERADMIN is the
// cross-tenant platform operator.
const (
	RoleSuperAdmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleCoach      = "COACH"
)

// User represents a row in the `users` table.
//
// Fields:
//  ID                 – document identifier (UUID string).
//  ClubID             – for ADMIN this equals ID; for COACH it is the
//                       admin's ID; empty for SUPERADMIN.
//  ClubName           – snapshot of the club name, shown in rosters.
//  Name               – display name.
//  Email              – unique, stored lower-cased.
//  PasswordHash       – bcrypt hash.
//  Role               – SUPERADMIN, ADMIN or COACH.
//  MustChangePassword – set for coaches created with a temporary password.
type User struct {
	ID                 string    `json:"id"`
	ClubID             string    `json:"club_id"`
	ClubName           string    `json:"club_name"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               string    `json:"role"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is persisted.
type RefreshToken struct {
	ID        uint64     `json:"id"`
	UserID    string     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
