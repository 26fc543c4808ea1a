package model

import "time"

// Item is a stocked equipment type owned by a club.  Quantity is the
// total owned count, not a live "available now" figure; availability is
// always computed by callers from the reservation ledger.
//
// Fields:
//  ID          – document identifier (UUID string).
//  ClubID      – owning club (the admin account's ID).
//  Name        – display name, e.g. "Football".
//  Category    – free-form grouping, defaults to "General".
//  Quantity    – total owned stock, never negative.
//  Description – optional notes.
type Item struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
