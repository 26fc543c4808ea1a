package model

import "time"

// Reservation lifecycle states.  Active is the only initial state;
// completed and cancelled are terminal and never transition again.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ReservationLine is a single (item, quantity) entry embedded in a
// reservation.  ItemName is a snapshot taken when the line is written so
// history stays readable after the item is renamed or deleted; it is
// never re-joined against the catalog.
type ReservationLine struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// DamageReport records equipment found damaged when a reservation is
// returned.  Reports are created only at return time and belong
// exclusively to their reservation.  IsResolved flips false to true once,
// through the admin repair action, and never reverts.
//
// Fields:
//  ItemID          – item the damage refers to.
//  ItemName        – snapshot of the item name at report time.
//  QuantityDamaged – between 1 and the reserved quantity for that line.
//  Description     – what is wrong, defaults to "damaged".
//  ReportedBy      – name of the coach who returned the reservation.
//  Date            – timestamp of the report.
//  IsResolved      – whether an admin marked the damage handled.
type DamageReport struct {
	ItemID          string    `json:"item_id"`
	ItemName        string    `json:"item_name"`
	QuantityDamaged int       `json:"quantity_damaged"`
	Description     string    `json:"description"`
	ReportedBy      string    `json:"reported_by"`
	Date            time.Time `json:"date"`
	IsResolved      bool      `json:"is_resolved"`
}

// Reservation is a booked set of items for a date/time window by one
// coach.  It exclusively owns its embedded lines and damage reports.
// Date is a calendar day in YYYY-MM-DD form; StartTime and EndTime are
// zero-padded HH:MM strings compared lexicographically.
//
// Fields:
//  ID            – document identifier (UUID string).
//  ClubID        – club the reservation belongs to.
//  CoachID       – coach who booked it.
//  CoachName     – snapshot of the coach name at booking time.
//  Date          – calendar day of the booking.
//  StartTime     – window start, HH:MM.
//  EndTime       – window end, HH:MM, strictly after StartTime.
//  Items         – non-empty list of reserved lines.
//  Status        – active, completed or cancelled.
//  DamageReports – reports attached at return time, possibly empty.
type Reservation struct {
	ID            string            `json:"id"`
	ClubID        string            `json:"club_id"`
	CoachID       string            `json:"coach_id"`
	CoachName     string            `json:"coach_name"`
	Date          string            `json:"date"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	Items         []ReservationLine `json:"items"`
	Status        string            `json:"status"`
	DamageReports []DamageReport    `json:"damage_reports"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
