// Package queue defines message payloads exchanged over the message broker.
package queue

// ReturnedItem is one equipment line of a returned reservation.
type ReturnedItem struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// ReservationReturnedEvent is published when equipment comes back and a
// reservation is marked completed.  It carries enough for downstream
// consumers to log or alert on damage without querying the primary
// database.
type ReservationReturnedEvent struct {
	ReservationID string         `json:"reservation_id"`
	ClubID        string         `json:"club_id"`
	CoachID       string         `json:"coach_id"`
	CoachName     string         `json:"coach_name"`
	Date          string         `json:"date"`
	StartTime     string         `json:"start_time"`
	EndTime       string         `json:"end_time"`
	Items         []ReturnedItem `json:"items"`
	DamageCount   int            `json:"damage_count"`
	ReturnedAt    string         `json:"returned_at"`
}
