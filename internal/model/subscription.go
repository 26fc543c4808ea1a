package model

import "time"

// Subscription states.  A club starts on a trial at signup; the simulated
// payment flow moves it to active.  Expired is derived when EndDate has
// passed, it is never written back.
const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Subscription tracks a club's plan.  One row per ADMIN user.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveStatus returns the stored status, downgraded to expired when
// the end date has passed.
func (s Subscription) EffectiveStatus(now time.Time) string {
	if now.After(s.EndDate) {
		return SubscriptionExpired
	}
	return s.Status
}

// DaysLeft reports whole days remaining until EndDate, rounded up, never
// negative.
func (s Subscription) DaysLeft(now time.Time) int {
	d := s.EndDate.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int((d + 24*time.Hour - 1) / (24 * time.Hour))
	return days
}
