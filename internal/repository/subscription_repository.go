package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sporttrack/sporttrack/internal/model"
)

// SubscriptionRepo persists the one subscription row each club admin
// owns.
type SubscriptionRepo struct{ db *sql.DB }

// NewSubscriptionRepo returns a SubscriptionRepo bound to the database.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

// CreateTrial starts a club on a trial ending after the given number of
// days.
func (r *SubscriptionRepo) CreateTrial(ctx context.Context, userID string, days int) (model.Subscription, error) {
	s := model.Subscription{
		ID:      uuid.NewString(),
		UserID:  userID,
		Status:  model.SubscriptionTrial,
		EndDate: time.Now().UTC().AddDate(0, 0, days),
	}
	const q = `INSERT INTO subscriptions (id, user_id, status, end_date) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, s.ID, s.UserID, s.Status, s.EndDate); err != nil {
		return model.Subscription{}, err
	}
	return r.GetByUser(ctx, userID)
}

// GetByUser fetches the subscription belonging to an admin.
func (r *SubscriptionRepo) GetByUser(ctx context.Context, userID string) (model.Subscription, error) {
	const q = `SELECT id, user_id, status, end_date, created_at, updated_at
		FROM subscriptions WHERE user_id = ? LIMIT 1`
	var s model.Subscription
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&s.ID, &s.UserID, &s.Status, &s.EndDate, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, ErrSubscriptionNotFound
	}
	return s, err
}

// Activate records a successful (simulated) payment: the plan becomes
// active and the end date is pushed out.
func (r *SubscriptionRepo) Activate(ctx context.Context, userID string, endDate time.Time) error {
	out, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = ?, end_date = ? WHERE user_id = ?`,
		model.SubscriptionActive, endDate, userID)
	if err != nil {
		return err
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		if _, getErr := r.GetByUser(ctx, userID); getErr != nil {
			return ErrSubscriptionNotFound
		}
	}
	return nil
}
