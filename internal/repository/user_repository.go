package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sporttrack/sporttrack/internal/model"
	"github.com/sporttrack/sporttrack/internal/utils"
)

// UserRepo persists accounts: club admins, their coaches and the
// platform super-admin.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// DB exposes the underlying handle.
func (r *UserRepo) DB() *sql.DB { return r.db }

const userCols = `id, club_id, club_name, name, email, password_hash, role, must_change_password, created_at, updated_at`

// CreateAdmin registers a new club.  The admin account doubles as the
// club: its ClubID is its own ID.
func (r *UserRepo) CreateAdmin(ctx context.Context, name, email, password, clubName string, cost int) (model.User, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		ClubName:     clubName,
	}
	u.ClubID = u.ID
	return r.insert(ctx, u)
}

// CreateCoach adds a coach to an admin's club with a temporary password
// that must be changed on first login.
func (r *UserRepo) CreateCoach(ctx context.Context, clubID, clubName, name, email, tempPassword string, cost int) (model.User, error) {
	hash, err := utils.HashPassword(tempPassword, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:                 uuid.NewString(),
		ClubID:             clubID,
		ClubName:           clubName,
		Name:               name,
		Email:              strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:       hash,
		Role:               model.RoleCoach,
		MustChangePassword: true,
	}
	return r.insert(ctx, u)
}

func (r *UserRepo) insert(ctx context.Context, u model.User) (model.User, error) {
	const q = `INSERT INTO users (id, club_id, club_name, name, email, password_hash, role, must_change_password)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.ClubID, u.ClubName, u.Name, u.Email,
		u.PasswordHash, u.Role, u.MustChangePassword)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, u.ID)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, `SELECT `+userCols+` FROM users WHERE email = ? LIMIT 1`, email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.get(ctx, `SELECT `+userCols+` FROM users WHERE id = ? LIMIT 1`, id)
}

func (r *UserRepo) get(ctx context.Context, q string, arg any) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.ClubID, &u.ClubName, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.MustChangePassword, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// ListCoaches returns the roster of a single club, oldest first.
func (r *UserRepo) ListCoaches(ctx context.Context, clubID string) ([]model.User, error) {
	return r.listWhere(ctx,
		`SELECT `+userCols+` FROM users WHERE club_id = ? AND role = ? ORDER BY created_at`,
		clubID, model.RoleCoach)
}

// ListByRole returns every account with the given role across all clubs.
// Used by the super-admin overview.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	return r.listWhere(ctx, `SELECT `+userCols+` FROM users WHERE role = ? ORDER BY created_at`, role)
}

// CountAll reports the total number of accounts on the platform.
func (r *UserRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepo) listWhere(ctx context.Context, q string, args ...any) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.ClubID, &u.ClubName, &u.Name, &u.Email, &u.PasswordHash,
			&u.Role, &u.MustChangePassword, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdatePassword stores a new bcrypt hash and clears the temporary
// password flag.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	out, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, must_change_password = 0 WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteCoach removes one coach from a club's roster.
func (r *UserRepo) DeleteCoach(ctx context.Context, clubID, id string) error {
	out, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = ? AND club_id = ? AND role = ?`, id, clubID, model.RoleCoach)
	if err != nil {
		return err
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteClub deletes an admin account together with every coach of the
// club.  The club's catalog and ledger rows go with it.
func (r *UserRepo) DeleteClub(ctx context.Context, adminID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{
		`DELETE dr FROM damage_reports dr JOIN reservations res ON res.id = dr.reservation_id WHERE res.club_id = ?`,
		`DELETE rl FROM reservation_lines rl JOIN reservations res ON res.id = rl.reservation_id WHERE res.club_id = ?`,
		`DELETE FROM reservations WHERE club_id = ?`,
		`DELETE FROM items WHERE club_id = ?`,
		`DELETE FROM subscriptions WHERE user_id = ?`,
		`DELETE FROM refresh_tokens WHERE user_id IN (SELECT id FROM users WHERE club_id = ?)`,
		`DELETE FROM users WHERE club_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, adminID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
