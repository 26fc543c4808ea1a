package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sporttrack/sporttrack/internal/model"
)

// ReservationRepo persists reservation aggregates.  A reservation owns
// its lines and damage reports outright; both live in child tables and
// are written together with the parent row inside one transaction so a
// half-written aggregate can never be observed.  The read-validate-write
// gap between fetching snapshots and committing stays open on purpose,
// matching the club's single-writer usage.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// Create inserts a validated reservation with a fresh ID and its lines.
// Status is forced to active; damage reports never exist at creation.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	res.ID = uuid.NewString()
	res.Status = model.StatusActive

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

	const q = `INSERT INTO reservations (id, club_id, coach_id, coach_name, res_date, start_time, end_time, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, res.ID, res.ClubID, res.CoachID, res.CoachName,
		res.Date, res.StartTime, res.EndTime, res.Status); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, res.ID, res.Items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update replaces the schedule and line list of an existing reservation,
// keeping its ID, status and damage reports.  Used by the edit flow
// after re-validation.
func (r *ReservationRepo) Update(ctx context.Context, clubID string, res *model.Reservation) error {
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

	const q = `UPDATE reservations SET res_date = ?, start_time = ?, end_time = ?
		WHERE id = ? AND club_id = ?`
	out, err := tx.ExecContext(ctx, q, res.Date, res.StartTime, res.EndTime, res.ID, clubID)
	if err != nil {
		return err
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		if !r.existsTx(ctx, tx, clubID, res.ID) {
			return ErrReservationNotFound
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_lines WHERE reservation_id = ?`, res.ID); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, res.ID, res.Items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Complete records a return: status flips to completed and the freshly
// produced damage reports, if any, are appended.
func (r *ReservationRepo) Complete(ctx context.Context, res *model.Reservation, reports []model.DamageReport) error {
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

	out, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND status = ?`,
		model.StatusCompleted, res.ID, model.StatusActive)
	if err != nil {
		return err
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return ErrReservationNotFound
	}
	for _, dr := range reports {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO damage_reports (reservation_id, item_id, item_name, quantity_damaged, description, reported_by, reported_at, is_resolved)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			res.ID, dr.ItemID, dr.ItemName, dr.QuantityDamaged, dr.Description,
			dr.ReportedBy, dr.Date, dr.IsResolved); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Cancel flips an active reservation to cancelled.  Terminal rows are
// left alone and reported as not found.
func (r *ReservationRepo) Cancel(ctx context.Context, clubID, id string) error {
	out, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND club_id = ? AND status = ?`,
		model.StatusCancelled, id, clubID, model.StatusActive)
	if err != nil {
		return err
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ResolveDamage marks the oldest unresolved report for (reservation,
// item) as resolved.  Zero affected rows is a silent no-op, matching the
// processor's not-found behavior.
func (r *ReservationRepo) ResolveDamage(ctx context.Context, reservationID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE damage_reports SET is_resolved = 1
		 WHERE reservation_id = ? AND item_id = ? AND is_resolved = 0
		 ORDER BY id LIMIT 1`,
		reservationID, itemID)
	return err
}

// GetByID loads a full reservation aggregate scoped by club.
func (r *ReservationRepo) GetByID(ctx context.Context, clubID, id string) (model.Reservation, error) {
	const q = `SELECT id, club_id, coach_id, coach_name, res_date, start_time, end_time, status, created_at, updated_at
		FROM reservations WHERE id = ? AND club_id = ? LIMIT 1`
	var res model.Reservation
	var date time.Time
	err := r.db.QueryRowContext(ctx, q, id, clubID).Scan(
		&res.ID, &res.ClubID, &res.CoachID, &res.CoachName, &date,
		&res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	res.Date = date.Format("2006-01-02")
	if err := r.loadChildren(ctx, []*model.Reservation{&res}); err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// ListByClub returns the club's full ledger, newest first.  Handlers
// filter by coach for non-admin callers.
func (r *ReservationRepo) ListByClub(ctx context.Context, clubID string) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT id, club_id, coach_id, coach_name, res_date, start_time, end_time, status, created_at, updated_at
		FROM reservations WHERE club_id = ? ORDER BY res_date DESC, start_time DESC`, clubID)
}

// ListByCoach returns one coach's reservations, newest first.
func (r *ReservationRepo) ListByCoach(ctx context.Context, coachID string) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT id, club_id, coach_id, coach_name, res_date, start_time, end_time, status, created_at, updated_at
		FROM reservations WHERE coach_id = ? ORDER BY res_date DESC, start_time DESC`, coachID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, arg any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		var date time.Time
		if err := rows.Scan(&res.ID, &res.ClubID, &res.CoachID, &res.CoachName, &date,
			&res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		res.Date = date.Format("2006-01-02")
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*model.Reservation, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := r.loadChildren(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

// loadChildren attaches lines and damage reports to each reservation.
func (r *ReservationRepo) loadChildren(ctx context.Context, rs []*model.Reservation) error {
	byID := make(map[string]*model.Reservation, len(rs))
	for _, res := range rs {
		res.Items = make([]model.ReservationLine, 0)
		res.DamageReports = make([]model.DamageReport, 0)
		byID[res.ID] = res
	}
	if len(byID) == 0 {
		return nil
	}

	for _, res := range rs {
		rows, err := r.db.QueryContext(ctx,
			`SELECT item_id, item_name, quantity FROM reservation_lines WHERE reservation_id = ? ORDER BY id`, res.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var l model.ReservationLine
			if err := rows.Scan(&l.ItemID, &l.ItemName, &l.Quantity); err != nil {
				rows.Close()
				return err
			}
			res.Items = append(res.Items, l)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		drows, err := r.db.QueryContext(ctx,
			`SELECT item_id, item_name, quantity_damaged, description, reported_by, reported_at, is_resolved
			 FROM damage_reports WHERE reservation_id = ? ORDER BY id`, res.ID)
		if err != nil {
			return err
		}
		for drows.Next() {
			var d model.DamageReport
			if err := drows.Scan(&d.ItemID, &d.ItemName, &d.QuantityDamaged, &d.Description,
				&d.ReportedBy, &d.Date, &d.IsResolved); err != nil {
				drows.Close()
				return err
			}
			res.DamageReports = append(res.DamageReports, d)
		}
		if err := drows.Err(); err != nil {
			drows.Close()
			return err
		}
		drows.Close()
	}
	return nil
}

func (r *ReservationRepo) existsTx(ctx context.Context, tx *sql.Tx, clubID, id string) bool {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM reservations WHERE id = ? AND club_id = ? LIMIT 1`, id, clubID).Scan(&one)
	return err == nil
}

func insertLinesTx(ctx context.Context, tx *sql.Tx, reservationID string, lines []model.ReservationLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO reservation_lines (reservation_id, item_id, item_name, quantity) VALUES `
	args := make([]any, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, reservationID, l.ItemID, l.ItemName, l.Quantity)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
