package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sporttrack/sporttrack/internal/model"
)

// ItemRepo provides CRUD operations for the equipment catalog.  Every
// query is scoped by club so one tenant can never see or edit another
// tenant's stock.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo returns an ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// DB exposes the underlying handle for callers that need it.
func (r *ItemRepo) DB() *sql.DB { return r.db }

// Create inserts a new catalog item and fills in its generated ID and
// timestamps.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	it.ID = uuid.NewString()
	const q = `INSERT INTO items (id, club_id, name, category, quantity, description) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, it.ID, it.ClubID, it.Name, it.Category, it.Quantity, it.Description); err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM items WHERE id = ?`, it.ID,
	).Scan(&it.CreatedAt, &it.UpdatedAt)
}

// Update rewrites all editable fields of an item owned by clubID.
func (r *ItemRepo) Update(ctx context.Context, clubID string, it *model.Item) error {
	const q = `UPDATE items SET name = ?, category = ?, quantity = ?, description = ? WHERE id = ? AND club_id = ?`
	res, err := r.db.ExecContext(ctx, q, it.Name, it.Category, it.Quantity, it.Description, it.ID, clubID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := r.GetByID(ctx, clubID, it.ID); getErr != nil {
			return ErrItemNotFound
		}
	}
	return nil
}

// Delete removes an item from the catalog.  Historical reservation lines
// keep their denormalized name snapshot, so nothing else is touched.
func (r *ItemRepo) Delete(ctx context.Context, clubID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND club_id = ?`, id, clubID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GetByID fetches one item scoped by club.
func (r *ItemRepo) GetByID(ctx context.Context, clubID, id string) (model.Item, error) {
	const q = `SELECT id, club_id, name, category, quantity, description, created_at, updated_at
		FROM items WHERE id = ? AND club_id = ? LIMIT 1`
	var it model.Item
	err := r.db.QueryRowContext(ctx, q, id, clubID).Scan(
		&it.ID, &it.ClubID, &it.Name, &it.Category, &it.Quantity, &it.Description,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrItemNotFound
	}
	return it, err
}

// ListByClub returns the club's full catalog snapshot ordered by name.
// The booking validator expects this complete list, not a page.
func (r *ItemRepo) ListByClub(ctx context.Context, clubID string) ([]model.Item, error) {
	const q = `SELECT id, club_id, name, category, quantity, description, created_at, updated_at
		FROM items WHERE club_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.ClubID, &it.Name, &it.Category, &it.Quantity,
			&it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
