package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pantry/internal/model"
)

// Timestamps are stored as Unix nanoseconds and set here rather than by
// the database, so updated_at ordering is exact.

const itemColumns = `id, name, count, description, created_at, updated_at, deleted_at`

// CreateItem persists a new item and returns the stored record. Name
// uniqueness is enforced by the store; callers are expected to check for
// an existing name first, so a constraint failure here means a lost race.
func CreateItem(ctx context.Context, db *sql.DB, in model.ItemInput) (*model.Item, error) {
	now := time.Now().UTC().UnixNano()
	id := uuid.NewString()

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, name, count, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, in.Name, in.CountOrDefault(), in.Description, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, in.Name)
}

// GetItem returns the item with the given name, or nil if none exists.
// The match is exact and case-sensitive.
func GetItem(ctx context.Context, db *sql.DB, name string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE name = ?`, name,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, most recently updated first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem overwrites every mutable field of the item with the payload
// (full replace) and returns the stored record.
func UpdateItem(ctx context.Context, db *sql.DB, item *model.Item, in model.ItemInput) (*model.Item, error) {
	now := time.Now().UTC().UnixNano()

	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, count = ?, description = ?, updated_at = ? WHERE id = ?`,
		in.Name, in.CountOrDefault(), in.Description, now, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return GetItem(ctx, db, in.Name)
}

// DeleteItem removes the item with the given name. Deleting a name that
// does not exist is a no-op.
func DeleteItem(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// CountItems returns the number of stored items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var description sql.NullString
	var created, updated int64
	var deleted sql.NullInt64

	err := s.Scan(&item.ID, &item.Name, &item.Count, &description, &created, &updated, &deleted)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.CreatedAt = time.Unix(0, created).UTC()
	item.UpdatedAt = time.Unix(0, updated).UTC()
	if deleted.Valid {
		t := time.Unix(0, deleted.Int64).UTC()
		item.DeletedAt = &t
	}
	return item, nil
}
