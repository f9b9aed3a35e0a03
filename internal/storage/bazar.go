package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

func (s *Store) CreateBazarList(ctx context.Context, l core.BazarList) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bazar_lists (id, user_id, title, is_completed, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Title, l.IsCompleted, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bazar list: %w", err)
	}
	return nil
}

func (s *Store) GetBazarList(ctx context.Context, userID, id string) (*core.BazarList, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, is_completed, created_at FROM bazar_lists
		 WHERE user_id = ? AND id = ?`, userID, id)

	var l core.BazarList
	if err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.IsCompleted, &l.CreatedAt); err != nil {
		return nil, notFound("bazar list", err)
	}

	items, err := s.listBazarItems(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Items = items
	return &l, nil
}

func (s *Store) ListBazarLists(ctx context.Context, userID string) ([]core.BazarList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, is_completed, created_at FROM bazar_lists
		 WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bazar lists: %w", err)
	}
	defer rows.Close()

	var out []core.BazarList
	for rows.Next() {
		var l core.BazarList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.IsCompleted, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bazar list: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) UpdateBazarList(ctx context.Context, l core.BazarList) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bazar_lists SET title = ?, is_completed = ? WHERE user_id = ? AND id = ?`,
		l.Title, l.IsCompleted, l.UserID, l.ID)
	if err != nil {
		return fmt.Errorf("update bazar list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("bazar list not found")
	}
	return nil
}

func (s *Store) DeleteBazarList(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bazar_lists WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete bazar list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("bazar list not found")
	}
	return nil
}

func (s *Store) AddBazarItem(ctx context.Context, item core.BazarItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bazar_items (id, list_id, name, quantity, purchased) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.ListID, item.Name, item.Quantity, item.Purchased)
	if err != nil {
		return fmt.Errorf("insert bazar item: %w", err)
	}
	return nil
}

func (s *Store) UpdateBazarItem(ctx context.Context, item core.BazarItem) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bazar_items SET name = ?, quantity = ?, purchased = ? WHERE list_id = ? AND id = ?`,
		item.Name, item.Quantity, item.Purchased, item.ListID, item.ID)
	if err != nil {
		return fmt.Errorf("update bazar item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("bazar item not found")
	}
	return nil
}

func (s *Store) DeleteBazarItem(ctx context.Context, listID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bazar_items WHERE list_id = ? AND id = ?`, listID, id)
	if err != nil {
		return fmt.Errorf("delete bazar item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("bazar item not found")
	}
	return nil
}

func (s *Store) listBazarItems(ctx context.Context, listID string) ([]core.BazarItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, list_id, name, quantity, purchased FROM bazar_items WHERE list_id = ?`, listID)
	if err != nil {
		return nil, fmt.Errorf("list bazar items: %w", err)
	}
	defer rows.Close()

	var out []core.BazarItem
	for rows.Next() {
		var item core.BazarItem
		if err := rows.Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &item.Purchased); err != nil {
			return nil, fmt.Errorf("scan bazar item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// CountActiveBazarLists returns the user's non-completed list count.
func (s *Store) CountActiveBazarLists(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bazar_lists WHERE user_id = ? AND is_completed = 0`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active bazar lists: %w", err)
	}
	return n, nil
}
