package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

const noteColumns = `id, user_id, title, content, pinned, archived, created_at, updated_at`

func scanNote(scanner interface{ Scan(...any) error }) (core.Note, error) {
	var n core.Note
	err := scanner.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Pinned, &n.Archived,
		&n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (s *Store) CreateNote(ctx context.Context, n core.Note) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Content, n.Pinned, n.Archived, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *Store) GetNote(ctx context.Context, userID, id string) (*core.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? AND id = ?`, userID, id)
	n, err := scanNote(row)
	if err != nil {
		return nil, notFound("note", err)
	}
	return &n, nil
}

// ListNotes returns the user's notes, pinned first then newest first.
// Archived notes are included only when requested.
func (s *Store) ListNotes(ctx context.Context, userID string, includeArchived bool) ([]core.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY pinned DESC, updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []core.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UpdateNote(ctx context.Context, n core.Note) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, pinned = ?, archived = ?, updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		n.Title, n.Content, n.Pinned, n.Archived, n.UpdatedAt, n.UserID, n.ID)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return core.NotFoundf("note not found")
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return core.NotFoundf("note not found")
	}
	return nil
}

// CountNotes returns the user's non-archived note count.
func (s *Store) CountNotes(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = ? AND archived = 0`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}
