package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediastash/mediastash-server/internal/domain"
	"github.com/mediastash/mediastash-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, category_id, description`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.CategoryID, &t.Description); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag and assigns its ID.
// The (name, category_id) uniqueness check and the insert run in a single
// transaction; the UNIQUE constraint is the backstop against races.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE name = ? AND category_id = ?`,
		t.Name, t.CategoryID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check tag uniqueness: %w", err)
	}
	if exists > 0 {
		return store.ErrAlreadyExists
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO tags (name, category_id, description)
		VALUES (?, ?, ?)`,
		t.Name,
		t.CategoryID,
		t.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id

	return tx.Commit()
}

// GetTag retrieves a tag by its ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns tags ordered by name ascending, optionally filtered to
// one category.
func (s *Store) ListTags(ctx context.Context, categoryID *int64) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags`
	var args []any
	if categoryID != nil {
		query += ` WHERE category_id = ?`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// UpdateTag rewrites a tag row.
// The uniqueness check excludes the row being updated, so a patch that keeps
// name and category untouched is a no-op rather than a conflict.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE name = ? AND category_id = ? AND id != ?`,
		t.Name, t.CategoryID, t.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check tag uniqueness: %w", err)
	}
	if exists > 0 {
		return store.ErrAlreadyExists
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE tags SET name = ?, category_id = ?, description = ?
		WHERE id = ?`,
		t.Name,
		t.CategoryID,
		t.Description,
		t.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// DeleteTag removes a tag.
// The in-use check and the delete run in a single transaction: while media
// associations reference the tag, store.ErrInUse is returned.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media_tags WHERE tag_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count media tags: %w", err)
	}
	if count > 0 {
		return store.ErrInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}
