package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediastash/mediastash-server/internal/domain"
	"github.com/mediastash/mediastash-server/internal/store"
)

// categoryColumns is the ordered list of columns selected in category
// queries. Must match the scan order in scanCategory.
const categoryColumns = `id, name, color, description`

// scanCategory scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Category.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category
	if err := scanner.Scan(&c.ID, &c.Name, &c.Color, &c.Description); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCategory inserts a new tag category and assigns its ID.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tag_categories (name, color, description)
		VALUES (?, ?, ?)`,
		c.Name,
		c.Color,
		c.Description,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	c.ID = id

	return nil
}

// GetCategory retrieves a category by its ID.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM tag_categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns categories ordered by id ascending.
// An empty ids slice returns all rows; otherwise only the rows whose id is
// present in ids are returned.
func (s *Store) ListCategories(ctx context.Context, ids []int64) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM tag_categories`
	var args []any
	if len(ids) > 0 {
		marks, inArgs := idPlaceholders(ids)
		query += ` WHERE id IN (` + marks + `)`
		args = inArgs
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// UpdateCategory rewrites a category row.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tag_categories SET name = ?, color = ?, description = ?
		WHERE id = ?`,
		c.Name,
		c.Color,
		c.Description,
		c.ID,
	)
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
	return nil
}

// DeleteCategory removes a category.
// The in-use check and the delete run in a single transaction: while tags
// reference the category, store.ErrInUse is returned.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE category_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count tags: %w", err)
	}
	if count > 0 {
		return store.ErrInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tag_categories WHERE id = ?`, id)
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
