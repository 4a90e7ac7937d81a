package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mediastash/mediastash-server/internal/domain"
	"github.com/mediastash/mediastash-server/internal/store"
)

// basePathColumns is the ordered list of columns selected in base path
// queries. Must match the scan order in scanBasePath.
const basePathColumns = `id, base_path, description`

// scanBasePath scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.BasePath.
func scanBasePath(scanner interface{ Scan(dest ...any) error }) (*domain.BasePath, error) {
	var bp domain.BasePath
	if err := scanner.Scan(&bp.ID, &bp.Path, &bp.Description); err != nil {
		return nil, err
	}
	return &bp, nil
}

// nestedWithin reports whether child lies under parent in path terms.
// Both paths are normalized (absolute, no trailing slash), so a plain string
// prefix would wrongly match siblings like /a/b and /a/bc.
func nestedWithin(child, parent string) bool {
	if parent == "/" {
		return child != "/"
	}
	return strings.HasPrefix(child, parent+"/")
}

// CreateBasePath inserts a new base path and assigns its ID.
// The containment scan over existing paths and the insert run in a single
// transaction; the UNIQUE constraint on base_path is the backstop against a
// racing exact duplicate.
func (s *Store) CreateBasePath(ctx context.Context, bp *domain.BasePath) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT base_path FROM base_paths`)
	if err != nil {
		return fmt.Errorf("scan base paths: %w", err)
	}
	for rows.Next() {
		var existing string
		if err := rows.Scan(&existing); err != nil {
			rows.Close()
			return err
		}
		switch {
		case existing == bp.Path:
			rows.Close()
			return store.ErrAlreadyExists
		case nestedWithin(bp.Path, existing), nestedWithin(existing, bp.Path):
			rows.Close()
			return store.ErrSubPath
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO base_paths (base_path, description)
		VALUES (?, ?)`,
		bp.Path,
		bp.Description,
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
	bp.ID = id

	return tx.Commit()
}

// GetBasePath retrieves a base path by its ID.
// Returns store.ErrNotFound if the base path does not exist.
func (s *Store) GetBasePath(ctx context.Context, id int64) (*domain.BasePath, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+basePathColumns+` FROM base_paths WHERE id = ?`, id)

	bp, err := scanBasePath(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bp, nil
}

// GetBasePathByPath retrieves a base path by its normalized path.
// Returns store.ErrNotFound if the base path does not exist.
func (s *Store) GetBasePathByPath(ctx context.Context, path string) (*domain.BasePath, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+basePathColumns+` FROM base_paths WHERE base_path = ?`, path)

	bp, err := scanBasePath(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bp, nil
}

// ListBasePaths returns base paths ordered by id ascending.
// An empty ids slice returns all rows; otherwise only the rows whose id is
// present in ids are returned.
func (s *Store) ListBasePaths(ctx context.Context, ids []int64) ([]*domain.BasePath, error) {
	query := `SELECT ` + basePathColumns + ` FROM base_paths`
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

	basePaths := []*domain.BasePath{}
	for rows.Next() {
		bp, err := scanBasePath(rows)
		if err != nil {
			return nil, err
		}
		basePaths = append(basePaths, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return basePaths, nil
}

// UpdateBasePathDescription replaces the description of a base path.
// Returns store.ErrNotFound if the base path does not exist.
func (s *Store) UpdateBasePathDescription(ctx context.Context, id int64, description string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE base_paths SET description = ? WHERE id = ?`, description, id)
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

// DeleteBasePath removes a base path.
// The in-use check and the delete run in a single transaction: while media
// files reference the base path, store.ErrInUse is returned.
func (s *Store) DeleteBasePath(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media WHERE base_path_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count media: %w", err)
	}
	if count > 0 {
		return store.ErrInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM base_paths WHERE id = ?`, id)
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
