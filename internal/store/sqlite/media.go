package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediastash/mediastash-server/internal/domain"
	"github.com/mediastash/mediastash-server/internal/store"
)

// mediaColumns is the ordered list of columns selected in media queries.
// Must match the scan order in scanMedia.
const mediaColumns = `id, relative_path, base_path_id, width, height, size, mark, description, media_type`

// scanMedia scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.MediaFile.
func scanMedia(scanner interface{ Scan(dest ...any) error }) (*domain.MediaFile, error) {
	var m domain.MediaFile

	var (
		width     sql.NullInt64
		height    sql.NullInt64
		mark      sql.NullInt64
		mediaType string
	)

	err := scanner.Scan(
		&m.ID,
		&m.RelativePath,
		&m.BasePathID,
		&width,
		&height,
		&m.Size,
		&mark,
		&m.Description,
		&mediaType,
	)
	if err != nil {
		return nil, err
	}

	m.Width = intPtr(width)
	m.Height = intPtr(height)
	m.Mark = intPtr(mark)
	m.MediaType = domain.ParseMediaType(mediaType)

	return &m, nil
}

// CreateMedia inserts a new media file and assigns its ID.
// The (base_path_id, relative_path) uniqueness check and the insert run in a
// single transaction; the UNIQUE constraint is the backstop against races.
func (s *Store) CreateMedia(ctx context.Context, m *domain.MediaFile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media WHERE base_path_id = ? AND relative_path = ?`,
		m.BasePathID, m.RelativePath).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check media uniqueness: %w", err)
	}
	if exists > 0 {
		return store.ErrAlreadyExists
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO media (relative_path, base_path_id, width, height, size, mark, description, media_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RelativePath,
		m.BasePathID,
		nullInt(m.Width),
		nullInt(m.Height),
		m.Size,
		nullInt(m.Mark),
		m.Description,
		m.MediaType.String(),
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
	m.ID = id

	return tx.Commit()
}

// GetMedia retrieves a media file by its ID.
// Returns store.ErrNotFound if the media file does not exist.
func (s *Store) GetMedia(ctx context.Context, id int64) (*domain.MediaFile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)

	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMediaByRelativePath retrieves a media file by its base path and
// relative path. Returns store.ErrNotFound if the media file does not exist.
func (s *Store) GetMediaByRelativePath(ctx context.Context, basePathID int64, relativePath string) (*domain.MediaFile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE base_path_id = ? AND relative_path = ?`,
		basePathID, relativePath)

	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMediaByBasePath returns the media files under one base path ordered by
// id ascending.
func (s *Store) ListMediaByBasePath(ctx context.Context, basePathID int64) ([]*domain.MediaFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE base_path_id = ? ORDER BY id ASC`,
		basePathID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []*domain.MediaFile{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// UpdateMedia rewrites the mutable fields of a media row. The relative path,
// base path and media type are fixed at creation and never updated here.
// Returns store.ErrNotFound if the media file does not exist.
func (s *Store) UpdateMedia(ctx context.Context, m *domain.MediaFile) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE media SET width = ?, height = ?, size = ?, mark = ?, description = ?
		WHERE id = ?`,
		nullInt(m.Width),
		nullInt(m.Height),
		m.Size,
		nullInt(m.Mark),
		m.Description,
		m.ID,
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

// DeleteMedia removes a media file.
// The in-use check and the delete run in a single transaction: while tag
// associations reference the media file, store.ErrInUse is returned.
func (s *Store) DeleteMedia(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media_tags WHERE media_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count media tags: %w", err)
	}
	if count > 0 {
		return store.ErrInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
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
