package sqlite

import (
	"context"
	"fmt"

	"github.com/mediastash/mediastash-server/internal/domain"
	"github.com/mediastash/mediastash-server/internal/store"
)

// TagMedia records that a media file carries a tag.
// The existence check and the insert run in a single transaction; the UNIQUE
// constraint on (media_id, tag_id) is the backstop against races.
func (s *Store) TagMedia(ctx context.Context, mediaID, tagID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media_tags WHERE media_id = ? AND tag_id = ?`,
		mediaID, tagID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check association: %w", err)
	}
	if exists > 0 {
		return store.ErrAlreadyExists
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO media_tags (media_id, tag_id) VALUES (?, ?)`,
		mediaID, tagID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	return tx.Commit()
}

// UntagMedia removes the association between a media file and a tag.
// Returns store.ErrNotTagged when no such association exists.
func (s *Store) UntagMedia(ctx context.Context, mediaID, tagID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM media_tags WHERE media_id = ? AND tag_id = ?`,
		mediaID, tagID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotTagged
	}
	return nil
}

// ListTagsForMedia returns the tags carried by a media file ordered by name
// ascending.
func (s *Store) ListTagsForMedia(ctx context.Context, mediaID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.category_id, t.description
		FROM tags t
		JOIN media_tags mt ON mt.tag_id = t.id
		WHERE mt.media_id = ?
		ORDER BY t.name ASC`,
		mediaID)
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

// ListMediaByTags returns the media files tagged with every tag in tagIDs,
// ordered by id ascending. A media file qualifies only when its distinct
// matching tag count equals len(tagIDs), which realizes the set intersection
// as a group-by/having aggregate. tagIDs must be deduplicated and non-empty.
func (s *Store) ListMediaByTags(ctx context.Context, tagIDs []int64) ([]*domain.MediaFile, error) {
	marks, args := idPlaceholders(tagIDs)
	args = append(args, len(tagIDs))

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+mediaColumns+` FROM media
		WHERE id IN (
			SELECT media_id FROM media_tags
			WHERE tag_id IN (`+marks+`)
			GROUP BY media_id
			HAVING COUNT(DISTINCT tag_id) = ?
		)
		ORDER BY id ASC`,
		args...)
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
