package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mediastash/mediastash-server/internal/domain"
	apperrors "github.com/mediastash/mediastash-server/internal/errors"
	"github.com/mediastash/mediastash-server/internal/store"
	"github.com/mediastash/mediastash-server/internal/validation"
)

// BasePathResolver is the slice of the base path service the media service
// needs: existence checks for referenced base paths.
type BasePathResolver interface {
	Get(ctx context.Context, id int64) (*domain.BasePath, error)
}

// TagResolver is the slice of the tag service the media service needs:
// existence checks for tags being attached or removed.
type TagResolver interface {
	Get(ctx context.Context, id int64) (*domain.Tag, error)
}

// MediaService manages media files and their tag associations.
type MediaService struct {
	store     store.MediaStore
	basePaths BasePathResolver
	tags      TagResolver
	validator *validation.Validator
	logger    *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(s store.MediaStore, basePaths BasePathResolver, tags TagResolver, v *validation.Validator, logger *slog.Logger) *MediaService {
	return &MediaService{
		store:     s,
		basePaths: basePaths,
		tags:      tags,
		validator: v,
		logger:    logger,
	}
}

// mediaParams is validated in field order; the base path reference is
// resolved separately before these run.
type mediaParams struct {
	RelativePath string  `json:"relative_path" validate:"required"`
	Width        *int    `json:"width" validate:"omitempty,gt=0"`
	Height       *int    `json:"height" validate:"omitempty,gt=0"`
	Size         float64 `json:"size" validate:"gt=0"`
	Mark         *int    `json:"mark" validate:"omitempty,gte=1,lte=10"`
	Description  string  `json:"description" validate:"maxgraphemes=300"`
}

// resolveBasePath checks that basePathID references a registered base path.
func (s *MediaService) resolveBasePath(ctx context.Context, basePathID int64) error {
	if basePathID <= 0 {
		return apperrors.ErrInvalidBasePathID
	}
	if _, err := s.basePaths.Get(ctx, basePathID); err != nil {
		return err
	}
	return nil
}

// normalizeRelativePath trims whitespace and leading/trailing slashes.
func normalizeRelativePath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}

// CreateMedia carries the fields for a new media file.
type CreateMedia struct {
	RelativePath string
	BasePathID   int64
	Width        *int
	Height       *int
	Size         float64
	Mark         *int
	Description  string
	MediaType    domain.MediaType
}

// Create indexes a new media file under a registered base path. The
// relative path is stripped of leading and trailing slashes and must be
// unique within the base path.
func (s *MediaService) Create(ctx context.Context, data CreateMedia) (*domain.MediaFile, error) {
	if err := s.resolveBasePath(ctx, data.BasePathID); err != nil {
		return nil, err
	}

	m := &domain.MediaFile{
		RelativePath: normalizeRelativePath(data.RelativePath),
		BasePathID:   data.BasePathID,
		Width:        data.Width,
		Height:       data.Height,
		Size:         data.Size,
		Mark:         data.Mark,
		Description:  strings.TrimSpace(data.Description),
		MediaType:    data.MediaType,
	}
	if err := s.validator.Validate(mediaParams{
		RelativePath: m.RelativePath,
		Width:        m.Width,
		Height:       m.Height,
		Size:         m.Size,
		Mark:         m.Mark,
		Description:  m.Description,
	}); err != nil {
		return nil, err
	}

	if err := s.store.CreateMedia(ctx, m); err != nil {
		if apperrors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExistsf("media %s already indexed under base path %d", m.RelativePath, m.BasePathID)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create media")
	}

	s.logger.Info("media indexed",
		"media_id", m.ID,
		"base_path_id", m.BasePathID,
		"relative_path", m.RelativePath,
		"media_type", m.MediaType.String(),
	)

	return m, nil
}

// Get returns a media file by ID.
func (s *MediaService) Get(ctx context.Context, id int64) (*domain.MediaFile, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidID
	}

	m, err := s.store.GetMedia(ctx, id)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("media %d not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "get media")
	}
	return m, nil
}

// GetByRelativePath returns a media file by its base path and relative
// path. The relative path is normalized the same way Create normalizes it.
func (s *MediaService) GetByRelativePath(ctx context.Context, basePathID int64, relativePath string) (*domain.MediaFile, error) {
	if basePathID <= 0 {
		return nil, apperrors.ErrInvalidBasePathID
	}
	relativePath = normalizeRelativePath(relativePath)
	if relativePath == "" {
		return nil, apperrors.ErrInvalidRelativePath
	}

	m, err := s.store.GetMediaByRelativePath(ctx, basePathID, relativePath)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("media %s not found under base path %d", relativePath, basePathID)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "get media by relative path")
	}
	return m, nil
}

// UpdateMedia carries the fields of a media patch. Nil fields keep their
// current value; the relative path, base path and media type are immutable.
type UpdateMedia struct {
	Width       *int
	Height      *int
	Size        *float64
	Mark        *int
	Description *string
}

// Update patches a media file. Validation runs against the merged record.
func (s *MediaService) Update(ctx context.Context, id int64, upd UpdateMedia) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if upd.Width != nil {
		m.Width = upd.Width
	}
	if upd.Height != nil {
		m.Height = upd.Height
	}
	if upd.Size != nil {
		m.Size = *upd.Size
	}
	if upd.Mark != nil {
		m.Mark = upd.Mark
	}
	if upd.Description != nil {
		m.Description = strings.TrimSpace(*upd.Description)
	}

	if err := s.validator.Validate(mediaParams{
		RelativePath: m.RelativePath,
		Width:        m.Width,
		Height:       m.Height,
		Size:         m.Size,
		Mark:         m.Mark,
		Description:  m.Description,
	}); err != nil {
		return err
	}

	if err := s.store.UpdateMedia(ctx, m); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.NotFoundf("media %d not found", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "update media")
	}
	return nil
}

// List returns the media files under one base path ordered by id ascending.
// The base path must exist.
func (s *MediaService) List(ctx context.Context, basePathID int64) ([]*domain.MediaFile, error) {
	if err := s.resolveBasePath(ctx, basePathID); err != nil {
		return nil, err
	}

	files, err := s.store.ListMediaByBasePath(ctx, basePathID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list media")
	}
	return files, nil
}

// Delete removes a media file. It fails with InUse while any tag
// association still references it.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrInvalidID
	}

	if err := s.store.DeleteMedia(ctx, id); err != nil {
		switch {
		case apperrors.Is(err, store.ErrNotFound):
			return apperrors.NotFoundf("media %d not found", id)
		case apperrors.Is(err, store.ErrInUse):
			return apperrors.InUsef("media %d has tag associations", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "delete media")
	}

	s.logger.Info("media deleted", "media_id", id)

	return nil
}

// TagMedia attaches a tag to a media file. Both must exist, and the media
// file must not already carry the tag.
func (s *MediaService) TagMedia(ctx context.Context, mediaID, tagID int64) error {
	if _, err := s.Get(ctx, mediaID); err != nil {
		return err
	}
	if _, err := s.tags.Get(ctx, tagID); err != nil {
		return err
	}

	if err := s.store.TagMedia(ctx, mediaID, tagID); err != nil {
		if apperrors.Is(err, store.ErrAlreadyExists) {
			return apperrors.ErrAlreadyTagged
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "tag media")
	}

	s.logger.Info("media tagged", "media_id", mediaID, "tag_id", tagID)

	return nil
}

// UntagMedia removes a tag from a media file. Both must exist, and the
// association must currently be present.
func (s *MediaService) UntagMedia(ctx context.Context, mediaID, tagID int64) error {
	if _, err := s.Get(ctx, mediaID); err != nil {
		return err
	}
	if _, err := s.tags.Get(ctx, tagID); err != nil {
		return err
	}

	if err := s.store.UntagMedia(ctx, mediaID, tagID); err != nil {
		if apperrors.Is(err, store.ErrNotTagged) {
			return apperrors.ErrNotTagged
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "untag media")
	}

	s.logger.Info("media untagged", "media_id", mediaID, "tag_id", tagID)

	return nil
}

// ListTagsForMedia returns the tags carried by a media file ordered by name
// ascending.
func (s *MediaService) ListTagsForMedia(ctx context.Context, mediaID int64) ([]*domain.Tag, error) {
	if _, err := s.Get(ctx, mediaID); err != nil {
		return nil, err
	}

	tags, err := s.store.ListTagsForMedia(ctx, mediaID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list tags for media")
	}
	return tags, nil
}

// ListMediaByTags returns the media files tagged with every tag in tagIDs
// (set intersection, not union), ordered by id ascending. Duplicate tag ids
// are collapsed before evaluation; an empty set fails with NoTags.
func (s *MediaService) ListMediaByTags(ctx context.Context, tagIDs []int64) ([]*domain.MediaFile, error) {
	seen := make(map[int64]struct{}, len(tagIDs))
	unique := make([]int64, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, apperrors.ErrNoTags
	}

	files, err := s.store.ListMediaByTags(ctx, unique)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list media by tags")
	}
	return files, nil
}
