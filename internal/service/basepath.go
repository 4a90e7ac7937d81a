// Package service implements the catalog registries: base paths, tag
// categories, tags, and media files with their tag associations.
//
// Each service is a stateless façade over the store; nothing is cached
// between calls. Cross-registry lookups go through narrow resolver
// interfaces so the dependency graph stays explicit and acyclic.
package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mediastash/mediastash-server/internal/domain"
	apperrors "github.com/mediastash/mediastash-server/internal/errors"
	"github.com/mediastash/mediastash-server/internal/store"
	"github.com/mediastash/mediastash-server/internal/validation"
)

// BasePathService manages registered filesystem roots.
type BasePathService struct {
	store     store.BasePathStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBasePathService creates a new base path service.
func NewBasePathService(s store.BasePathStore, v *validation.Validator, logger *slog.Logger) *BasePathService {
	return &BasePathService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// createBasePathParams is validated in field order: path shape first, then
// the description limit. Filesystem checks run afterwards in Create.
type createBasePathParams struct {
	Path        string `json:"path" validate:"required"`
	Description string `json:"description" validate:"maxgraphemes=300"`
}

// Create registers a directory as a base path.
//
// The path is trimmed and stripped of trailing slashes; the description is
// trimmed. The directory must exist, be a directory, and be absolute. No
// registered path may equal the new one or contain it (or be contained by
// it); those fail with AlreadyExists and SubPath respectively.
func (s *BasePathService) Create(ctx context.Context, path, description string) (*domain.BasePath, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimRight(path, "/")
	description = strings.TrimSpace(description)

	if err := s.validator.Validate(createBasePathParams{
		Path:        path,
		Description: description,
	}); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrPathNotFound
		}
		return nil, apperrors.Wrapf(err, apperrors.CodeInternal, "stat %s", path)
	}
	if !info.IsDir() {
		return nil, apperrors.ErrNotADirectory
	}
	if !filepath.IsAbs(path) {
		return nil, apperrors.ErrNotAbsolute
	}

	bp := &domain.BasePath{
		Path:        path,
		Description: description,
	}
	if err := s.store.CreateBasePath(ctx, bp); err != nil {
		switch {
		case apperrors.Is(err, store.ErrAlreadyExists):
			return nil, apperrors.AlreadyExistsf("base path %s already registered", path)
		case apperrors.Is(err, store.ErrSubPath):
			return nil, apperrors.ErrSubPath
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create base path")
	}

	s.logger.Info("base path registered", "base_path_id", bp.ID, "path", bp.Path)

	return bp, nil
}

// Get returns a base path by ID.
func (s *BasePathService) Get(ctx context.Context, id int64) (*domain.BasePath, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidID
	}

	bp, err := s.store.GetBasePath(ctx, id)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("base path %d not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "get base path")
	}
	return bp, nil
}

// GetByPath returns a base path by its normalized path. The scanner uses
// this to resolve the root a discovered file belongs to.
func (s *BasePathService) GetByPath(ctx context.Context, path string) (*domain.BasePath, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimRight(path, "/")
	if path == "" {
		return nil, apperrors.ErrInvalidPath
	}

	bp, err := s.store.GetBasePathByPath(ctx, path)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("base path %s not found", path)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "get base path by path")
	}
	return bp, nil
}

// List returns base paths ordered by id ascending. With a non-empty ids
// slice only those base paths are returned; otherwise all of them.
func (s *BasePathService) List(ctx context.Context, ids []int64) ([]*domain.BasePath, error) {
	basePaths, err := s.store.ListBasePaths(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list base paths")
	}
	return basePaths, nil
}

type updateBasePathParams struct {
	Description string `json:"description" validate:"maxgraphemes=300"`
}

// UpdateDescription replaces the description of a base path. The new value
// is trimmed before the length check.
func (s *BasePathService) UpdateDescription(ctx context.Context, id int64, description string) error {
	if id <= 0 {
		return apperrors.ErrInvalidID
	}

	description = strings.TrimSpace(description)
	if err := s.validator.Validate(updateBasePathParams{Description: description}); err != nil {
		return err
	}

	if err := s.store.UpdateBasePathDescription(ctx, id, description); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.NotFoundf("base path %d not found", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "update base path description")
	}
	return nil
}

// Delete removes a base path. It fails with InUse while any media file
// still references it.
func (s *BasePathService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrInvalidID
	}

	if err := s.store.DeleteBasePath(ctx, id); err != nil {
		switch {
		case apperrors.Is(err, store.ErrNotFound):
			return apperrors.NotFoundf("base path %d not found", id)
		case apperrors.Is(err, store.ErrInUse):
			return apperrors.InUsef("base path %d has media files", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "delete base path")
	}

	s.logger.Info("base path deleted", "base_path_id", id)

	return nil
}
