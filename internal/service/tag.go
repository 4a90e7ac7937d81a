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

// CategoryResolver is the slice of the category service the tag service
// needs: existence checks for referenced categories.
type CategoryResolver interface {
	Get(ctx context.Context, id int64) (*domain.Category, error)
}

// TagService manages tags.
type TagService struct {
	store      store.TagStore
	categories CategoryResolver
	validator  *validation.Validator
	logger     *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(s store.TagStore, categories CategoryResolver, v *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:      s,
		categories: categories,
		validator:  v,
		logger:     logger,
	}
}

type tagParams struct {
	Name        string `json:"name" validate:"required,maxgraphemes=50"`
	Description string `json:"description" validate:"maxgraphemes=300"`
}

// resolveCategory checks that categoryID references an existing category.
func (s *TagService) resolveCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return apperrors.ErrInvalidCategoryID
	}
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		return err
	}
	return nil
}

// CreateTag carries the fields for a new tag.
type CreateTag struct {
	Name        string
	CategoryID  int64
	Description string
}

// Create adds a new tag to a category. The category must exist, the name
// must be non-empty and at most 50 characters, and the (name, category)
// pair must be free.
func (s *TagService) Create(ctx context.Context, data CreateTag) (*domain.Tag, error) {
	if err := s.resolveCategory(ctx, data.CategoryID); err != nil {
		return nil, err
	}

	t := &domain.Tag{
		Name:        strings.TrimSpace(data.Name),
		CategoryID:  data.CategoryID,
		Description: strings.TrimSpace(data.Description),
	}
	if err := s.validator.Validate(tagParams{
		Name:        t.Name,
		Description: t.Description,
	}); err != nil {
		return nil, err
	}

	if err := s.store.CreateTag(ctx, t); err != nil {
		if apperrors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExistsf("tag %s already exists in category %d", t.Name, t.CategoryID)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create tag")
	}

	s.logger.Info("tag created", "tag_id", t.ID, "name", t.Name, "category_id", t.CategoryID)

	return t, nil
}

// Get returns a tag by ID.
func (s *TagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidID
	}

	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("tag %d not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "get tag")
	}
	return t, nil
}

// UpdateTag carries the fields of a tag patch. Nil fields keep their
// current value; validation runs against the merged record.
type UpdateTag struct {
	Name        *string
	CategoryID  *int64
	Description *string
}

// Update patches a tag. The merged record is validated like a new tag,
// including the category existence check and (name, category) uniqueness
// against other tags.
func (s *TagService) Update(ctx context.Context, id int64, upd UpdateTag) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.CategoryID != nil {
		t.CategoryID = *upd.CategoryID
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}

	if err := s.resolveCategory(ctx, t.CategoryID); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	if err := s.validator.Validate(tagParams{
		Name:        t.Name,
		Description: t.Description,
	}); err != nil {
		return err
	}

	if err := s.store.UpdateTag(ctx, t); err != nil {
		switch {
		case apperrors.Is(err, store.ErrAlreadyExists):
			return apperrors.AlreadyExistsf("tag %s already exists in category %d", t.Name, t.CategoryID)
		case apperrors.Is(err, store.ErrNotFound):
			return apperrors.NotFoundf("tag %d not found", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "update tag")
	}
	return nil
}

// List returns tags ordered by name ascending. With a non-nil categoryID
// the category must exist and only its tags are returned.
func (s *TagService) List(ctx context.Context, categoryID *int64) ([]*domain.Tag, error) {
	if categoryID != nil {
		if err := s.resolveCategory(ctx, *categoryID); err != nil {
			return nil, err
		}
	}

	tags, err := s.store.ListTags(ctx, categoryID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list tags")
	}
	return tags, nil
}

// SearchByName returns the tags whose name starts with the given prefix,
// compared case-insensitively. The prefix must be at least three characters
// long; shorter prefixes fail with InvalidName. The match runs in memory
// over the full list.
func (s *TagService) SearchByName(ctx context.Context, prefix string) ([]*domain.Tag, error) {
	prefix = strings.TrimSpace(prefix)
	if validation.Graphemes(prefix) < searchPrefixMinGraphemes {
		return nil, apperrors.ErrInvalidName
	}

	all, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(prefix)
	matches := []*domain.Tag{}
	for _, t := range all {
		if strings.HasPrefix(strings.ToLower(t.Name), prefix) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// Delete removes a tag. It fails with InUse while any media association
// still references it.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrInvalidID
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		switch {
		case apperrors.Is(err, store.ErrNotFound):
			return apperrors.NotFoundf("tag %d not found", id)
		case apperrors.Is(err, store.ErrInUse):
			return apperrors.InUsef("tag %d is applied to media", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "delete tag")
	}

	s.logger.Info("tag deleted", "tag_id", id)

	return nil
}
