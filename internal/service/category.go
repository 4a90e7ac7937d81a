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

// searchPrefixMinGraphemes is the shortest accepted search prefix.
const searchPrefixMinGraphemes = 3

// CategoryService manages tag categories.
type CategoryService struct {
	store     store.CategoryStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(s store.CategoryStore, v *validation.Validator, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// categoryParams is validated in field order: name, then description, then
// color. That is the order the checks are defined to run in.
type categoryParams struct {
	Name        string `json:"name" validate:"required,maxgraphemes=50"`
	Description string `json:"description" validate:"maxgraphemes=300"`
	Color       string `json:"color" validate:"hexcolor6"`
}

// cleanCategory normalizes a category in place: name and description are
// trimmed, the color is lowercased and stored without the leading '#'.
func cleanCategory(c *domain.Category) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Color = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Color)), "#")
}

func (s *CategoryService) validate(c *domain.Category) error {
	return s.validator.Validate(categoryParams{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
	})
}

// Create adds a new tag category.
func (s *CategoryService) Create(ctx context.Context, name, color, description string) (*domain.Category, error) {
	c := &domain.Category{
		Name:        name,
		Color:       color,
		Description: description,
	}
	cleanCategory(c)
	if err := s.validate(c); err != nil {
		return nil, err
	}

	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create category")
	}

	s.logger.Info("category created", "category_id", c.ID, "name", c.Name)

	return c, nil
}

// Get returns a category by ID.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidID
	}

	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("category %d not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "get category")
	}
	return c, nil
}

// List returns categories ordered by id ascending. With a non-empty ids
// slice only those categories are returned; otherwise all of them.
func (s *CategoryService) List(ctx context.Context, ids []int64) ([]*domain.Category, error) {
	categories, err := s.store.ListCategories(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list categories")
	}
	return categories, nil
}

// SearchByName returns the categories whose name starts with the given
// prefix, compared case-insensitively. The prefix must be at least three
// characters long. The match runs in memory over the full list, which is
// fine at the expected scale of tens to low hundreds of categories.
func (s *CategoryService) SearchByName(ctx context.Context, prefix string) ([]*domain.Category, error) {
	prefix = strings.TrimSpace(prefix)
	if validation.Graphemes(prefix) < searchPrefixMinGraphemes {
		return nil, apperrors.ErrNameTooShort
	}

	all, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(prefix)
	matches := []*domain.Category{}
	for _, c := range all {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// UpdateCategory carries the fields of a category patch. Nil fields keep
// their current value; validation runs against the merged record.
type UpdateCategory struct {
	Name        *string
	Color       *string
	Description *string
}

// Update patches a category.
func (s *CategoryService) Update(ctx context.Context, id int64, upd UpdateCategory) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Color != nil {
		c.Color = *upd.Color
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}

	cleanCategory(c)
	if err := s.validate(c); err != nil {
		return err
	}

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.NotFoundf("category %d not found", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "update category")
	}
	return nil
}

// Delete removes a category. It fails with InUse while any tag still
// references it.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrInvalidID
	}

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		switch {
		case apperrors.Is(err, store.ErrNotFound):
			return apperrors.NotFoundf("category %d not found", id)
		case apperrors.Is(err, store.ErrInUse):
			return apperrors.InUsef("category %d has tags", id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "delete category")
	}

	s.logger.Info("category deleted", "category_id", id)

	return nil
}
