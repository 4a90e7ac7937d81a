// Package store defines the persistence interfaces for the media catalog.
package store

import (
	"context"

	"github.com/mediastash/mediastash-server/internal/domain"
)

// BasePathStore persists registered filesystem roots.
type BasePathStore interface {
	// CreateBasePath inserts a new base path and assigns its ID.
	// The containment scan and the insert run in one transaction: an exact
	// path match returns ErrAlreadyExists, a nested path returns ErrSubPath.
	CreateBasePath(ctx context.Context, bp *domain.BasePath) error
	GetBasePath(ctx context.Context, id int64) (*domain.BasePath, error)
	GetBasePathByPath(ctx context.Context, path string) (*domain.BasePath, error)
	// ListBasePaths returns base paths ordered by id ascending.
	// An empty ids slice returns all rows.
	ListBasePaths(ctx context.Context, ids []int64) ([]*domain.BasePath, error)
	UpdateBasePathDescription(ctx context.Context, id int64, description string) error
	// DeleteBasePath removes a base path. Returns ErrInUse while media
	// files reference it.
	DeleteBasePath(ctx context.Context, id int64) error
}

// CategoryStore persists tag categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	// ListCategories returns categories ordered by id ascending.
	// An empty ids slice returns all rows.
	ListCategories(ctx context.Context, ids []int64) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	// DeleteCategory removes a category. Returns ErrInUse while tags
	// reference it.
	DeleteCategory(ctx context.Context, id int64) error
}

// TagStore persists tags.
type TagStore interface {
	// CreateTag inserts a new tag and assigns its ID.
	// Returns ErrAlreadyExists when (name, category_id) is taken.
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	// ListTags returns tags ordered by name ascending, optionally filtered
	// to one category.
	ListTags(ctx context.Context, categoryID *int64) ([]*domain.Tag, error)
	// UpdateTag rewrites a tag. Returns ErrAlreadyExists when another tag
	// already holds the (name, category_id) pair.
	UpdateTag(ctx context.Context, t *domain.Tag) error
	// DeleteTag removes a tag. Returns ErrInUse while media associations
	// reference it.
	DeleteTag(ctx context.Context, id int64) error
}

// MediaStore persists media files and their tag associations.
type MediaStore interface {
	// CreateMedia inserts a new media file and assigns its ID.
	// Returns ErrAlreadyExists when (base_path_id, relative_path) is taken.
	CreateMedia(ctx context.Context, m *domain.MediaFile) error
	GetMedia(ctx context.Context, id int64) (*domain.MediaFile, error)
	GetMediaByRelativePath(ctx context.Context, basePathID int64, relativePath string) (*domain.MediaFile, error)
	// ListMediaByBasePath returns the media files under one base path
	// ordered by id ascending.
	ListMediaByBasePath(ctx context.Context, basePathID int64) ([]*domain.MediaFile, error)
	UpdateMedia(ctx context.Context, m *domain.MediaFile) error
	// DeleteMedia removes a media file. Returns ErrInUse while tag
	// associations reference it.
	DeleteMedia(ctx context.Context, id int64) error

	// TagMedia records that a media file carries a tag.
	// Returns ErrAlreadyExists when the association already exists.
	TagMedia(ctx context.Context, mediaID, tagID int64) error
	// UntagMedia removes an association. Returns ErrNotTagged when the
	// media file does not carry the tag.
	UntagMedia(ctx context.Context, mediaID, tagID int64) error
	ListTagsForMedia(ctx context.Context, mediaID int64) ([]*domain.Tag, error)
	// ListMediaByTags returns the media files tagged with every tag in
	// tagIDs, ordered by id ascending. tagIDs must be deduplicated and
	// non-empty.
	ListMediaByTags(ctx context.Context, tagIDs []int64) ([]*domain.MediaFile, error)
}

// Store is the full persistence surface implemented by the SQLite store.
type Store interface {
	BasePathStore
	CategoryStore
	TagStore
	MediaStore

	Close() error
}
