package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediastash/mediastash-server/internal/store/sqlite"
	"github.com/mediastash/mediastash-server/internal/validation"
)

// testServices bundles the four registries wired over one temp database.
type testServices struct {
	basePaths  *BasePathService
	categories *CategoryService
	tags       *TagService
	media      *MediaService
}

// setupTest creates the full service stack with temporary storage.
func setupTest(t *testing.T) *testServices {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v := validation.New()

	basePaths := NewBasePathService(s, v, logger)
	categories := NewCategoryService(s, v, logger)
	tags := NewTagService(s, categories, v, logger)
	media := NewMediaService(s, basePaths, tags, v, logger)

	return &testServices{
		basePaths:  basePaths,
		categories: categories,
		tags:       tags,
		media:      media,
	}
}
