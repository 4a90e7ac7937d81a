package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediastash/mediastash-server/internal/domain"
	apperrors "github.com/mediastash/mediastash-server/internal/errors"
)

// createCategory is a shortcut for tests that just need a category to
// attach tags to.
func createCategory(t *testing.T, svc *testServices, name string) *domain.Category {
	t.Helper()
	c, err := svc.categories.Create(context.Background(), name, "1f77b4", "")
	require.NoError(t, err)
	return c
}

func TestTagService_Create(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	tag, err := svc.tags.Create(ctx, CreateTag{Name: "  sunset  ", CategoryID: cat.ID, Description: "  golden hour  "})
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)
	assert.Equal(t, "sunset", tag.Name)
	assert.Equal(t, cat.ID, tag.CategoryID)
	assert.Equal(t, "golden hour", tag.Description)
}

func TestTagService_Create_Validation(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	// The category reference is checked before the name.
	_, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategoryID)

	_, err = svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: 999})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.tags.Create(ctx, CreateTag{Name: "   ", CategoryID: cat.ID})
	assert.ErrorIs(t, err, apperrors.ErrInvalidName)

	_, err = svc.tags.Create(ctx, CreateTag{Name: strings.Repeat("x", 51), CategoryID: cat.ID})
	assert.ErrorIs(t, err, apperrors.ErrNameTooLong)

	_, err = svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: cat.ID, Description: strings.Repeat("x", 301)})
	assert.ErrorIs(t, err, apperrors.ErrDescriptionTooLong)
}

func TestTagService_Create_Duplicate(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	subject := createCategory(t, svc, "Subject")
	place := createCategory(t, svc, "Place")

	_, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: subject.ID})
	require.NoError(t, err)

	_, err = svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: subject.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	// The same name is free in another category.
	_, err = svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: place.ID})
	assert.NoError(t, err)
}

func TestTagService_Get(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	tag, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: cat.ID})
	require.NoError(t, err)

	got, err := svc.tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "sunset", got.Name)

	_, err = svc.tags.Get(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)

	_, err = svc.tags.Get(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTagService_Update(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	subject := createCategory(t, svc, "Subject")
	place := createCategory(t, svc, "Place")

	tag, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: subject.ID, Description: "original"})
	require.NoError(t, err)

	// All-nil patch is a no-op, not a conflict with the tag's own name.
	require.NoError(t, svc.tags.Update(ctx, tag.ID, UpdateTag{}))
	got, err := svc.tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "sunset", got.Name)
	assert.Equal(t, subject.ID, got.CategoryID)
	assert.Equal(t, "original", got.Description)

	name := "  dusk  "
	require.NoError(t, svc.tags.Update(ctx, tag.ID, UpdateTag{Name: &name, CategoryID: &place.ID}))
	got, err = svc.tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "dusk", got.Name)
	assert.Equal(t, place.ID, got.CategoryID)
	assert.Equal(t, "original", got.Description)

	badCat := int64(999)
	err = svc.tags.Update(ctx, tag.ID, UpdateTag{CategoryID: &badCat})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.tags.Update(ctx, 999, UpdateTag{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTagService_Update_Conflict(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	_, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: cat.ID})
	require.NoError(t, err)
	other, err := svc.tags.Create(ctx, CreateTag{Name: "beach", CategoryID: cat.ID})
	require.NoError(t, err)

	name := "sunset"
	err = svc.tags.Update(ctx, other.ID, UpdateTag{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestTagService_List(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	subject := createCategory(t, svc, "Subject")
	place := createCategory(t, svc, "Place")

	for _, tc := range []struct {
		name string
		cat  int64
	}{
		{"sunset", subject.ID},
		{"beach", place.ID},
		{"animal", subject.ID},
	} {
		_, err := svc.tags.Create(ctx, CreateTag{Name: tc.name, CategoryID: tc.cat})
		require.NoError(t, err)
	}

	all, err := svc.tags.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "animal", all[0].Name, "tags sort by name")

	filtered, err := svc.tags.List(ctx, &subject.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "animal", filtered[0].Name)
	assert.Equal(t, "sunset", filtered[1].Name)

	missing := int64(999)
	_, err = svc.tags.List(ctx, &missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTagService_SearchByName(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	for _, name := range []string{"sunset", "sunrise", "beach"} {
		_, err := svc.tags.Create(ctx, CreateTag{Name: name, CategoryID: cat.ID})
		require.NoError(t, err)
	}

	_, err := svc.tags.SearchByName(ctx, "su")
	assert.ErrorIs(t, err, apperrors.ErrInvalidName)

	matches, err := svc.tags.SearchByName(ctx, "SUN")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "sunrise", matches[0].Name)
	assert.Equal(t, "sunset", matches[1].Name)

	matches, err = svc.tags.SearchByName(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTagService_Delete(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	tag, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: cat.ID})
	require.NoError(t, err)

	require.NoError(t, svc.tags.Delete(ctx, tag.ID))

	_, err = svc.tags.Get(ctx, tag.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.tags.Delete(ctx, tag.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.tags.Delete(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestTagService_Delete_InUse(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	cat := createCategory(t, svc, "Subject")

	tag, err := svc.tags.Create(ctx, CreateTag{Name: "sunset", CategoryID: cat.ID})
	require.NoError(t, err)

	bp, err := svc.basePaths.Create(ctx, t.TempDir(), "")
	require.NoError(t, err)
	m, err := svc.media.Create(ctx, CreateMedia{RelativePath: "a.jpg", BasePathID: bp.ID, Size: 1})
	require.NoError(t, err)
	require.NoError(t, svc.media.TagMedia(ctx, m.ID, tag.ID))

	err = svc.tags.Delete(ctx, tag.ID)
	assert.ErrorIs(t, err, apperrors.ErrInUse)

	require.NoError(t, svc.media.UntagMedia(ctx, m.ID, tag.ID))
	require.NoError(t, svc.tags.Delete(ctx, tag.ID))
}
