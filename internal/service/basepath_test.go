package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mediastash/mediastash-server/internal/errors"
)

func TestBasePathService_Create(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	dir := t.TempDir()

	bp, err := svc.basePaths.Create(ctx, dir, "  photo archive  ")
	require.NoError(t, err)
	assert.NotZero(t, bp.ID)
	assert.Equal(t, dir, bp.Path)
	assert.Equal(t, "photo archive", bp.Description)
}

func TestBasePathService_Create_Normalization(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	dir := t.TempDir()

	// Trailing slashes and surrounding whitespace are stripped before
	// anything else happens.
	bp, err := svc.basePaths.Create(ctx, "  "+dir+"//  ", "")
	require.NoError(t, err)
	assert.Equal(t, dir, bp.Path)
}

func TestBasePathService_Create_Validation(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	dir := t.TempDir()

	_, err := svc.basePaths.Create(ctx, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPath)

	_, err = svc.basePaths.Create(ctx, dir, strings.Repeat("x", 301))
	assert.ErrorIs(t, err, apperrors.ErrDescriptionTooLong)

	_, err = svc.basePaths.Create(ctx, filepath.Join(dir, "missing"), "")
	assert.ErrorIs(t, err, apperrors.ErrPathNotFound)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = svc.basePaths.Create(ctx, file, "")
	assert.ErrorIs(t, err, apperrors.ErrNotADirectory)
}

func TestBasePathService_Create_NotAbsolute(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "rel"), 0o755))
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := svc.basePaths.Create(ctx, "rel", "")
	assert.ErrorIs(t, err, apperrors.ErrNotAbsolute)
}

func TestBasePathService_Create_Conflicts(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	dir := t.TempDir()
	child := filepath.Join(dir, "child")
	require.NoError(t, os.Mkdir(child, 0o755))

	_, err := svc.basePaths.Create(ctx, dir, "")
	require.NoError(t, err)

	_, err = svc.basePaths.Create(ctx, dir, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	// A directory inside a registered base path is rejected, and so is a
	// parent of one.
	_, err = svc.basePaths.Create(ctx, child, "")
	assert.ErrorIs(t, err, apperrors.ErrSubPath)

	svc2 := setupTest(t)
	_, err = svc2.basePaths.Create(ctx, child, "")
	require.NoError(t, err)
	_, err = svc2.basePaths.Create(ctx, dir, "")
	assert.ErrorIs(t, err, apperrors.ErrSubPath)
}

func TestBasePathService_Get(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	dir := t.TempDir()

	bp, err := svc.basePaths.Create(ctx, dir, "")
	require.NoError(t, err)

	got, err := svc.basePaths.Get(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, bp.Path, got.Path)

	_, err = svc.basePaths.Get(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)

	_, err = svc.basePaths.Get(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBasePathService_GetByPath(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()
	dir := t.TempDir()

	bp, err := svc.basePaths.Create(ctx, dir, "")
	require.NoError(t, err)

	// Lookup normalizes the same way registration does.
	got, err := svc.basePaths.GetByPath(ctx, dir+"/")
	require.NoError(t, err)
	assert.Equal(t, bp.ID, got.ID)

	_, err = svc.basePaths.GetByPath(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPath)

	_, err = svc.basePaths.GetByPath(ctx, filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBasePathService_List(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	a, err := svc.basePaths.Create(ctx, t.TempDir(), "")
	require.NoError(t, err)
	b, err := svc.basePaths.Create(ctx, t.TempDir(), "")
	require.NoError(t, err)

	all, err := svc.basePaths.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)

	some, err := svc.basePaths.List(ctx, []int64{b.ID})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, b.ID, some[0].ID)
}

func TestBasePathService_UpdateDescription(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	bp, err := svc.basePaths.Create(ctx, t.TempDir(), "old")
	require.NoError(t, err)

	require.NoError(t, svc.basePaths.UpdateDescription(ctx, bp.ID, "  new  "))

	got, err := svc.basePaths.Get(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)

	err = svc.basePaths.UpdateDescription(ctx, bp.ID, strings.Repeat("x", 301))
	assert.ErrorIs(t, err, apperrors.ErrDescriptionTooLong)

	err = svc.basePaths.UpdateDescription(ctx, 999, "x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBasePathService_Delete(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	bp, err := svc.basePaths.Create(ctx, t.TempDir(), "")
	require.NoError(t, err)

	require.NoError(t, svc.basePaths.Delete(ctx, bp.ID))

	_, err = svc.basePaths.Get(ctx, bp.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.basePaths.Delete(ctx, bp.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.basePaths.Delete(ctx, -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestBasePathService_Delete_InUse(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	bp, err := svc.basePaths.Create(ctx, t.TempDir(), "")
	require.NoError(t, err)
	m, err := svc.media.Create(ctx, CreateMedia{RelativePath: "a.jpg", BasePathID: bp.ID, Size: 1})
	require.NoError(t, err)

	err = svc.basePaths.Delete(ctx, bp.ID)
	assert.ErrorIs(t, err, apperrors.ErrInUse)

	require.NoError(t, svc.media.Delete(ctx, m.ID))
	require.NoError(t, svc.basePaths.Delete(ctx, bp.ID))
}
