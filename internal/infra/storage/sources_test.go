package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/infra/storage"
	"daily-briefing/internal/repository"
)

/* ───────── SourceFile ───────── */

func TestSourceFile_SeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	repo, err := storage.NewSourceFile(dir, nil)
	require.NoError(t, err)

	sources, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, sources, len(storage.DefaultSources))
	assert.Equal(t, "BBC News", sources[0].Name)

	_, err = os.Stat(filepath.Join(dir, storage.SourcesFileName))
	assert.NoError(t, err, "seed should be written to disk")
}

func TestSourceFile_CRUD(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewSourceFile(t.TempDir(), nil)
	require.NoError(t, err)

	src := &entity.Source{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true}
	require.NoError(t, repo.Create(ctx, src))
	require.NotEmpty(t, src.ID)

	got, err := repo.Get(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ars Technica", got.Name)

	got.Enabled = false
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, src.ID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	require.NoError(t, repo.Delete(ctx, src.ID))
	_, err = repo.Get(ctx, src.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	sources, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, len(storage.DefaultSources))
}

func TestSourceFile_MissingIDs(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewSourceFile(t.TempDir(), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Source{ID: "nope"}), entity.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), entity.ErrNotFound)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Source{ID: "1", Name: "dup"}), entity.ErrInvalidInput)
}

func TestSourceFile_UnparseableFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.SourcesFileName), []byte("{not json"), 0o644))

	repo, err := storage.NewSourceFile(dir, nil)
	require.NoError(t, err)

	sources, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)
}

/* ───────── Builtin ───────── */

func TestBuiltin_ListAndReadOnly(t *testing.T) {
	ctx := context.Background()
	var repo repository.SourceRepository = storage.Builtin{}

	sources, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 70)
	assert.True(t, repo.ReadOnly())

	// 返却値の変更が元データに影響しないこと
	sources[0].Name = "mutated"
	again, _ := repo.List(ctx)
	assert.NotEqual(t, "mutated", again[0].Name)

	assert.ErrorIs(t, repo.Create(ctx, &entity.Source{}), repository.ErrReadOnly)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Source{ID: "L1"}), repository.ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, "L1"), repository.ErrReadOnly)
}

func TestBuiltinSources_Valid(t *testing.T) {
	seen := map[string]bool{}
	perCategory := map[string]int{}
	for _, s := range storage.BuiltinSources {
		src := s
		require.NoError(t, src.Validate(), src.ID)
		assert.False(t, seen[src.ID], "duplicate id %s", src.ID)
		assert.True(t, src.Enabled)
		assert.False(t, strings.TrimSpace(src.Category) == "")
		seen[src.ID] = true
		perCategory[src.Category]++
	}
	for cat, n := range perCategory {
		assert.Equal(t, 10, n, cat)
	}
	assert.Len(t, perCategory, 7)
}
