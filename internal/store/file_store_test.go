package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stencil/internal/domain"
	"stencil/internal/errors"
	"stencil/internal/store"
)

func sample(name string, created time.Time) domain.Project {
	return domain.Project{
		ID:        "id-" + name,
		Name:      name,
		Slug:      name,
		Path:      "/projects/" + name,
		Template:  "default",
		Branch:    "main",
		Status:    domain.StatusCommitted,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestSaveAndListNewestFirst(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveProject(sample("older", t0)))
	require.NoError(t, s.SaveProject(sample("newer", t0.Add(time.Hour))))

	got, err := s.ListProjects()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Name)
	assert.Equal(t, "older", got[1].Name)
}

func TestSaveUpsertsByPath(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	t0 := time.Now().UTC()

	p := sample("app", t0)
	require.NoError(t, s.SaveProject(p))

	p.Status = domain.StatusPushed
	p.Remote = "git@host.example:me/app.git"
	require.NoError(t, s.SaveProject(p))

	got, err := s.ListProjects()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusPushed, got[0].Status)
	assert.Equal(t, "git@host.example:me/app.git", got[0].Remote)
}

func TestFindProject(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	require.NoError(t, s.SaveProject(sample("app", time.Now().UTC())))

	for _, key := range []string{"app", "/projects/app"} {
		p, ok, err := s.FindProject(key)
		require.NoError(t, err)
		require.True(t, ok, "key %q", key)
		assert.Equal(t, "app", p.Name)
	}

	_, ok, err := s.FindProject("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveProject(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	require.NoError(t, s.SaveProject(sample("app", time.Now().UTC())))

	require.NoError(t, s.RemoveProject("id-app"))
	require.NoError(t, s.RemoveProject("id-app")) // second remove is a no-op

	got, err := s.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMissingFileIsEmptyRegistry(t *testing.T) {
	s := store.NewFileStore(t.TempDir())

	got, err := s.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte("{not json"), 0o644))

	s := store.NewFileStore(dir)
	_, err := s.ListProjects()
	require.Error(t, err)
	assert.Equal(t, errors.EStoreCorrupt, errors.CodeOf(err))
}

func TestUnsupportedSchema(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"),
		[]byte(`{"schema_version":"99","projects":[]}`), 0o644))

	s := store.NewFileStore(dir)
	_, err := s.ListProjects()
	require.Error(t, err)
	assert.Equal(t, errors.EStoreCorrupt, errors.CodeOf(err))
}
