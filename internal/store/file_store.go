package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/renameio/v2"

	"stencil/internal/domain"
	stencilerrors "stencil/internal/errors"
)

const registryFile = "projects.json"

// SchemaVersion is the registry file schema; bump on incompatible changes.
const SchemaVersion = "1"

type registry struct {
	SchemaVersion string           `json:"schema_version"`
	Projects      []domain.Project `json:"projects"`
}

// FileStore keeps the project registry in a single JSON file under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write, not here.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

func (s *FileStore) path() string { return filepath.Join(s.dir, registryFile) }

// SaveProject inserts or replaces a record. Records are keyed by path so
// re-bootstrapping the same directory updates in place.
func (s *FileStore) SaveProject(p domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range reg.Projects {
		if reg.Projects[i].Path == p.Path {
			reg.Projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		reg.Projects = append(reg.Projects, p)
	}
	return s.write(reg)
}

// ListProjects returns all records, newest first.
func (s *FileStore) ListProjects() ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return nil, err
	}
	out := append([]domain.Project(nil), reg.Projects...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// FindProject looks a record up by name, slug or path.
func (s *FileStore) FindProject(key string) (domain.Project, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return domain.Project{}, false, err
	}
	for _, p := range reg.Projects {
		if p.Name == key || p.Slug == key || p.Path == key {
			return p, true, nil
		}
	}
	return domain.Project{}, false, nil
}

// RemoveProject deletes the record with the given id. Unknown ids are a no-op.
func (s *FileStore) RemoveProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}
	kept := reg.Projects[:0]
	for _, p := range reg.Projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(reg.Projects) {
		return nil
	}
	reg.Projects = kept
	return s.write(reg)
}

// load reads the registry; a missing file yields an empty registry.
func (s *FileStore) load() (registry, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return registry{SchemaVersion: SchemaVersion}, nil
	}
	if err != nil {
		return registry{}, stencilerrors.Wrap(stencilerrors.EStoreCorrupt, "failed to read projects.json", err)
	}

	var reg registry
	if err := json.Unmarshal(b, &reg); err != nil {
		return registry{}, stencilerrors.Wrap(stencilerrors.EStoreCorrupt, "invalid json in projects.json", err)
	}
	if reg.SchemaVersion != SchemaVersion {
		return registry{}, stencilerrors.Newf(stencilerrors.EStoreCorrupt, "projects.json: unsupported schema_version %q", reg.SchemaVersion)
	}
	return reg, nil
}

func (s *FileStore) write(reg registry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(s.path(), b, 0o644)
}

var _ domain.ProjectStore = (*FileStore)(nil)
