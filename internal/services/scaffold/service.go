package scaffold

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"stencil/internal/domain"
	"stencil/internal/errors"
)

// Service locates templates and renders skeletons.
type Service struct {
	builtin    fs.FS
	searchDirs []string
	log        zerolog.Logger
}

// New returns a scaffolder over the built-in templates plus searchDirs.
// Templates in searchDirs shadow built-ins of the same name.
func New(builtin fs.FS, searchDirs []string, log zerolog.Logger) *Service {
	return &Service{builtin: builtin, searchDirs: searchDirs, log: log}
}

// Templates lists every resolvable template, search directories first.
func (s *Service) Templates() ([]domain.TemplateRef, error) {
	var refs []domain.TemplateRef
	seen := make(map[string]bool)

	for _, dir := range s.searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// A configured dir that does not exist yet is not an error.
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || seen[e.Name()] {
				continue
			}
			tdir := filepath.Join(dir, e.Name())
			if _, err := os.Stat(filepath.Join(tdir, ManifestFile)); err != nil {
				continue
			}
			seen[e.Name()] = true
			refs = append(refs, domain.TemplateRef{Name: e.Name(), Dir: tdir})
		}
	}

	entries, err := fs.ReadDir(s.builtin, ".")
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to read built-in templates", err)
	}
	for _, e := range entries {
		if !e.IsDir() || seen[e.Name()] {
			continue
		}
		seen[e.Name()] = true
		refs = append(refs, domain.TemplateRef{Name: e.Name(), BuiltIn: true})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Resolve finds the named template ("" means "default") and parses its
// manifest. Search directories take precedence over built-ins.
func (s *Service) Resolve(name string) (domain.TemplateRef, domain.Manifest, error) {
	if name == "" {
		name = "default"
	}

	for _, dir := range s.searchDirs {
		tdir := filepath.Join(dir, name)
		if _, err := os.Stat(filepath.Join(tdir, ManifestFile)); err != nil {
			continue
		}
		m, err := loadManifest(os.DirFS(tdir))
		if err != nil {
			return domain.TemplateRef{}, domain.Manifest{}, err
		}
		return domain.TemplateRef{Name: name, Dir: tdir}, m, nil
	}

	if _, err := fs.Stat(s.builtin, path.Join(name, ManifestFile)); err == nil {
		tfs, err := fs.Sub(s.builtin, name)
		if err != nil {
			return domain.TemplateRef{}, domain.Manifest{}, errors.Wrap(errors.EInternal, "failed to open built-in template", err)
		}
		m, err := loadManifest(tfs)
		if err != nil {
			return domain.TemplateRef{}, domain.Manifest{}, err
		}
		return domain.TemplateRef{Name: name, BuiltIn: true}, m, nil
	}

	return domain.TemplateRef{}, domain.Manifest{}, errors.Newf(errors.ETemplateNotFound, "no template named %q", name)
}

// Render materialises ref's skeleton into req.Dest.
func (s *Service) Render(ctx context.Context, ref domain.TemplateRef, req domain.RenderRequest) (domain.RenderResult, error) {
	tfs, err := s.fsFor(ref)
	if err != nil {
		return domain.RenderResult{}, err
	}
	manifest, err := loadManifest(tfs)
	if err != nil {
		return domain.RenderResult{}, err
	}

	vars, err := mergeVars(manifest, req.Vars)
	if err != nil {
		return domain.RenderResult{}, err
	}

	if err := ensureEmptyDest(req.Dest); err != nil {
		return domain.RenderResult{}, err
	}

	rc := renderContext{Vars: vars, Year: time.Now().Year()}
	rc.Project.Name = req.ProjectName
	rc.Project.Slug = req.Slug
	rc.Project.Description = req.Description
	rc.Author.Name = req.AuthorName
	rc.Author.Email = req.AuthorEmail

	files, err := renderTree(ctx, tfs, req.Dest, rc)
	if err != nil {
		return domain.RenderResult{}, err
	}

	s.log.Info().Str("template", ref.Name).Str("dest", req.Dest).Int("files", len(files)).Msg("skeleton rendered")
	return domain.RenderResult{
		Dest:       req.Dest,
		Files:      files,
		InstallCmd: manifest.Hooks.Install,
	}, nil
}

func (s *Service) fsFor(ref domain.TemplateRef) (fs.FS, error) {
	if ref.BuiltIn {
		sub, err := fs.Sub(s.builtin, ref.Name)
		if err != nil {
			return nil, errors.Wrap(errors.EInternal, "failed to open built-in template", err)
		}
		return sub, nil
	}
	return os.DirFS(ref.Dir), nil
}

// mergeVars applies overrides on top of manifest defaults. Unknown override
// names and missing required variables are usage errors.
func mergeVars(m domain.Manifest, overrides map[string]string) (map[string]string, error) {
	declared := make(map[string]bool, len(m.Variables))
	vars := make(map[string]string, len(m.Variables))
	for _, v := range m.Variables {
		declared[v.Name] = true
		vars[v.Name] = v.Default
	}
	for k, v := range overrides {
		if !declared[k] {
			return nil, errors.Newf(errors.EUsage, "template %q declares no variable %q", m.Name, k)
		}
		vars[k] = v
	}
	for _, v := range m.Variables {
		if v.Required && vars[v.Name] == "" {
			return nil, errors.Newf(errors.EUsage, "variable %q is required (set it with --var %s=...)", v.Name, v.Name)
		}
	}
	return vars, nil
}

// ensureEmptyDest allows a missing or empty destination directory only.
func ensureEmptyDest(dest string) error {
	entries, err := os.ReadDir(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to inspect destination", err)
	}
	if len(entries) > 0 {
		return errors.Newf(errors.EDestExists, "destination %q already contains files", dest)
	}
	return nil
}

var _ domain.Scaffolder = (*Service)(nil)
