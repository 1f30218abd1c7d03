package domain

import "context"

// ProjectStore persists the local project registry.
type ProjectStore interface {
	// SaveProject inserts or replaces a record, keyed by path.
	SaveProject(p Project) error
	// ListProjects returns all records, newest first.
	ListProjects() ([]Project, error)
	// FindProject looks a record up by name, slug or path.
	FindProject(key string) (Project, bool, error)
	RemoveProject(id string) error
}

// Scaffolder renders project skeletons from templates.
type Scaffolder interface {
	// Templates lists the built-in template plus any discovered in the
	// configured search directories.
	Templates() ([]TemplateRef, error)
	// Resolve finds a template by name and parses its manifest.
	Resolve(name string) (TemplateRef, Manifest, error)
	// Render materialises the template skeleton into dest.
	Render(ctx context.Context, ref TemplateRef, req RenderRequest) (RenderResult, error)
}

// RenderRequest carries everything a template render needs.
type RenderRequest struct {
	ProjectName string
	Slug        string
	Description string
	AuthorName  string
	AuthorEmail string
	Dest        string            // destination directory; must not already contain files
	Vars        map[string]string // overrides for manifest variables
}

// RenderResult reports what a render produced.
type RenderResult struct {
	Dest       string
	Files      []string // relative paths, sorted
	InstallCmd string   // from the manifest install hook, may be empty
}

// ForgeClient talks to a git hosting service to manage remote repositories.
// It is optional; commands degrade gracefully when no forge is configured.
type ForgeClient interface {
	// CreateRepo creates a repository and returns its clone URL.
	CreateRepo(ctx context.Context, name string, private bool) (string, error)
	RepoExists(ctx context.Context, owner, name string) (bool, error)
	// CurrentUser returns the login the auth token belongs to.
	CurrentUser(ctx context.Context) (string, error)
}
