package doctor

import (
	"context"
	"os"
	"path/filepath"

	"stencil/internal/domain"
	"stencil/internal/exec"
	"stencil/internal/git"
)

// Service runs environment checks.
type Service struct {
	cr      exec.Runner
	dataDir string
}

// New returns a doctor over the given runner and data directory.
func New(cr exec.Runner, dataDir string) *Service {
	return &Service{cr: cr, dataDir: dataDir}
}

// Run executes every check. It never returns an error; problems are checks
// with a fail status.
func (s *Service) Run(ctx context.Context) []domain.Check {
	checks := []domain.Check{
		s.checkGit(ctx),
		s.checkUserName(ctx),
		s.checkUserEmail(ctx),
		s.checkDataDir(),
	}
	return checks
}

func (s *Service) checkGit(ctx context.Context) domain.Check {
	version, err := git.EnsureInstalled(ctx, s.cr)
	if err != nil {
		return domain.Check{Name: "git", Status: domain.CheckFail, Detail: "git not found on PATH"}
	}
	return domain.Check{Name: "git", Status: domain.CheckOK, Detail: version}
}

func (s *Service) checkUserName(ctx context.Context) domain.Check {
	name, _ := git.UserConfigured(ctx, s.cr, "")
	if name == "" {
		return domain.Check{
			Name:   "git user.name",
			Status: domain.CheckWarn,
			Detail: "unset; commits will use whatever git guesses",
		}
	}
	return domain.Check{Name: "git user.name", Status: domain.CheckOK, Detail: name}
}

func (s *Service) checkUserEmail(ctx context.Context) domain.Check {
	_, email := git.UserConfigured(ctx, s.cr, "")
	if email == "" {
		return domain.Check{
			Name:   "git user.email",
			Status: domain.CheckWarn,
			Detail: "unset; commits will use whatever git guesses",
		}
	}
	return domain.Check{Name: "git user.email", Status: domain.CheckOK, Detail: email}
}

// checkDataDir verifies the registry directory is (or can be made) writable.
func (s *Service) checkDataDir() domain.Check {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return domain.Check{Name: "data dir", Status: domain.CheckFail, Detail: err.Error()}
	}
	probe := filepath.Join(s.dataDir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return domain.Check{Name: "data dir", Status: domain.CheckFail, Detail: err.Error()}
	}
	_ = os.Remove(probe)
	return domain.Check{Name: "data dir", Status: domain.CheckOK, Detail: s.dataDir}
}
