// Package git wraps the git CLI via exec.Runner for the bootstrap workflow.
package git

import (
	"context"
	"strings"

	"stencil/internal/errors"
	"stencil/internal/exec"
)

// EnsureInstalled verifies the git binary is available.
func EnsureInstalled(ctx context.Context, cr exec.Runner) (string, error) {
	res, err := cr.Run(ctx, "git", []string{"--version"}, exec.Opts{})
	if err != nil || res.ExitCode != 0 {
		return "", errors.New(errors.EGitNotInstalled, "git is not installed or not on PATH")
	}
	return strings.TrimSpace(res.Stdout), nil
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(ctx context.Context, cr exec.Runner, dir string) (bool, error) {
	res, err := cr.Run(ctx, "git", []string{"rev-parse", "--is-inside-work-tree"}, exec.Opts{Dir: dir})
	if err != nil {
		return false, errors.Wrap(errors.EInternal, "failed to run git rev-parse", err)
	}
	return res.ExitCode == 0 && strings.TrimSpace(res.Stdout) == "true", nil
}

// RepoRoot returns the top-level directory of the work tree containing dir.
func RepoRoot(ctx context.Context, cr exec.Runner, dir string) (string, error) {
	res, err := cr.Run(ctx, "git", []string{"rev-parse", "--show-toplevel"}, exec.Opts{Dir: dir})
	if err != nil {
		return "", errors.Wrap(errors.EInternal, "failed to run git rev-parse --show-toplevel", err)
	}
	if res.ExitCode != 0 {
		return "", errors.Newf(errors.ENotARepo, "%s is not inside a git repository", dir)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Init initialises a repository in dir on the given initial branch.
func Init(ctx context.Context, cr exec.Runner, dir, branch string) error {
	res, err := cr.Run(ctx, "git", []string{"init", "-b", branch}, exec.Opts{Dir: dir})
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to run git init", err)
	}
	if res.ExitCode != 0 {
		return errors.Newf(errors.EInternal, "git init failed: %s", firstLine(res.Stderr))
	}
	return nil
}

// StageAll stages every file under dir.
func StageAll(ctx context.Context, cr exec.Runner, dir string) error {
	res, err := cr.Run(ctx, "git", []string{"add", "."}, exec.Opts{Dir: dir})
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to run git add", err)
	}
	if res.ExitCode != 0 {
		return errors.Newf(errors.EInternal, "git add failed: %s", firstLine(res.Stderr))
	}
	return nil
}

// Commit records a commit with the given message.
// Returns E_NOTHING_TO_COMMIT when the index matches HEAD.
func Commit(ctx context.Context, cr exec.Runner, dir, message string) error {
	res, err := cr.Run(ctx, "git", []string{"commit", "-m", message}, exec.Opts{Dir: dir})
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to run git commit", err)
	}
	if res.ExitCode != 0 {
		out := res.Stdout + res.Stderr
		if strings.Contains(out, "nothing to commit") {
			return errors.New(errors.ENothingToCommit, "nothing to commit")
		}
		return errors.Newf(errors.EInternal, "git commit failed: %s", firstLine(res.Stderr))
	}
	return nil
}

// HasCommits reports whether HEAD resolves (at least one commit exists).
func HasCommits(ctx context.Context, cr exec.Runner, dir string) (bool, error) {
	res, err := cr.Run(ctx, "git", []string{"rev-parse", "--verify", "HEAD"}, exec.Opts{Dir: dir})
	if err != nil {
		return false, errors.Wrap(errors.EInternal, "failed to run git rev-parse --verify HEAD", err)
	}
	return res.ExitCode == 0, nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func IsClean(ctx context.Context, cr exec.Runner, dir string) (bool, error) {
	res, err := cr.Run(ctx, "git", []string{"status", "--porcelain"}, exec.Opts{Dir: dir})
	if err != nil {
		return false, errors.Wrap(errors.EInternal, "failed to run git status", err)
	}
	if res.ExitCode != 0 {
		return false, nil
	}
	return strings.TrimSpace(res.Stdout) == "", nil
}

// CurrentBranch returns the checked-out branch name, or "" when detached.
func CurrentBranch(ctx context.Context, cr exec.Runner, dir string) (string, error) {
	res, err := cr.Run(ctx, "git", []string{"branch", "--show-current"}, exec.Opts{Dir: dir})
	if err != nil {
		return "", errors.Wrap(errors.EInternal, "failed to run git branch", err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// RemoteURL returns the URL of the named remote, or "" when unset.
// Failures deliberately collapse to "": a missing remote and a broken git
// config look the same to the workflow.
func RemoteURL(ctx context.Context, cr exec.Runner, dir, remote string) string {
	res, err := cr.Run(ctx, "git", []string{"remote", "get-url", remote}, exec.Opts{Dir: dir})
	if err != nil || res.ExitCode != 0 {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// AddRemote registers a remote. Returns E_REMOTE_EXISTS when the name is taken.
func AddRemote(ctx context.Context, cr exec.Runner, dir, remote, url string) error {
	res, err := cr.Run(ctx, "git", []string{"remote", "add", remote, url}, exec.Opts{Dir: dir})
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to run git remote add", err)
	}
	if res.ExitCode != 0 {
		if strings.Contains(res.Stderr, "already exists") {
			return errors.Newf(errors.ERemoteExists, "remote %q already exists", remote)
		}
		return errors.Newf(errors.EInternal, "git remote add failed: %s", firstLine(res.Stderr))
	}
	return nil
}

// Push publishes branch to remote, optionally setting the upstream.
// Failures are classified into the stable error taxonomy.
func Push(ctx context.Context, cr exec.Runner, dir, remote, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, branch)

	res, err := cr.Run(ctx, "git", args, exec.Opts{Dir: dir})
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to run git push", err)
	}
	if res.ExitCode != 0 {
		return ClassifyPushError(res.Stderr)
	}
	return nil
}

// UserConfigured returns the configured user.name and user.email for dir.
// Unset values come back empty; this never fails.
func UserConfigured(ctx context.Context, cr exec.Runner, dir string) (name, email string) {
	if res, err := cr.Run(ctx, "git", []string{"config", "--get", "user.name"}, exec.Opts{Dir: dir}); err == nil && res.ExitCode == 0 {
		name = strings.TrimSpace(res.Stdout)
	}
	if res, err := cr.Run(ctx, "git", []string{"config", "--get", "user.email"}, exec.Opts{Dir: dir}); err == nil && res.ExitCode == 0 {
		email = strings.TrimSpace(res.Stdout)
	}
	return name, email
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
