package bootstrap_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stencil/internal/domain"
	"stencil/internal/errors"
	"stencil/internal/exec"
	"stencil/internal/services/bootstrap"
)

// scriptRunner replays canned results by command prefix and records calls.
type scriptRunner struct {
	results map[string]exec.Result
	calls   []string
}

func (s *scriptRunner) Run(_ context.Context, name string, args []string, _ exec.Opts) (exec.Result, error) {
	key := name + " " + strings.Join(args, " ")
	s.calls = append(s.calls, key)
	for prefix, res := range s.results {
		if strings.HasPrefix(key, prefix) {
			return res, nil
		}
	}
	return exec.Result{}, nil
}

func (s *scriptRunner) called(prefix string) bool {
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// freshDir simulates a directory with no git history.
func freshDir() map[string]exec.Result {
	return map[string]exec.Result{
		"git --version":                       {Stdout: "git version 2.44.0\n"},
		"git rev-parse --is-inside-work-tree": {ExitCode: 128, Stderr: "fatal: not a git repository"},
		"git rev-parse --verify HEAD":         {ExitCode: 128},
		"git remote get-url origin":           {ExitCode: 2},
	}
}

func opts(dir string) bootstrap.Options {
	return bootstrap.Options{
		Dir:        dir,
		Remote:     "git@host.example:me/app.git",
		InstallCmd: "make install",
		Push:       true,
		Install:    true,
	}
}

func actions(rep bootstrap.Report) map[string]domain.StepAction {
	out := make(map[string]domain.StepAction, len(rep.Steps))
	for _, s := range rep.Steps {
		out[s.Step] = s.Action
	}
	return out
}

func TestRunFreshDirectoryRunsEverything(t *testing.T) {
	cr := &scriptRunner{results: freshDir()}
	svc := bootstrap.New(cr, zerolog.Nop())

	rep, err := svc.Run(context.Background(), opts("/p"))
	require.NoError(t, err)

	got := actions(rep)
	for _, step := range []string{
		bootstrap.StepInit, bootstrap.StepStage, bootstrap.StepCommit,
		bootstrap.StepRemote, bootstrap.StepPush, bootstrap.StepInstall,
	} {
		assert.Equal(t, domain.ActionRun, got[step], step)
	}
	assert.Equal(t, domain.StatusInstalled, rep.Status)

	// The documented command sequence, in order.
	assert.True(t, cr.called("git init -b main"))
	assert.True(t, cr.called("git add ."))
	assert.True(t, cr.called("git commit -m init commit"))
	assert.True(t, cr.called("git remote add origin git@host.example:me/app.git"))
	assert.True(t, cr.called("git push -u origin main"))
	assert.True(t, cr.called("sh -c make install"))
}

func TestRunIsIdempotent(t *testing.T) {
	// Directory already fully bootstrapped: repo exists, history exists,
	// origin already points at the requested URL.
	results := freshDir()
	results["git rev-parse --is-inside-work-tree"] = exec.Result{Stdout: "true\n"}
	results["git rev-parse --verify HEAD"] = exec.Result{Stdout: "abc123\n"}
	results["git remote get-url origin"] = exec.Result{Stdout: "git@host.example:me/app.git\n"}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	o := opts("/p")
	o.Push = false
	o.Install = false
	rep, err := svc.Run(context.Background(), o)
	require.NoError(t, err)

	got := actions(rep)
	assert.Equal(t, domain.ActionSkip, got[bootstrap.StepInit])
	assert.Equal(t, domain.ActionSkip, got[bootstrap.StepCommit])
	assert.Equal(t, domain.ActionSkip, got[bootstrap.StepRemote])
	assert.Equal(t, domain.ActionDisabled, got[bootstrap.StepPush])
	assert.Equal(t, domain.ActionDisabled, got[bootstrap.StepInstall])

	assert.False(t, cr.called("git init"))
	assert.False(t, cr.called("git commit"))
	assert.False(t, cr.called("git remote add"))
}

func TestRunRemoteConflict(t *testing.T) {
	results := freshDir()
	results["git remote get-url origin"] = exec.Result{Stdout: "git@elsewhere.example:other/repo.git\n"}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	_, err := svc.Run(context.Background(), opts("/p"))
	require.Error(t, err)
	assert.Equal(t, errors.ERemoteExists, errors.CodeOf(err))
	assert.False(t, cr.called("git push"))
}

func TestRunAuthFailureStopsPipeline(t *testing.T) {
	results := freshDir()
	results["git push -u origin main"] = exec.Result{
		ExitCode: 128,
		Stderr:   "fatal: Authentication failed for 'https://host.example/me/app.git/'",
	}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	rep, err := svc.Run(context.Background(), opts("/p"))
	require.Error(t, err)
	assert.Equal(t, errors.EAuthFailed, errors.CodeOf(err))
	assert.Equal(t, domain.StatusCommitted, rep.Status)
	assert.False(t, cr.called("sh -c make install"))
}

func TestRunNothingToCommitIsSkip(t *testing.T) {
	results := freshDir()
	results["git commit -m init commit"] = exec.Result{
		ExitCode: 1,
		Stdout:   "nothing to commit, working tree clean\n",
	}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	o := opts("/p")
	o.Push = false
	o.Install = false
	rep, err := svc.Run(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSkip, actions(rep)[bootstrap.StepCommit])
}

func TestRunInstallFailure(t *testing.T) {
	results := freshDir()
	results["sh -c make install"] = exec.Result{ExitCode: 2, Stderr: "make: *** [install] Error 2"}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	rep, err := svc.Run(context.Background(), opts("/p"))
	require.Error(t, err)
	assert.Equal(t, errors.EInstallFailed, errors.CodeOf(err))
	// Push already succeeded; the failure must not roll status back.
	assert.Equal(t, domain.StatusPushed, rep.Status)
}

func TestRunDryRunExecutesNothing(t *testing.T) {
	cr := &scriptRunner{results: freshDir()}
	svc := bootstrap.New(cr, zerolog.Nop())

	o := opts("/p")
	o.DryRun = true
	rep, err := svc.Run(context.Background(), o)
	require.NoError(t, err)

	got := actions(rep)
	for _, step := range []string{
		bootstrap.StepInit, bootstrap.StepStage, bootstrap.StepCommit,
		bootstrap.StepRemote, bootstrap.StepPush, bootstrap.StepInstall,
	} {
		assert.Equal(t, domain.ActionPlan, got[step], step)
	}

	// Only the git presence probe may run.
	require.Len(t, cr.calls, 1)
	assert.Equal(t, "git --version", cr.calls[0])
}

func TestPublishRefusesNonRepo(t *testing.T) {
	cr := &scriptRunner{results: freshDir()}
	svc := bootstrap.New(cr, zerolog.Nop())

	_, err := svc.Publish(context.Background(), bootstrap.Options{
		Dir:    "/p",
		Remote: "git@host.example:me/app.git",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ENotARepo, errors.CodeOf(err))
	assert.False(t, cr.called("git push"))
}

func TestPublishPushesCheckedOutBranch(t *testing.T) {
	results := freshDir()
	results["git rev-parse --is-inside-work-tree"] = exec.Result{Stdout: "true\n"}
	results["git rev-parse --verify HEAD"] = exec.Result{Stdout: "abc123\n"}
	results["git branch --show-current"] = exec.Result{Stdout: "trunk\n"}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	rep, err := svc.Publish(context.Background(), bootstrap.Options{
		Dir:    "/p",
		Branch: "main",
		Remote: "git@host.example:me/app.git",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPushed, rep.Status)
	assert.True(t, cr.called("git push -u origin trunk"))
	assert.False(t, cr.called("git add"))
	assert.False(t, cr.called("git commit"))
}

func TestPublishNeedsHistory(t *testing.T) {
	results := freshDir()
	results["git rev-parse --is-inside-work-tree"] = exec.Result{Stdout: "true\n"}

	cr := &scriptRunner{results: results}
	svc := bootstrap.New(cr, zerolog.Nop())

	_, err := svc.Publish(context.Background(), bootstrap.Options{
		Dir:    "/p",
		Remote: "git@host.example:me/app.git",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ENothingToCommit, errors.CodeOf(err))
}

func TestInstallAlone(t *testing.T) {
	cr := &scriptRunner{results: map[string]exec.Result{}}
	svc := bootstrap.New(cr, zerolog.Nop())

	rep, err := svc.Install(context.Background(), "/p", "make install", false)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRun, actions(rep)[bootstrap.StepInstall])
	assert.True(t, cr.called("sh -c make install"))

	rep, err = svc.Install(context.Background(), "/p", "make install", true)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionPlan, actions(rep)[bootstrap.StepInstall])
}

func TestRunMissingGit(t *testing.T) {
	cr := &scriptRunner{results: map[string]exec.Result{
		"git --version": {ExitCode: 127},
	}}
	svc := bootstrap.New(cr, zerolog.Nop())

	_, err := svc.Run(context.Background(), opts("/p"))
	require.Error(t, err)
	assert.Equal(t, errors.EGitNotInstalled, errors.CodeOf(err))
}
