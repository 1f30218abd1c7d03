package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"stencil/internal/domain"
	"stencil/internal/errors"
	"stencil/internal/exec"
	"stencil/internal/git"
)

// Step names, in execution order. Part of the CLI output contract.
const (
	StepEnsureGit = "ensure-git"
	StepInit      = "init"
	StepStage     = "stage"
	StepCommit    = "commit"
	StepRemote    = "remote"
	StepPush      = "push"
	StepInstall   = "install"
)

// DefaultCommitMessage is the initial snapshot message.
const DefaultCommitMessage = "init commit"

// Options configure a bootstrap run.
type Options struct {
	Dir           string
	Branch        string // initial branch, e.g. "main"
	CommitMessage string // defaults to DefaultCommitMessage
	Remote        string // remote URL; empty disables remote and push steps
	RemoteName    string // defaults to "origin"
	InstallCmd    string // e.g. "make install"; empty disables the install step
	Push          bool
	Install       bool
	DryRun        bool
}

func (o *Options) fillDefaults() {
	if o.Branch == "" {
		o.Branch = "main"
	}
	if o.CommitMessage == "" {
		o.CommitMessage = DefaultCommitMessage
	}
	if o.RemoteName == "" {
		o.RemoteName = "origin"
	}
}

// Service executes the bootstrap workflow through an injectable runner.
type Service struct {
	cr  exec.Runner
	log zerolog.Logger
}

// New returns a bootstrap service using cr for all external commands.
func New(cr exec.Runner, log zerolog.Logger) *Service {
	return &Service{cr: cr, log: log}
}

// Run executes the workflow. The returned report lists what each step did;
// report.Status is how far the project is now known to be bootstrapped. On
// error the report covers the steps completed before the failure.
func (s *Service) Run(ctx context.Context, opts Options) (Report, error) {
	opts.fillDefaults()

	rep := Report{Status: domain.StatusScaffolded}

	if err := s.ensureGit(ctx, &rep); err != nil {
		return rep, err
	}
	if opts.DryRun {
		s.plan(&rep, opts)
		return rep, nil
	}

	for _, step := range []func(context.Context, *Report, Options) error{
		s.initRepo,
		s.stageAll,
		s.commitInitial,
		s.addRemote,
		s.pushUpstream,
		s.runInstall,
	} {
		if err := step(ctx, &rep, opts); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// Publish runs only the remote and push steps against an existing
// repository; `stencil push` uses it so a dirty working tree is never
// swept into a surprise commit.
func (s *Service) Publish(ctx context.Context, opts Options) (Report, error) {
	opts.fillDefaults()
	opts.Push = true

	rep := Report{Status: domain.StatusCommitted}
	if err := s.ensureGit(ctx, &rep); err != nil {
		return rep, err
	}
	if opts.DryRun {
		rep.Add(StepRemote, domain.ActionPlan, fmt.Sprintf("git remote add %s %s", opts.RemoteName, opts.Remote))
		rep.Add(StepPush, domain.ActionPlan, fmt.Sprintf("git push -u %s %s", opts.RemoteName, opts.Branch))
		return rep, nil
	}

	isRepo, err := git.IsRepo(ctx, s.cr, opts.Dir)
	if err != nil {
		return rep, err
	}
	if !isRepo {
		return rep, errors.Newf(errors.ENotARepo, "%s is not a git repository; run `stencil init` first", opts.Dir)
	}
	hasCommits, err := git.HasCommits(ctx, s.cr, opts.Dir)
	if err != nil {
		return rep, err
	}
	if !hasCommits {
		return rep, errors.New(errors.ENothingToCommit, "repository has no commits to publish")
	}

	// Push the branch that is actually checked out, not the configured one.
	if current, err := git.CurrentBranch(ctx, s.cr, opts.Dir); err == nil && current != "" {
		opts.Branch = current
	}
	if clean, err := git.IsClean(ctx, s.cr, opts.Dir); err == nil && !clean {
		s.log.Warn().Str("dir", opts.Dir).Msg("working tree has uncommitted changes; they will not be pushed")
	}

	if err := s.addRemote(ctx, &rep, opts); err != nil {
		return rep, err
	}
	if err := s.pushUpstream(ctx, &rep, opts); err != nil {
		return rep, err
	}
	return rep, nil
}

// Install runs the install hook on its own, for `stencil install`.
func (s *Service) Install(ctx context.Context, dir, cmd string, dryRun bool) (Report, error) {
	rep := Report{}
	if dryRun {
		rep.Add(StepInstall, domain.ActionPlan, cmd)
		return rep, nil
	}
	err := s.runInstall(ctx, &rep, Options{Dir: dir, InstallCmd: cmd, Install: true})
	return rep, err
}

// Report is a domain.Report plus the resulting project status.
type Report struct {
	domain.Report
	Status domain.Status
}

func (s *Service) ensureGit(ctx context.Context, rep *Report) error {
	version, err := git.EnsureInstalled(ctx, s.cr)
	if err != nil {
		return err
	}
	rep.Add(StepEnsureGit, domain.ActionRun, version)
	return nil
}

// plan records every remaining step without touching the directory; a dry
// run may target a directory that does not exist yet.
func (s *Service) plan(rep *Report, opts Options) {
	rep.Add(StepInit, domain.ActionPlan, fmt.Sprintf("git init -b %s", opts.Branch))
	rep.Add(StepStage, domain.ActionPlan, "git add .")
	rep.Add(StepCommit, domain.ActionPlan, fmt.Sprintf("git commit -m %q", opts.CommitMessage))
	if opts.Remote == "" {
		rep.Add(StepRemote, domain.ActionDisabled, "no remote configured")
	} else {
		rep.Add(StepRemote, domain.ActionPlan, fmt.Sprintf("git remote add %s %s", opts.RemoteName, opts.Remote))
	}
	switch {
	case opts.Remote == "" || !opts.Push:
		rep.Add(StepPush, domain.ActionDisabled, "push disabled")
	default:
		rep.Add(StepPush, domain.ActionPlan, fmt.Sprintf("git push -u %s %s", opts.RemoteName, opts.Branch))
	}
	if !opts.Install || opts.InstallCmd == "" {
		rep.Add(StepInstall, domain.ActionDisabled, "install disabled")
	} else {
		rep.Add(StepInstall, domain.ActionPlan, opts.InstallCmd)
	}
}

func (s *Service) initRepo(ctx context.Context, rep *Report, opts Options) error {
	isRepo, err := git.IsRepo(ctx, s.cr, opts.Dir)
	if err != nil {
		return err
	}
	if isRepo {
		rep.Add(StepInit, domain.ActionSkip, "already a git repository")
		return nil
	}
	if err := git.Init(ctx, s.cr, opts.Dir, opts.Branch); err != nil {
		return err
	}
	rep.Add(StepInit, domain.ActionRun, "initialized on "+opts.Branch)
	return nil
}

func (s *Service) stageAll(ctx context.Context, rep *Report, opts Options) error {
	if err := git.StageAll(ctx, s.cr, opts.Dir); err != nil {
		return err
	}
	rep.Add(StepStage, domain.ActionRun, "staged all files")
	return nil
}

func (s *Service) commitInitial(ctx context.Context, rep *Report, opts Options) error {
	hasCommits, err := git.HasCommits(ctx, s.cr, opts.Dir)
	if err != nil {
		return err
	}
	if hasCommits {
		rep.Add(StepCommit, domain.ActionSkip, "history already exists")
		rep.Status = domain.StatusCommitted
		return nil
	}
	err = git.Commit(ctx, s.cr, opts.Dir, opts.CommitMessage)
	if errors.CodeOf(err) == errors.ENothingToCommit {
		rep.Add(StepCommit, domain.ActionSkip, "nothing to commit")
		return nil
	}
	if err != nil {
		return err
	}
	rep.Add(StepCommit, domain.ActionRun, opts.CommitMessage)
	rep.Status = domain.StatusCommitted
	return nil
}

func (s *Service) addRemote(ctx context.Context, rep *Report, opts Options) error {
	if opts.Remote == "" {
		rep.Add(StepRemote, domain.ActionDisabled, "no remote configured")
		return nil
	}
	existing := git.RemoteURL(ctx, s.cr, opts.Dir, opts.RemoteName)
	if existing == opts.Remote {
		rep.Add(StepRemote, domain.ActionSkip, "remote already set")
		return nil
	}
	if existing != "" {
		return errors.Newf(errors.ERemoteExists,
			"remote %q already points at %s; remove it or pass that URL", opts.RemoteName, existing)
	}
	if err := git.AddRemote(ctx, s.cr, opts.Dir, opts.RemoteName, opts.Remote); err != nil {
		return err
	}
	rep.Add(StepRemote, domain.ActionRun, opts.Remote)
	return nil
}

func (s *Service) pushUpstream(ctx context.Context, rep *Report, opts Options) error {
	if opts.Remote == "" || !opts.Push {
		rep.Add(StepPush, domain.ActionDisabled, "push disabled")
		return nil
	}
	if err := git.Push(ctx, s.cr, opts.Dir, opts.RemoteName, opts.Branch, true); err != nil {
		return err
	}
	rep.Add(StepPush, domain.ActionRun, fmt.Sprintf("%s -> %s", opts.Branch, opts.RemoteName))
	rep.Status = domain.StatusPushed
	return nil
}

func (s *Service) runInstall(ctx context.Context, rep *Report, opts Options) error {
	if !opts.Install || opts.InstallCmd == "" {
		rep.Add(StepInstall, domain.ActionDisabled, "install disabled")
		return nil
	}
	res, err := s.cr.Run(ctx, "sh", []string{"-c", opts.InstallCmd}, exec.Opts{Dir: opts.Dir})
	if err != nil {
		return errors.Wrap(errors.EInstallFailed, "install command could not run", err)
	}
	if res.ExitCode != 0 {
		return errors.Newf(errors.EInstallFailed, "install command exited %d: %s", res.ExitCode, opts.InstallCmd)
	}
	rep.Add(StepInstall, domain.ActionRun, opts.InstallCmd)
	if rep.Status == domain.StatusPushed {
		rep.Status = domain.StatusInstalled
	}
	s.log.Info().Str("cmd", opts.InstallCmd).Msg("install hook completed")
	return nil
}
