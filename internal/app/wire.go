package app

import (
	"io"

	"github.com/rs/zerolog"

	"stencil/internal/domain"
	"stencil/internal/exec"
	"stencil/internal/forge"
	"stencil/internal/log"
	"stencil/internal/services/bootstrap"
	"stencil/internal/services/doctor"
	"stencil/internal/services/scaffold"
	"stencil/internal/store"
	"stencil/internal/templates"
)

// App bundles the stores, services and clients for the CLI.
type App struct {
	Config Config
	Log    zerolog.Logger

	Runner    exec.Runner
	Projects  domain.ProjectStore
	Scaffold  domain.Scaffolder
	Bootstrap *bootstrap.Service
	Doctor    *doctor.Service
	Forge     domain.ForgeClient // nil unless a forge is configured
}

// New constructs the dependency graph from cfg, logging to logOut.
func New(cfg Config, logOut io.Writer) *App {
	logger := log.New(logOut, cfg.LogLevel)

	runner := exec.NewOSRunner(log.WithComponent(logger, "exec"))

	var fc domain.ForgeClient
	if cfg.ForgeBaseURL != "" {
		fc = forge.New(cfg.ForgeBaseURL, cfg.ForgeToken, nil)
	}

	return &App{
		Config:    cfg,
		Log:       logger,
		Runner:    runner,
		Projects:  store.NewFileStore(cfg.DataDir),
		Scaffold:  scaffold.New(templates.Builtin(), cfg.TemplateDirs, log.WithComponent(logger, "scaffold")),
		Bootstrap: bootstrap.New(runner, log.WithComponent(logger, "bootstrap")),
		Doctor:    doctor.New(runner, cfg.DataDir),
		Forge:     fc,
	}
}
