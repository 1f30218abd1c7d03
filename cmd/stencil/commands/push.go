package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"stencil/internal/errors"
	"stencil/internal/git"
	"stencil/internal/services/bootstrap"
	"stencil/internal/util/slug"
)

func pushCmd() *cobra.Command {
	var (
		createRemote bool
		private      bool
	)

	cmd := &cobra.Command{
		Use:   "push [remote-url]",
		Short: "Register the remote and publish the local history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var remote string
			if len(args) == 1 {
				remote = args[0]
			}
			switch {
			case remote == "" && !createRemote:
				return errors.New(errors.EUsage, "pass a remote URL or --create")
			case remote != "" && createRemote:
				return errors.New(errors.EUsage, "pass either a remote URL or --create, not both")
			}

			ctx := cmd.Context()
			cfg := appCtx.Config

			dir, err := targetDir(nil)
			if err != nil {
				return err
			}
			// Record and operate on the repo root even when invoked from a
			// subdirectory. Outside a repo Publish reports E_NOT_A_REPO.
			if root, err := git.RepoRoot(ctx, appCtx.Runner, dir); err == nil {
				dir = root
			}

			if createRemote {
				if appCtx.Forge == nil {
					return errors.New(errors.EUsage, "--create needs a forge; set forge.base_url in config.yaml")
				}
				name := slug.Make(filepath.Base(dir))
				if cfg.DryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "would create repository %q on %s\n", name, cfg.ForgeBaseURL)
					remote = "<created-remote-url>"
				} else {
					remote, err = createForgeRepo(ctx, cmd.OutOrStdout(), name, private)
					if err != nil {
						return err
					}
				}
			}

			rep, err := appCtx.Bootstrap.Publish(ctx, bootstrap.Options{
				Dir:        dir,
				Branch:     cfg.Branch,
				Remote:     remote,
				RemoteName: cfg.RemoteName,
				DryRun:     cfg.DryRun,
			})
			renderReport(cmd.OutOrStdout(), rep)
			if err != nil {
				return err
			}
			if cfg.DryRun {
				return nil
			}
			if host := git.ParseRemoteHost(remote); host != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "published to %s\n", host)
			}

			return upsertProject(dir, remote, cfg.Branch, rep.Status)
		},
	}

	cmd.Flags().BoolVar(&createRemote, "create", false, "create the remote repository on the configured forge")
	cmd.Flags().BoolVar(&private, "private", false, "create the forge repository as private")
	return cmd
}

// createForgeRepo creates name on the configured forge and returns the clone
// URL. Existence is probed first so a taken name reports the owner and name
// instead of a bare conflict status. Callers check appCtx.Forge for nil.
func createForgeRepo(ctx context.Context, out io.Writer, name string, private bool) (string, error) {
	if owner, err := appCtx.Forge.CurrentUser(ctx); err == nil {
		exists, err := appCtx.Forge.RepoExists(ctx, owner, name)
		if err != nil {
			return "", err
		}
		if exists {
			return "", errors.Newf(errors.ERemoteExists, "repository %s/%s already exists on forge", owner, name)
		}
	}
	remote, err := appCtx.Forge.CreateRepo(ctx, name, private)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(out, "created remote repository %s\n", remote)
	return remote, nil
}
