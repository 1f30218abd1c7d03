package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stencil/internal/domain"
	"stencil/internal/errors"
	"stencil/internal/services/bootstrap"
	"stencil/internal/util/slug"
)

func newCmd() *cobra.Command {
	var (
		templateName string
		description  string
		remote       string
		varFlags     []string
		noPush       bool
		noInstall    bool
		createRemote bool
		private      bool
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Render a template and bootstrap the resulting repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if createRemote && remote != "" {
				return errors.New(errors.EUsage, "pass either --remote or --create, not both")
			}

			ctx := cmd.Context()
			cfg := appCtx.Config

			name := args[0]
			sl := slug.Make(name)

			vars, err := parseVarFlags(varFlags)
			if err != nil {
				return err
			}

			ref, _, err := appCtx.Scaffold.Resolve(templateName)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			dest := filepath.Join(cwd, sl)

			installCmd := cfg.InstallCmd
			if cfg.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "would render template %q into %s\n", ref.Name, dest)
			} else {
				res, err := appCtx.Scaffold.Render(ctx, ref, domain.RenderRequest{
					ProjectName: name,
					Slug:        sl,
					Description: description,
					AuthorName:  cfg.AuthorName,
					AuthorEmail: cfg.AuthorEmail,
					Dest:        dest,
					Vars:        vars,
				})
				if err != nil {
					return err
				}
				if res.InstallCmd != "" {
					installCmd = res.InstallCmd
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rendered %d files into %s\n", len(res.Files), dest)
			}

			if createRemote {
				if appCtx.Forge == nil {
					return errors.New(errors.EUsage, "--create needs a forge; set forge.base_url in config.yaml")
				}
				if cfg.DryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "would create repository %q on %s\n", sl, cfg.ForgeBaseURL)
				} else {
					remote, err = createForgeRepo(ctx, cmd.OutOrStdout(), sl, private)
					if err != nil {
						return err
					}
				}
			}

			rep, err := appCtx.Bootstrap.Run(ctx, bootstrap.Options{
				Dir:        dest,
				Branch:     cfg.Branch,
				Remote:     remote,
				RemoteName: cfg.RemoteName,
				InstallCmd: installCmd,
				Push:       !noPush,
				Install:    !noInstall,
				DryRun:     cfg.DryRun,
			})
			renderReport(cmd.OutOrStdout(), rep)
			if err != nil {
				return err
			}
			if cfg.DryRun {
				return nil
			}

			now := time.Now().UTC()
			return appCtx.Projects.SaveProject(domain.Project{
				ID:        uuid.NewString(),
				Name:      name,
				Slug:      sl,
				Path:      dest,
				Remote:    remote,
				Template:  ref.Name,
				Branch:    cfg.Branch,
				Status:    rep.Status,
				CreatedAt: now,
				UpdatedAt: now,
			})
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template name (default \"default\")")
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description for the template")
	cmd.Flags().StringVarP(&remote, "remote", "r", "", "remote URL to register and push to")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "template variable override, key=value (repeatable)")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "skip publishing to the remote")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "skip the install hook")
	cmd.Flags().BoolVar(&createRemote, "create", false, "create the remote repository on the configured forge")
	cmd.Flags().BoolVar(&private, "private", false, "create the forge repository as private")
	return cmd
}

// parseVarFlags turns repeated key=value flags into a map.
func parseVarFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(flags))
	for _, f := range flags {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, errors.Newf(errors.EUsage, "--var wants key=value, got %q", f)
		}
		vars[k] = v
	}
	return vars, nil
}
