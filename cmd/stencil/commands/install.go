package commands

import (
	"github.com/spf13/cobra"

	"stencil/internal/domain"
)

func installCmd() *cobra.Command {
	var command string

	cmd := &cobra.Command{
		Use:   "install [dir]",
		Short: "Run the project's install command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCtx.Config

			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			if command == "" {
				command = cfg.InstallCmd
			}

			rep, err := appCtx.Bootstrap.Install(cmd.Context(), dir, command, cfg.DryRun)
			renderReport(cmd.OutOrStdout(), rep)
			if err != nil {
				return err
			}
			if cfg.DryRun {
				return nil
			}

			if p, ok, err := appCtx.Projects.FindProject(dir); err == nil && ok {
				return upsertProject(dir, "", p.Branch, domain.AfterInstall(p.Status))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "install command (default from config, \"make install\")")
	return cmd
}
