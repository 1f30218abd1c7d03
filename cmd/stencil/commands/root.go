package commands

import (
	"os"

	"github.com/spf13/cobra"

	"stencil/internal/app"
	"stencil/internal/errors"
)

var (
	configDir string
	verbose   bool
	quiet     bool
	dryRun    bool

	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:           "stencil",
		Short:         "Scaffold projects and bootstrap their repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return errors.Wrap(errors.EInternal, "cannot resolve home directory", err)
			}
			cfg, err := app.LoadConfig(os.Getenv, home, configDir)
			if err != nil {
				return err
			}
			cfg.DryRun = dryRun
			switch {
			case verbose:
				cfg.LogLevel = "debug"
			case quiet:
				cfg.LogLevel = "error"
			}
			appCtx = app.New(cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "config dir (default platform config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "errors only")
	root.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "print planned commands without executing")

	root.AddCommand(
		newCmd(),
		initCmd(),
		pushCmd(),
		installCmd(),
		listCmd(),
		templatesCmd(),
		doctorCmd(),
	)
	return root.Execute()
}
