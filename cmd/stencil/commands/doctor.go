package commands

import (
	"github.com/spf13/cobra"

	"stencil/internal/domain"
	"stencil/internal/errors"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the environment can bootstrap projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := appCtx.Doctor.Run(cmd.Context())
			renderChecks(cmd.OutOrStdout(), checks)
			for _, c := range checks {
				if c.Status == domain.CheckFail {
					return errors.New(errors.EInternal, "environment checks failed")
				}
			}
			return nil
		},
	}
}
