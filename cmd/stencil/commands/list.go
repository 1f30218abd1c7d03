package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects stencil has bootstrapped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := appCtx.Projects.ListProjects()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(projects)
			}
			renderProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")
	return cmd
}
