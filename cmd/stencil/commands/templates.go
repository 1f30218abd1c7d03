package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := appCtx.Scaffold.Templates()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, ref := range refs {
				_, man, err := appCtx.Scaffold.Resolve(ref.Name)
				if err != nil {
					return err
				}
				origin := "built-in"
				if !ref.BuiltIn {
					origin = ref.Dir
				}
				fmt.Fprintf(w, "%s %s\n", boldStyle.Render(ref.Name), dimStyle.Render(origin))
				if man.Description != "" {
					fmt.Fprintf(w, "  %s\n", man.Description)
				}
				for _, v := range man.Variables {
					req := ""
					if v.Required {
						req = " (required)"
					}
					fmt.Fprintf(w, "  --var %s=%s%s\n", v.Name, v.Default, dimStyle.Render(req))
				}
			}
			return nil
		},
	}
}
