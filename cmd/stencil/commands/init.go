package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stencil/internal/domain"
	"stencil/internal/services/bootstrap"
	"stencil/internal/util/slug"
)

func initCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a repository and record the initial snapshot",
		Long: "Runs git init, stages everything and records the initial commit in the\n" +
			"given directory (default: current). Publishing is a separate step, see\n" +
			"`stencil push`.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCtx.Config

			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			if branch == "" {
				branch = cfg.Branch
			}

			rep, err := appCtx.Bootstrap.Run(cmd.Context(), bootstrap.Options{
				Dir:    dir,
				Branch: branch,
				DryRun: cfg.DryRun,
			})
			renderReport(cmd.OutOrStdout(), rep)
			if err != nil {
				return err
			}
			if cfg.DryRun {
				return nil
			}

			return upsertProject(dir, "", branch, rep.Status)
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "initial branch (default from config)")
	return cmd
}

// targetDir resolves the optional positional directory to an absolute path.
func targetDir(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	return os.Getwd()
}

// upsertProject refreshes the registry record for dir, creating it if this
// is the first time stencil touches the directory.
func upsertProject(dir, remote, branch string, status domain.Status) error {
	now := time.Now().UTC()

	existing, ok, err := appCtx.Projects.FindProject(dir)
	if err != nil {
		return err
	}
	if ok {
		if remote != "" {
			existing.Remote = remote
		}
		existing.Status = status
		existing.UpdatedAt = now
		return appCtx.Projects.SaveProject(existing)
	}

	name := filepath.Base(dir)
	return appCtx.Projects.SaveProject(domain.Project{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug.Make(name),
		Path:      dir,
		Remote:    remote,
		Template:  "",
		Branch:    branch,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
