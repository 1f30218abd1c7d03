package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"stencil/internal/domain"
	"stencil/internal/services/bootstrap"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
)

// renderReport prints one line per bootstrap step plus the final status.
func renderReport(w io.Writer, rep bootstrap.Report) {
	for _, s := range rep.Steps {
		var marker string
		switch s.Action {
		case domain.ActionRun:
			marker = okStyle.Render("✓")
		case domain.ActionSkip:
			marker = dimStyle.Render("-")
		case domain.ActionPlan:
			marker = warnStyle.Render("›")
		case domain.ActionDisabled:
			marker = dimStyle.Render("·")
		}
		line := fmt.Sprintf("%s %-10s %s", marker, s.Step, s.Detail)
		if s.Action == domain.ActionSkip || s.Action == domain.ActionDisabled {
			line = fmt.Sprintf("%s %s", marker, dimStyle.Render(fmt.Sprintf("%-10s %s", s.Step, s.Detail)))
		}
		fmt.Fprintln(w, line)
	}
	if rep.Status != "" {
		fmt.Fprintln(w, boldStyle.Render("status: "+string(rep.Status)))
	}
}

// renderChecks prints doctor probe results.
func renderChecks(w io.Writer, checks []domain.Check) {
	for _, c := range checks {
		var marker string
		switch c.Status {
		case domain.CheckOK:
			marker = okStyle.Render("✓")
		case domain.CheckWarn:
			marker = warnStyle.Render("!")
		case domain.CheckFail:
			marker = failStyle.Render("✗")
		}
		fmt.Fprintf(w, "%s %-16s %s\n", marker, c.Name, c.Detail)
	}
}

// renderProjects prints the registry as a plain table.
func renderProjects(w io.Writer, projects []domain.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no projects recorded yet; try `stencil new`"))
		return
	}
	fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("%-24s %-12s %-40s %s", "NAME", "STATUS", "PATH", "REMOTE")))
	for _, p := range projects {
		status := string(p.Status)
		switch p.Status {
		case domain.StatusInstalled, domain.StatusPushed:
			status = okStyle.Render(status)
		case domain.StatusScaffolded:
			status = warnStyle.Render(status)
		}
		remote := p.Remote
		if remote == "" {
			remote = dimStyle.Render("(none)")
		}
		fmt.Fprintf(w, "%-24s %-12s %-40s %s\n", p.Name, status, p.Path, remote)
	}
}
