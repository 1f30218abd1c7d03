package doctor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stencil/internal/domain"
	"stencil/internal/exec"
	"stencil/internal/services/doctor"
)

type stubRunner struct {
	results map[string]exec.Result
}

func (s *stubRunner) Run(_ context.Context, name string, args []string, _ exec.Opts) (exec.Result, error) {
	key := name + " " + strings.Join(args, " ")
	if res, ok := s.results[key]; ok {
		return res, nil
	}
	return exec.Result{ExitCode: 1}, nil
}

func byName(checks []domain.Check) map[string]domain.Check {
	out := make(map[string]domain.Check, len(checks))
	for _, c := range checks {
		out[c.Name] = c
	}
	return out
}

func TestRunAllHealthy(t *testing.T) {
	cr := &stubRunner{results: map[string]exec.Result{
		"git --version":               {Stdout: "git version 2.44.0\n"},
		"git config --get user.name":  {Stdout: "Ada\n"},
		"git config --get user.email": {Stdout: "ada@example.com\n"},
	}}
	svc := doctor.New(cr, t.TempDir())

	got := byName(svc.Run(context.Background()))
	require.Len(t, got, 4)
	assert.Equal(t, domain.CheckOK, got["git"].Status)
	assert.Equal(t, domain.CheckOK, got["git user.name"].Status)
	assert.Equal(t, domain.CheckOK, got["git user.email"].Status)
	assert.Equal(t, domain.CheckOK, got["data dir"].Status)
}

func TestRunMissingGitAndIdentity(t *testing.T) {
	cr := &stubRunner{results: map[string]exec.Result{}}
	svc := doctor.New(cr, t.TempDir())

	got := byName(svc.Run(context.Background()))
	assert.Equal(t, domain.CheckFail, got["git"].Status)
	assert.Equal(t, domain.CheckWarn, got["git user.name"].Status)
	assert.Equal(t, domain.CheckWarn, got["git user.email"].Status)
}
