package errors_test

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"stencil/internal/errors"
)

func TestErrorFormat(t *testing.T) {
	err := errors.New(errors.ERemoteExists, "origin already points elsewhere")
	want := "E_REMOTE_EXISTS: origin already points elsewhere"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := errors.Wrap(errors.ENetwork, "push failed", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable via errors.Is")
	}
	if errors.CodeOf(err) != errors.ENetwork {
		t.Fatalf("code = %q, want E_NETWORK", errors.CodeOf(err))
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := errors.CodeOf(fmt.Errorf("plain")); got != "" {
		t.Fatalf("expected empty code, got %q", got)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", errors.New(errors.EUsage, "bad flag"), 2},
		{"coded", errors.New(errors.EAuthFailed, "denied"), 1},
		{"plain", fmt.Errorf("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errors.ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPrintStableFormat(t *testing.T) {
	var buf bytes.Buffer
	errors.Print(&buf, errors.New(errors.EDestExists, "destination not empty"))

	want := "error_code: E_DEST_EXISTS\ndestination not empty\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrintPlainError(t *testing.T) {
	var buf bytes.Buffer
	errors.Print(&buf, fmt.Errorf("plain failure"))
	if buf.String() != "plain failure\n" {
		t.Fatalf("got %q", buf.String())
	}
}
