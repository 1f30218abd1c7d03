package paths

import (
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) Getenv {
	return func(k string) string { return m[k] }
}

func TestConfigDirResolution(t *testing.T) {
	home := "/home/u"

	cases := []struct {
		name   string
		env    map[string]string
		darwin bool
		want   string
	}{
		{
			name: "override wins",
			env:  map[string]string{"STENCIL_CONFIG_DIR": "/etc/stencil", "XDG_CONFIG_HOME": "/xdg"},
			want: "/etc/stencil",
		},
		{
			name:   "darwin default",
			env:    map[string]string{"XDG_CONFIG_HOME": "/xdg"},
			darwin: true,
			want:   filepath.Join(home, "Library", "Preferences", "stencil"),
		},
		{
			name: "xdg",
			env:  map[string]string{"XDG_CONFIG_HOME": "/xdg"},
			want: "/xdg/stencil",
		},
		{
			name: "fallback",
			env:  map[string]string{},
			want: filepath.Join(home, ".config", "stencil"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := configDirForOS(envMap(tc.env), home, tc.darwin)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDataDirResolution(t *testing.T) {
	home := "/home/u"

	if got := dataDirForOS(envMap(map[string]string{"STENCIL_DATA_DIR": "/data"}), home, false); got != "/data" {
		t.Fatalf("override: got %q", got)
	}
	if got := dataDirForOS(envMap(map[string]string{"XDG_DATA_HOME": "/xdg"}), home, false); got != "/xdg/stencil" {
		t.Fatalf("xdg: got %q", got)
	}
	want := filepath.Join(home, ".local", "share", "stencil")
	if got := dataDirForOS(envMap(nil), home, false); got != want {
		t.Fatalf("fallback: got %q, want %q", got, want)
	}
}
