package domain

import "testing"

func TestAfterInstall(t *testing.T) {
	cases := []struct {
		in   Status
		want Status
	}{
		{StatusScaffolded, StatusScaffolded},
		{StatusCommitted, StatusCommitted},
		{StatusPushed, StatusInstalled},
		{StatusInstalled, StatusInstalled},
	}
	for _, tc := range cases {
		if got := AfterInstall(tc.in); got != tc.want {
			t.Errorf("AfterInstall(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
