package git

import (
	"strings"

	"stencil/internal/errors"
)

// ClassifyPushError maps git push stderr to a stable error code.
// git prints human text, not machine codes, so this is substring matching
// against the messages current git versions emit.
func ClassifyPushError(stderr string) error {
	line := firstLine(stderr)
	lower := strings.ToLower(stderr)

	switch {
	case containsAny(lower,
		"authentication failed",
		"permission denied",
		"could not read username",
		"403",
		"invalid credentials"):
		return errors.Newf(errors.EAuthFailed, "push rejected by remote auth: %s", line)

	case containsAny(lower,
		"could not resolve host",
		"unable to access",
		"connection refused",
		"connection timed out",
		"network is unreachable",
		"operation timed out"):
		return errors.Newf(errors.ENetwork, "cannot reach remote: %s", line)

	case containsAny(lower,
		"[rejected]",
		"non-fast-forward",
		"fetch first",
		"remote contains work"):
		return errors.Newf(errors.EPushRejected, "remote has diverging history: %s", line)
	}

	return errors.Newf(errors.EInternal, "git push failed: %s", line)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
