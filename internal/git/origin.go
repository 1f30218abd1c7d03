package git

import "strings"

// ParseRemoteHost extracts the hostname from a git remote URL.
// Supported forms:
//   - scp-like: git@github.com:owner/repo.git
//   - https://github.com/owner/repo.git
//   - ssh://git@github.com/owner/repo.git
//
// Returns "" for anything else.
func ParseRemoteHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// scp-like: <user>@<host>:<path>, no scheme
	if strings.Contains(raw, "@") && strings.Contains(raw, ":") && !strings.Contains(raw, "://") {
		at := strings.Index(raw, "@")
		colon := strings.Index(raw, ":")
		if colon > at {
			if host := raw[at+1 : colon]; validHost(host) {
				return host
			}
		}
		return ""
	}

	for _, scheme := range []string{"https://", "ssh://"} {
		if !strings.HasPrefix(raw, scheme) {
			continue
		}
		rest := strings.TrimPrefix(raw, scheme)
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		host, _, _ := strings.Cut(rest, "/")
		if i := strings.Index(host, ":"); i > 0 {
			host = host[:i]
		}
		if validHost(host) {
			return host
		}
		return ""
	}

	return ""
}

func validHost(host string) bool {
	if host == "" || !strings.Contains(host, ".") {
		return false
	}
	return !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}
