// Package forge is a small HTTP client for a git hosting API, used to
// create the remote repository before the first push. It speaks the
// Gitea-style /api/v1 surface and authenticates with a bearer token.
package forge
