// Package bootstrap runs the repository initialization workflow: init the
// repo, record the initial snapshot, register the remote, publish, and run
// the install hook.
//
// Steps execute in a fixed order and short-circuit on the first error. Every
// step first checks whether it is already satisfied, so re-running the
// workflow on a half-bootstrapped directory picks up where it left off.
package bootstrap
