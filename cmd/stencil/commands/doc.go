// Package commands defines the stencil CLI and wires dependencies for subcommands.
//
// Commands
//
//   - new        Render a template and bootstrap the result
//   - init       Bootstrap an existing directory (init, stage, commit)
//   - push       Register a remote and publish the local history
//   - install    Run the project's install command
//   - list       Show the local project registry
//   - templates  List available templates
//   - doctor     Check the environment the workflow depends on
//
// # Implementation
//
// The root command resolves configuration and builds a dependency graph
// (store, services, forge client) before any subcommand runs, so handlers
// share one app context.
package commands
