// Package app wires application dependencies for the CLI.
//
// It resolves configuration (flags over environment over config file over
// built-in defaults) and builds the concrete stores, services and clients,
// exposing them via the App struct for commands to use.
package app
