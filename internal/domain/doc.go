// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (manifest/registry/report) and contracts (interfaces) only.
package domain
