// Package store persists the project registry as JSON on disk.
//
// Writes go through renameio so a crash mid-write never leaves a torn
// projects.json behind.
package store
