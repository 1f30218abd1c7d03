// Package templates carries the built-in project templates, embedded at
// compile time so every install can scaffold without extra files on disk.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:builtin
var builtinFS embed.FS

// Builtin returns the filesystem holding the built-in templates, one
// directory per template.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
