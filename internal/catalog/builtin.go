package catalog

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.md
var builtinFS embed.FS

// Builtins returns the templates shipped with the binary.
func Builtins() fs.FS {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}
