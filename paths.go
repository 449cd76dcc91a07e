package md2nb

import (
	"path/filepath"
	"strings"
)

// ResolveOutputPath determines the notebook output path from the input
// markdown source path (src.md -> src.ipynb)
func ResolveOutputPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".ipynb"
}

func MustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}
