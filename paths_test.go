package md2nb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "markdown extension", in: "notes.md", want: "notes.ipynb"},
		{name: "nested path", in: "docs/guide/setup.md", want: "docs/guide/setup.ipynb"},
		{name: "other extension", in: "notes.markdown", want: "notes.ipynb"},
		{name: "no extension", in: "notes", want: "notes.ipynb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ResolveOutputPath(tc.in))
		})
	}
}
