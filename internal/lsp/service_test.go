package lsp

import (
	"path/filepath"
	"testing"

	"github.com/jwtly10/md2nb/internal/transformer"
	"github.com/sourcegraph/go-lsp"
	"github.com/stretchr/testify/require"
)

func TestCheckValidDocument(t *testing.T) {
	s := NewDocumentService(transformer.TransformOptions{NoBackup: true})
	uri := lsp.DocumentURI("file:///tmp/notes.md")

	s.Track(uri, "# Hello\n\nworld\n")
	require.Empty(t, s.Check(uri))
}

func TestCheckUnsupportedConstruct(t *testing.T) {
	s := NewDocumentService(transformer.TransformOptions{NoBackup: true})
	uri := lsp.DocumentURI("file:///tmp/notes.md")

	s.Track(uri, "1. ordered lists are rejected\n")

	diags := s.Check(uri)
	require.Len(t, diags, 1)
	require.Equal(t, lsp.Error, diags[0].Severity)
	require.Equal(t, "md2nb", diags[0].Source)
	require.Contains(t, diags[0].Message, "cannot convert to a notebook")
	require.Contains(t, diags[0].Message, "ordered list")
}

func TestCheckUntrackedDocument(t *testing.T) {
	s := NewDocumentService(transformer.TransformOptions{NoBackup: true})
	require.Empty(t, s.Check(lsp.DocumentURI("file:///tmp/unknown.md")))
}

func TestCheckAfterForget(t *testing.T) {
	s := NewDocumentService(transformer.TransformOptions{NoBackup: true})
	uri := lsp.DocumentURI("file:///tmp/notes.md")

	s.Track(uri, "1. ordered\n")
	require.Len(t, s.Check(uri), 1)

	s.Forget(uri)
	require.Empty(t, s.Check(uri))
}

func TestConvertWritesNotebook(t *testing.T) {
	dir := t.TempDir()
	uri := lsp.DocumentURI("file://" + filepath.Join(dir, "notes.md"))

	s := NewDocumentService(transformer.TransformOptions{NoBackup: true})
	s.Track(uri, "# Hello\n")

	outPath, err := s.Convert(uri)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "notes.ipynb"), outPath)
	require.FileExists(t, outPath)
}

func TestConvertUntrackedDocument(t *testing.T) {
	s := NewDocumentService(transformer.TransformOptions{NoBackup: true})
	_, err := s.Convert(lsp.DocumentURI("file:///tmp/unknown.md"))
	require.ErrorContains(t, err, "document not tracked")
}

func TestURIToPath(t *testing.T) {
	path, err := URIToPath(lsp.DocumentURI("file:///home/user/notes.md"))
	require.NoError(t, err)
	require.Equal(t, "/home/user/notes.md", path)
}
