package lsp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/jwtly10/md2nb"
	"github.com/jwtly10/md2nb/internal/transformer"
	"github.com/sourcegraph/go-lsp"
)

// DocumentService tracks the open markdown documents, checks them for
// constructs the converter rejects, and converts them to notebooks on
// save.
type DocumentService struct {
	parser      *md2nb.Parser
	transformer *transformer.Transformer

	mu   sync.Mutex
	docs map[lsp.DocumentURI]string
}

func NewDocumentService(opts transformer.TransformOptions) *DocumentService {
	return &DocumentService{
		parser:      md2nb.NewParser(),
		transformer: transformer.NewTransformer(opts),
		docs:        make(map[lsp.DocumentURI]string),
	}
}

// Track records the latest content of an open document.
func (s *DocumentService) Track(uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = content
}

func (s *DocumentService) Forget(uri lsp.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentService) content(uri lsp.DocumentURI) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.docs[uri]
	return content, ok
}

// Check parses the document and maps any failure to LSP diagnostics.
// Conversion has no partial-output mode, so a single diagnostic covering
// the document start is reported rather than per-range markers.
func (s *DocumentService) Check(uri lsp.DocumentURI) []lsp.Diagnostic {
	content, ok := s.content(uri)
	if !ok {
		return []lsp.Diagnostic{}
	}

	path, err := URIToPath(uri)
	if err != nil {
		path = string(uri)
	}

	_, err = s.parser.ParseMarkdownDoc(strings.NewReader(content), md2nb.MetaData{Source: path})
	if err == nil {
		return []lsp.Diagnostic{}
	}

	message := err.Error()
	var unsupported *md2nb.UnsupportedError
	var invariant *md2nb.InvariantError
	switch {
	case errors.As(err, &unsupported):
		message = fmt.Sprintf("cannot convert to a notebook: %s", unsupported.Error())
	case errors.As(err, &invariant):
		message = fmt.Sprintf("internal converter error: %s", invariant.Error())
	}

	return []lsp.Diagnostic{{
		Range: lsp.Range{
			Start: lsp.Position{Line: 0, Character: 0},
			End:   lsp.Position{Line: 0, Character: 0},
		},
		Severity: lsp.Error,
		Source:   "md2nb",
		Message:  message,
	}}
}

// Convert writes the notebook for a tracked document, returning the output
// path.
func (s *DocumentService) Convert(uri lsp.DocumentURI) (string, error) {
	content, ok := s.content(uri)
	if !ok {
		return "", fmt.Errorf("document not tracked: %s", uri)
	}

	path, err := URIToPath(uri)
	if err != nil {
		return "", fmt.Errorf("invalid document URI: %w", err)
	}

	return s.transformer.Transform(transformer.MarkdownSource{
		Content:  strings.NewReader(content),
		Metadata: md2nb.MetaData{Source: path},
	})
}

// URIToPath converts an LSP URI to a filesystem path
func URIToPath(uri lsp.DocumentURI) (string, error) {
	u, err := url.Parse(string(uri))
	if err != nil {
		return "", err
	}
	return u.Path, nil
}
