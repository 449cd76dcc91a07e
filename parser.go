package md2nb

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Parser converts Markdown into the Block AST. Strikethrough and tables are
// extensions beyond baseline Markdown and must be enabled explicitly on the
// underlying goldmark instance.
type Parser struct {
	gm goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		gm: goldmark.New(goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
		)),
	}
}

// ParseMarkdownDoc parses a markdown document into its ordered sequence of
// typed blocks. The conversion is all-or-nothing: it returns either the
// complete block sequence or an error, never partial output.
//
// The result is a pure function of the input; reparsing the same content
// yields a structurally equal document.
func (p *Parser) ParseMarkdownDoc(r io.Reader, md MetaData) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading markdown source: %w", err)
	}

	events, err := lex(p.gm, content)
	if err != nil {
		return nil, fmt.Errorf("lexing markdown: %w", err)
	}

	nodes, err := unflatten(events)
	if err != nil {
		return nil, fmt.Errorf("unflattening events: %w", err)
	}

	blocks, err := buildBlocks(nodes)
	if err != nil {
		return nil, fmt.Errorf("building ast: %w", err)
	}

	return &Document{
		Metadata: md,
		Blocks:   blocks,
	}, nil
}
