package md2nb

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Writer renders a parsed Document as a Jupyter notebook (nbformat 4).
// Code blocks become code cells, every other block becomes a markdown
// cell. The notebook language is taken from the info string of the first
// fenced code block that has one.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

type notebook struct {
	Cells         []any            `json:"cells"`
	Metadata      notebookMetadata `json:"metadata"`
	NBFormat      int              `json:"nbformat"`
	NBFormatMinor int              `json:"nbformat_minor"`
}

type notebookMetadata struct {
	LanguageInfo *languageInfo `json:"language_info,omitempty"`
	Generator    generatorInfo `json:"md2nb"`
}

type languageInfo struct {
	Name string `json:"name"`
}

type generatorInfo struct {
	Version string `json:"version"`
	Source  string `json:"source,omitempty"`
}

type markdownCell struct {
	CellType string   `json:"cell_type"`
	Metadata struct{} `json:"metadata"`
	Source   []string `json:"source"`
}

// codeCell carries the fields nbformat requires on code cells even when
// empty: execution_count must be present (null) and outputs must be a
// list.
type codeCell struct {
	CellType       string   `json:"cell_type"`
	ExecutionCount *int     `json:"execution_count"`
	Metadata       struct{} `json:"metadata"`
	Outputs        []any    `json:"outputs"`
	Source         []string `json:"source"`
}

func (w *Writer) Write(doc *Document, out io.Writer) error {
	nb := w.notebook(doc)

	enc := json.NewEncoder(out)
	enc.SetIndent("", " ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(nb); err != nil {
		return fmt.Errorf("encoding notebook: %w", err)
	}
	return nil
}

func (w *Writer) notebook(doc *Document) notebook {
	cells := make([]any, 0, len(doc.Blocks))
	language := ""

	for _, block := range doc.Blocks {
		if cb, ok := block.(CodeBlock); ok {
			if language == "" {
				language = codeLanguage(cb)
			}
			cells = append(cells, codeCell{
				CellType: "code",
				Outputs:  []any{},
				Source:   sourceLines(cb.Code),
			})
			continue
		}

		cells = append(cells, markdownCell{
			CellType: "markdown",
			Source:   sourceLines(renderBlock(block)),
		})
	}

	nb := notebook{
		Cells: cells,
		Metadata: notebookMetadata{
			Generator: generatorInfo{
				Version: VERSION,
				Source:  doc.Metadata.Source,
			},
		},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
	if language != "" {
		nb.Metadata.LanguageInfo = &languageInfo{Name: language}
	}
	return nb
}

// codeLanguage extracts the language from a fence info string: its first
// whitespace-delimited token.
func codeLanguage(cb CodeBlock) string {
	if cb.Info == nil {
		return ""
	}
	fields := strings.Fields(*cb.Info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// sourceLines splits cell text the way Jupyter stores it: one entry per
// line, each keeping its trailing newline except the last.
func sourceLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
