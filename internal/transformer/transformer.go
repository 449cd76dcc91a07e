package transformer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwtly10/md2nb"
)

type TransformOptions struct {
	// Output path override; may name a directory, in which case the
	// notebook keeps the source file's stem
	Output string
	// If true, an existing output notebook is overwritten without a backup
	NoBackup bool
}

func (t *TransformOptions) Pretty() string {
	out := t.Output
	if out == "" {
		out = "<derived>"
	}
	return fmt.Sprintf("output=%s backup=%s", out, boolToText(!t.NoBackup))
}

func boolToText(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Transformer runs the full Markdown to notebook conversion: parse, resolve
// the output path, back up any existing notebook, write.
type Transformer struct {
	parser *md2nb.Parser
	writer *md2nb.Writer
	backup *md2nb.BackupManager

	opts TransformOptions
}

func NewTransformer(opts TransformOptions) *Transformer {
	return &Transformer{
		parser: md2nb.NewParser(),
		writer: md2nb.NewWriter(),
		backup: md2nb.NewBackupManager(),
		opts:   opts,
	}
}

type MarkdownSource struct {
	Content  io.Reader
	Metadata md2nb.MetaData
}

// Transform converts a single markdown source and returns the absolute path
// of the notebook it wrote. Nothing is written (and no backup taken) unless
// the whole document parses.
func (t *Transformer) Transform(input MarkdownSource) (string, error) {
	slog.Debug("transforming document", "path", input.Metadata.Source)
	if input.Metadata.Source == "" {
		return "", fmt.Errorf("source metadata is required for transformation")
	}

	doc, err := t.parser.ParseMarkdownDoc(input.Content, input.Metadata)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	outPath, err := t.resolveOutputPath(md2nb.MustAbs(input.Metadata.Source))
	if err != nil {
		return "", fmt.Errorf("resolve output path error: %w", err)
	}

	if !t.opts.NoBackup {
		if _, err := t.backup.CreateBackupOf(outPath); err != nil {
			return "", fmt.Errorf("backup error: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := t.writer.Write(doc, out); err != nil {
		return "", fmt.Errorf("write error: %w", err)
	}

	return outPath, nil
}

// resolveOutputPath applies the output override: empty derives the path
// from the source, a directory keeps the source stem inside it, anything
// else is used as-is.
func (t *Transformer) resolveOutputPath(absSource string) (string, error) {
	if t.opts.Output == "" {
		return md2nb.ResolveOutputPath(absSource), nil
	}

	if info, err := os.Stat(t.opts.Output); err == nil && info.IsDir() {
		stem := strings.TrimSuffix(filepath.Base(absSource), filepath.Ext(absSource))
		return md2nb.MustAbs(filepath.Join(t.opts.Output, stem+".ipynb")), nil
	}

	return md2nb.MustAbs(t.opts.Output), nil
}
