package md2nb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteNotebook(t *testing.T) {
	python := "python"
	doc := &Document{
		Metadata: MetaData{Source: "sample.md"},
		Blocks: []Block{
			Heading{Level: 1, Text: Text{Run{Content: "Notes", Styles: NewStyleSet()}}},
			Paragraph{Text: Text{Run{Content: "intro", Styles: NewStyleSet()}}},
			CodeBlock{Info: &python, Code: "a = 1\nprint(a)"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(doc, &buf))

	require.JSONEq(t, `{
		"cells": [
			{
				"cell_type": "markdown",
				"metadata": {},
				"source": ["# Notes"]
			},
			{
				"cell_type": "markdown",
				"metadata": {},
				"source": ["intro"]
			},
			{
				"cell_type": "code",
				"execution_count": null,
				"metadata": {},
				"outputs": [],
				"source": ["a = 1\n", "print(a)"]
			}
		],
		"metadata": {
			"language_info": {"name": "python"},
			"md2nb": {"version": "`+VERSION+`", "source": "sample.md"}
		},
		"nbformat": 4,
		"nbformat_minor": 5
	}`, buf.String())
}

func TestWriteNotebookWithoutCode(t *testing.T) {
	doc := &Document{
		Metadata: MetaData{Source: "prose.md"},
		Blocks: []Block{
			Paragraph{Text: Text{Run{Content: "just prose", Styles: NewStyleSet()}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(doc, &buf))

	require.JSONEq(t, `{
		"cells": [
			{
				"cell_type": "markdown",
				"metadata": {},
				"source": ["just prose"]
			}
		],
		"metadata": {
			"md2nb": {"version": "`+VERSION+`", "source": "prose.md"}
		},
		"nbformat": 4,
		"nbformat_minor": 5
	}`, buf.String())
}

func TestCodeLanguage(t *testing.T) {
	lang := func(info string) string {
		return codeLanguage(CodeBlock{Info: &info})
	}

	require.Equal(t, "", codeLanguage(CodeBlock{}))
	require.Equal(t, "", lang(""))
	require.Equal(t, "python", lang("python"))
	require.Equal(t, "python", lang("python linenums"))
}

func TestSourceLines(t *testing.T) {
	require.Equal(t, []string{}, sourceLines(""))
	require.Equal(t, []string{"one"}, sourceLines("one"))
	require.Equal(t, []string{"one\n", "two"}, sourceLines("one\ntwo"))
	require.Equal(t, []string{"one\n"}, sourceLines("one\n"))
}
