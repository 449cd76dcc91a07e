package md2nb

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestRenderRunStyleNesting(t *testing.T) {
	tests := []struct {
		name string
		run  Run
		want string
	}{
		{name: "plain", run: Run{Content: "x", Styles: NewStyleSet()}, want: "x"},
		{name: "emphasis", run: Run{Content: "x", Styles: NewStyleSet(Emphasis)}, want: "*x*"},
		{name: "strong", run: Run{Content: "x", Styles: NewStyleSet(Strong)}, want: "**x**"},
		{name: "strikethrough", run: Run{Content: "x", Styles: NewStyleSet(Strikethrough)}, want: "~~x~~"},
		{
			name: "all styles nest deterministically",
			run:  Run{Content: "x", Styles: NewStyleSet(Emphasis, Strong, Strikethrough)},
			want: "**~~*x*~~**",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, renderRun(tc.run))
		})
	}
}

func TestRenderText(t *testing.T) {
	require.Equal(t, "a  \nb\nc",
		renderText(Text{
			Run{Content: "a", Styles: NewStyleSet()},
			HardBreak{},
			Run{Content: "b", Styles: NewStyleSet()},
			SoftBreak{},
			Run{Content: "c", Styles: NewStyleSet()},
		}),
	)

	require.Equal(t, "see [the *docs*](https://example.com)",
		renderText(Text{
			Run{Content: "see ", Styles: NewStyleSet()},
			Link{
				Label: Text{
					Run{Content: "the ", Styles: NewStyleSet()},
					Run{Content: "docs", Styles: NewStyleSet(Emphasis)},
				},
				Destination: "https://example.com",
			},
		}),
	)
}

func TestRenderNestedList(t *testing.T) {
	list := List{Items: []ListItem{
		{Blocks: []Block{
			Paragraph{Text: Text{Run{Content: "parent", Styles: NewStyleSet()}}},
			List{Items: []ListItem{
				{Blocks: []Block{Paragraph{Text: Text{Run{Content: "child", Styles: NewStyleSet()}}}}},
			}},
		}},
	}}

	require.Equal(t, "- parent\n\n  - child", renderBlock(list))
}

func TestRenderBlockQuote(t *testing.T) {
	quote := BlockQuote{Blocks: []Block{
		Paragraph{Text: Text{Run{Content: "a", Styles: NewStyleSet()}}},
		Paragraph{Text: Text{Run{Content: "b", Styles: NewStyleSet()}}},
	}}

	require.Equal(t, "> a\n>\n> b", renderBlock(quote))
}

func TestRenderTablePadsShortRows(t *testing.T) {
	table := Table{
		Headers: []Text{
			{Run{Content: "A", Styles: NewStyleSet()}},
			{Run{Content: "B", Styles: NewStyleSet()}},
		},
		Rows: [][]Text{
			{{Run{Content: "1", Styles: NewStyleSet()}}},
		},
	}

	require.Equal(t, "| A | B |\n| --- | --- |\n| 1 |  |", renderBlock(table))
}

func TestRenderCodeBlock(t *testing.T) {
	info := "python"
	require.Equal(t, "```python\nprint(1)\n```", renderBlock(CodeBlock{Info: &info, Code: "print(1)"}))
	require.Equal(t, "```\nprint(1)\n```", renderBlock(CodeBlock{Code: "print(1)"}))
}

func TestRenderRoundTrip(t *testing.T) {
	source, err := os.ReadFile("testdata/render/sample.md")
	require.NoError(t, err)

	doc, err := NewParser().ParseMarkdownDoc(strings.NewReader(string(source)), MetaData{Source: "sample.md"})
	require.NoError(t, err)

	golden.Assert(t, renderBlocks(doc.Blocks), "render/sample.golden.md")
}
