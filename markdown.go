package md2nb

import (
	"fmt"
	"strings"
)

// Rendering a Block back to Markdown source text. The generated notebook
// stores prose blocks as markdown cells, so this is the inverse of the
// parser for everything except code blocks (which become code cells).

func renderBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, renderBlock(b))
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b Block) string {
	switch b := b.(type) {
	case Paragraph:
		return renderText(b.Text)
	case Heading:
		return strings.Repeat("#", b.Level) + " " + renderText(b.Text)
	case List:
		items := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			items = append(items, renderListItem(item))
		}
		return strings.Join(items, "\n")
	case CodeBlock:
		info := ""
		if b.Info != nil {
			info = *b.Info
		}
		return "```" + info + "\n" + b.Code + "\n```"
	case BlockQuote:
		return prefixLines(renderBlocks(b.Blocks), "> ", ">")
	case Table:
		return renderTable(b)
	case ThematicBreak:
		return "---"
	default:
		return ""
	}
}

func renderListItem(item ListItem) string {
	body := renderBlocks(item.Blocks)
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = "- " + line
		case line == "":
			// blank separator lines stay blank
		default:
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func renderTable(t Table) string {
	var buf strings.Builder

	writeRow := func(cells []Text) {
		buf.WriteString("|")
		for i := 0; i < len(t.Headers); i++ {
			// rows are not validated against the header width; pad short
			// rows and drop surplus cells when printing
			cell := Text(nil)
			if i < len(cells) {
				cell = cells[i]
			}
			buf.WriteString(" " + renderText(cell) + " |")
		}
		buf.WriteString("\n")
	}

	writeRow(t.Headers)
	buf.WriteString("|" + strings.Repeat(" --- |", len(t.Headers)) + "\n")
	for _, row := range t.Rows {
		writeRow(row)
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func renderText(t Text) string {
	var buf strings.Builder
	for _, span := range t {
		switch s := span.(type) {
		case Run:
			buf.WriteString(renderRun(s))
		case Code:
			buf.WriteString("`" + s.Content + "`")
		case Link:
			fmt.Fprintf(&buf, "[%s](%s)", renderText(s.Label), s.Destination)
		case SoftBreak:
			buf.WriteString("\n")
		case HardBreak:
			buf.WriteString("  \n")
		}
	}
	return buf.String()
}

// renderRun wraps the run in delimiters for each active style, innermost
// first, so nesting order is deterministic regardless of set iteration.
func renderRun(r Run) string {
	out := r.Content
	if r.Styles.Has(Emphasis) {
		out = "*" + out + "*"
	}
	if r.Styles.Has(Strikethrough) {
		out = "~~" + out + "~~"
	}
	if r.Styles.Has(Strong) {
		out = "**" + out + "**"
	}
	return out
}

func prefixLines(s, prefix, emptyPrefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = emptyPrefix
		} else {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
