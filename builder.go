package md2nb

import (
	"log/slog"
	"strings"
)

// The AST builder walks the unflattened event tree and produces the Block
// sequence. Inline content accumulates into a pending paragraph; any
// block-level construct flushes the accumulator first, which is how loose
// runs of inline content between blocks become paragraphs of their own.

// isInline reports whether a node can extend the paragraph in progress.
// Anything else starts a new block.
func isInline(n node) bool {
	if n.interior() {
		switch n.tag.Kind {
		case TagEmphasis, TagStrong, TagStrikethrough, TagLink:
			return true
		default:
			return false
		}
	}
	switch n.event.Kind {
	case EventText, EventInlineCode, EventSoftBreak, EventHardBreak, EventFootnoteRef:
		return true
	default:
		return false
	}
}

func styleFor(kind TagKind) TextStyle {
	switch kind {
	case TagStrong:
		return Strong
	case TagStrikethrough:
		return Strikethrough
	default:
		return Emphasis
	}
}

// buildBlocks converts a node sequence at one nesting context into blocks.
// It is invoked recursively for list items and block-quote bodies.
func buildBlocks(nodes []node) ([]Block, error) {
	var complete []Block
	var spans Text

	flush := func() {
		if len(spans) > 0 {
			complete = append(complete, Paragraph{Text: spans})
			spans = nil
		}
	}

	for _, n := range nodes {
		if !isInline(n) {
			flush()
		}

		if !n.interior() {
			switch n.event.Kind {
			case EventOpen, EventClose:
				return nil, invariantf("open/close event survived unflattening")
			case EventText:
				spans = append(spans, Run{Content: n.event.Text, Styles: NewStyleSet()})
			case EventInlineCode:
				spans = append(spans, Code{Content: n.event.Text})
			case EventSoftBreak:
				spans = append(spans, SoftBreak{})
			case EventHardBreak:
				spans = append(spans, HardBreak{})
			case EventHTMLInline:
				slog.Warn("skipping inline HTML", "html", n.event.Text)
			case EventThematicBreak:
				complete = append(complete, ThematicBreak{})
			case EventTaskMarker:
				return nil, unsupportedf("task list marker")
			case EventFootnoteRef:
				return nil, unsupportedf("footnote reference %q", n.event.Text)
			default:
				return nil, invariantf("unknown event kind %d", n.event.Kind)
			}
			continue
		}

		switch n.tag.Kind {
		case TagEmphasis, TagStrong, TagStrikethrough:
			inner, err := inlineText(n.children, NewStyleSet(styleFor(n.tag.Kind)))
			if err != nil {
				return nil, err
			}
			spans = append(spans, inner...)
		case TagLink:
			span, err := buildLink(n)
			if err != nil {
				return nil, err
			}
			spans = append(spans, span)
		case TagHeading:
			text, err := inlineText(n.children, NewStyleSet())
			if err != nil {
				return nil, err
			}
			complete = append(complete, Heading{Level: n.tag.Level, Text: text})
		case TagParagraph:
			// Paragraphs at block level merge into the open accumulator;
			// an intervening block-breaking sibling is what separates them.
			inner, err := inlineText(n.children, NewStyleSet())
			if err != nil {
				return nil, err
			}
			spans = append(spans, inner...)
		case TagList:
			block, err := buildList(n)
			if err != nil {
				return nil, err
			}
			complete = append(complete, block)
		case TagItem:
			// Only reached when an item is processed outside its list's
			// dispatch; its blocks splice directly into the output.
			blocks, err := buildBlocks(n.children)
			if err != nil {
				return nil, err
			}
			complete = append(complete, blocks...)
		case TagCodeBlock:
			block, err := buildCodeBlock(n)
			if err != nil {
				return nil, err
			}
			complete = append(complete, block)
		case TagBlockQuote:
			blocks, err := buildBlocks(n.children)
			if err != nil {
				return nil, err
			}
			complete = append(complete, BlockQuote{Blocks: blocks})
		case TagTable:
			block, err := buildTable(n)
			if err != nil {
				return nil, err
			}
			complete = append(complete, block)
		case TagTableHead, TagTableRow, TagTableCell:
			return nil, invariantf("%s outside a table", n.tag.Kind)
		default:
			return nil, invariantf("unknown tag kind %d", n.tag.Kind)
		}
	}

	flush()
	return complete, nil
}

// inlineText resolves a node sequence as styled inline content. styles is
// the set active at this point; entering a style tag recurses with a copy
// extended by that style, so the caller's set is unaffected on return.
func inlineText(nodes []node, styles StyleSet) (Text, error) {
	var spans Text

	for _, n := range nodes {
		if !n.interior() {
			switch n.event.Kind {
			case EventOpen, EventClose:
				return nil, invariantf("open/close event survived unflattening")
			case EventText:
				spans = append(spans, Run{Content: n.event.Text, Styles: styles})
			case EventInlineCode:
				spans = append(spans, Code{Content: n.event.Text})
			case EventSoftBreak:
				spans = append(spans, SoftBreak{})
			case EventHardBreak:
				spans = append(spans, HardBreak{})
			case EventHTMLInline:
				slog.Warn("skipping inline HTML", "html", n.event.Text)
			default:
				return nil, unsupportedf("%s in inline text", n.event.Kind)
			}
			continue
		}

		switch n.tag.Kind {
		case TagEmphasis, TagStrong, TagStrikethrough:
			inner, err := inlineText(n.children, styles.With(styleFor(n.tag.Kind)))
			if err != nil {
				return nil, err
			}
			spans = append(spans, inner...)
		case TagLink:
			span, err := buildLink(n)
			if err != nil {
				return nil, err
			}
			spans = append(spans, span)
		case TagParagraph:
			// A paragraph shows up inside inline resolution for loose list
			// items. Two hard breaks reproduce the blank line separating it
			// from the preceding content; a leading paragraph gets none.
			if len(spans) > 0 {
				spans = append(spans, HardBreak{}, HardBreak{})
			}
			inner, err := inlineText(n.children, styles)
			if err != nil {
				return nil, err
			}
			spans = append(spans, inner...)
		default:
			return nil, unsupportedf("%s in inline text", n.tag.Kind)
		}
	}

	return spans, nil
}

// buildLink turns a link node into a Link span. The label is resolved with
// an empty style set: label styling is independent of the surrounding
// context.
func buildLink(n node) (TextSpan, error) {
	if n.tag.Form != LinkInline {
		return nil, unsupportedf("%s link (destination %q)", n.tag.Form, n.tag.Destination)
	}
	if n.tag.Title != "" {
		slog.Warn("ignoring link title", "title", n.tag.Title)
	}

	label, err := inlineText(n.children, NewStyleSet())
	if err != nil {
		return nil, err
	}

	return Link{Label: label, Destination: n.tag.Destination}, nil
}

func buildList(n node) (Block, error) {
	if n.tag.Ordered {
		return nil, unsupportedf("ordered list numbering")
	}

	var items []ListItem
	for _, child := range n.children {
		if !child.interior() || child.tag.Kind != TagItem {
			return nil, invariantf("list child is not a list item")
		}
		blocks, err := buildBlocks(child.children)
		if err != nil {
			return nil, err
		}
		items = append(items, ListItem{Blocks: blocks})
	}

	return List{Items: items}, nil
}

func buildCodeBlock(n node) (Block, error) {
	spans, err := inlineText(n.children, NewStyleSet())
	if err != nil {
		return nil, err
	}

	var code strings.Builder
	for _, span := range spans {
		run, ok := span.(Run)
		if !ok {
			return nil, unsupportedf("%T inside a code block", span)
		}
		// A tokenizer never attaches styling inside literal code.
		if len(run.Styles) > 0 {
			return nil, invariantf("styled text inside a code block")
		}
		code.WriteString(run.Content)
	}

	block := CodeBlock{Code: code.String()}
	if n.tag.Fenced {
		info := n.tag.Info
		block.Info = &info
	}
	return block, nil
}

func buildTable(n node) (Block, error) {
	if len(n.children) == 0 {
		return nil, invariantf("table with no header row")
	}

	head := n.children[0]
	if !head.interior() || head.tag.Kind != TagTableHead {
		return nil, invariantf("table does not start with a header row")
	}
	headers, err := tableCells(head.children)
	if err != nil {
		return nil, err
	}

	var rows [][]Text
	for _, child := range n.children[1:] {
		if !child.interior() || child.tag.Kind != TagTableRow {
			return nil, invariantf("table child is not a row")
		}
		cells, err := tableCells(child.children)
		if err != nil {
			return nil, err
		}
		rows = append(rows, cells)
	}

	return Table{Headers: headers, Rows: rows}, nil
}

func tableCells(nodes []node) ([]Text, error) {
	var cells []Text
	for _, n := range nodes {
		if !n.interior() || n.tag.Kind != TagTableCell {
			return nil, invariantf("table row child is not a cell")
		}
		text, err := inlineText(n.children, NewStyleSet())
		if err != nil {
			return nil, err
		}
		cells = append(cells, text)
	}
	return cells, nil
}
