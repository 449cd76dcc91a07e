package md2nb

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// lex tokenizes Markdown source into the flat event stream consumed by the
// unflattener. goldmark does the actual lexing; walking its tree with
// entering/exiting callbacks yields exactly the open/close/atomic shape the
// rest of the pipeline is written against.
//
// Reference-style links are resolved away by goldmark during parsing, so
// the link node no longer records the form it was written in. Any reference
// definition in the document is therefore rejected here, before events are
// emitted.
func lex(md goldmark.Markdown, source []byte) ([]Event, error) {
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	if refs := ctx.References(); len(refs) > 0 {
		return nil, unsupportedf("reference link definition %q", string(refs[0].Label()))
	}

	l := &lexer{source: source}
	if err := ast.Walk(root, l.walk); err != nil {
		return nil, err
	}
	return l.events, nil
}

type lexer struct {
	source []byte
	events []Event
}

func (l *lexer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Document:
		// nothing to emit

	case *ast.Heading:
		l.tag(entering, &Tag{Kind: TagHeading, Level: n.Level})

	case *ast.Paragraph:
		l.tag(entering, &Tag{Kind: TagParagraph})

	case *ast.TextBlock:
		// Tight list items wrap their inline content in a TextBlock;
		// structurally it is a paragraph.
		l.tag(entering, &Tag{Kind: TagParagraph})

	case *ast.Blockquote:
		l.tag(entering, &Tag{Kind: TagBlockQuote})

	case *ast.List:
		l.tag(entering, &Tag{Kind: TagList, Ordered: n.IsOrdered()})

	case *ast.ListItem:
		l.tag(entering, &Tag{Kind: TagItem})

	case *ast.FencedCodeBlock:
		tag := &Tag{Kind: TagCodeBlock, Fenced: true}
		if n.Info != nil {
			tag.Info = string(n.Info.Segment.Value(l.source))
		}
		if entering {
			l.open(tag)
			l.text(l.blockText(n))
			return ast.WalkSkipChildren, nil
		}
		l.close(tag)

	case *ast.CodeBlock:
		tag := &Tag{Kind: TagCodeBlock}
		if entering {
			l.open(tag)
			l.text(l.blockText(n))
			return ast.WalkSkipChildren, nil
		}
		l.close(tag)

	case *ast.ThematicBreak:
		if entering {
			l.atomic(EventThematicBreak)
		}

	case *ast.Text:
		if entering {
			if value := n.Segment.Value(l.source); len(value) > 0 {
				l.text(string(value))
			}
			if n.HardLineBreak() {
				l.atomic(EventHardBreak)
			} else if n.SoftLineBreak() {
				l.atomic(EventSoftBreak)
			}
		}

	case *ast.String:
		if entering && len(n.Value) > 0 {
			l.text(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			l.events = append(l.events, Event{Kind: EventInlineCode, Text: l.inlineValue(n)})
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		kind := TagEmphasis
		if n.Level == 2 {
			kind = TagStrong
		}
		l.tag(entering, &Tag{Kind: kind})

	case *east.Strikethrough:
		l.tag(entering, &Tag{Kind: TagStrikethrough})

	case *ast.Link:
		l.tag(entering, &Tag{
			Kind:        TagLink,
			Form:        LinkInline,
			Destination: string(n.Destination),
			Title:       string(n.Title),
		})

	case *ast.AutoLink:
		if entering {
			tag := &Tag{Kind: TagLink, Form: LinkAuto, Destination: string(n.URL(l.source))}
			l.open(tag)
			l.text(string(n.Label(l.source)))
			l.close(tag)
		}

	case *ast.RawHTML:
		if entering {
			l.events = append(l.events, Event{Kind: EventHTMLInline, Text: l.segmentsValue(n.Segments)})
			return ast.WalkSkipChildren, nil
		}

	case *ast.HTMLBlock:
		return ast.WalkStop, unsupportedf("HTML block")

	case *ast.Image:
		return ast.WalkStop, unsupportedf("image (destination %q)", string(n.Destination))

	case *east.Table:
		l.tag(entering, &Tag{Kind: TagTable, Alignments: tableAlignments(n.Alignments)})

	case *east.TableHeader:
		l.tag(entering, &Tag{Kind: TagTableHead})

	case *east.TableRow:
		l.tag(entering, &Tag{Kind: TagTableRow})

	case *east.TableCell:
		l.tag(entering, &Tag{Kind: TagTableCell})

	case *east.TaskCheckBox:
		if entering {
			l.atomic(EventTaskMarker)
		}

	case *east.FootnoteLink:
		if entering {
			l.events = append(l.events, Event{Kind: EventFootnoteRef, Text: fmt.Sprintf("%d", n.Index)})
		}

	default:
		return ast.WalkStop, unsupportedf("markdown construct %s", n.Kind())
	}

	return ast.WalkContinue, nil
}

func (l *lexer) tag(entering bool, tag *Tag) {
	if entering {
		l.open(tag)
	} else {
		l.close(tag)
	}
}

func (l *lexer) open(tag *Tag) {
	l.events = append(l.events, Event{Kind: EventOpen, Tag: tag})
}

func (l *lexer) close(tag *Tag) {
	l.events = append(l.events, Event{Kind: EventClose, Tag: tag})
}

func (l *lexer) text(s string) {
	l.events = append(l.events, Event{Kind: EventText, Text: s})
}

func (l *lexer) atomic(kind EventKind) {
	l.events = append(l.events, Event{Kind: kind})
}

// blockText joins a code block's raw lines. goldmark keeps the final
// newline of the last line; the AST carries the text between the fences
// only, so it is trimmed here.
func (l *lexer) blockText(n ast.Node) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(l.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (l *lexer) inlineValue(n ast.Node) string {
	var buf strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			buf.Write(child.Segment.Value(l.source))
		case *ast.String:
			buf.Write(child.Value)
		}
	}
	return buf.String()
}

func (l *lexer) segmentsValue(segments *text.Segments) string {
	var buf strings.Builder
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		buf.Write(seg.Value(l.source))
	}
	return buf.String()
}

func tableAlignments(alignments []east.Alignment) []Alignment {
	out := make([]Alignment, len(alignments))
	for i, a := range alignments {
		switch a {
		case east.AlignLeft:
			out[i] = AlignLeft
		case east.AlignCenter:
			out[i] = AlignCenter
		case east.AlignRight:
			out[i] = AlignRight
		default:
			out[i] = AlignNone
		}
	}
	return out
}
