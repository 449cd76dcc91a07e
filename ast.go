package md2nb

// The block AST a Markdown document is parsed into. The tree is built in a
// single pass and never mutated afterwards; every node exclusively owns its
// children.

// Block is a structural document unit. It is a closed sum: the only
// implementations are the block types in this file.
type Block interface {
	isBlock()
}

type Paragraph struct {
	Text Text
}

type Heading struct {
	// Level is 1..6
	Level int
	Text  Text
}

type List struct {
	Items []ListItem
}

// ListItem wraps the blocks of a single list item. An item may contain
// paragraphs, nested lists, code blocks or anything else a block quote
// could contain.
type ListItem struct {
	Blocks []Block
}

type CodeBlock struct {
	// Info is the fence info string (its first whitespace-delimited token
	// conventionally names a language); nil for indented code blocks.
	Info *string
	Code string
}

type BlockQuote struct {
	Blocks []Block
}

type Table struct {
	Headers []Text
	// Rows are expected to have len(Headers) cells each, but the builder
	// does not enforce this; renderers pad short rows.
	Rows [][]Text
}

type ThematicBreak struct{}

func (Paragraph) isBlock()     {}
func (Heading) isBlock()       {}
func (List) isBlock()          {}
func (CodeBlock) isBlock()     {}
func (BlockQuote) isBlock()    {}
func (Table) isBlock()         {}
func (ThematicBreak) isBlock() {}

// Text is an ordered run of inline content; order is document reading
// order.
type Text []TextSpan

// TextSpan is a piece of inline content. Like Block it is a closed sum.
type TextSpan interface {
	isTextSpan()
}

// Run is literal text carrying the full set of styles active where it
// occurred.
type Run struct {
	Content string
	Styles  StyleSet
}

// Code is verbatim inline code; it never carries styles.
type Code struct {
	Content string
}

type Link struct {
	// Label is itself styled inline text
	Label       Text
	Destination string
}

// SoftBreak is a line wrap with no semantic paragraph break.
type SoftBreak struct{}

// HardBreak is an explicit line break.
type HardBreak struct{}

func (Run) isTextSpan()       {}
func (Code) isTextSpan()      {}
func (Link) isTextSpan()      {}
func (SoftBreak) isTextSpan() {}
func (HardBreak) isTextSpan() {}

type TextStyle int

const (
	Emphasis TextStyle = iota
	Strong
	Strikethrough
)

func (s TextStyle) String() string {
	switch s {
	case Emphasis:
		return "emphasis"
	case Strong:
		return "strong"
	case Strikethrough:
		return "strikethrough"
	default:
		return "unknown style"
	}
}

// StyleSet is the set of styles active at a point in the document. Sets are
// never mutated once constructed; With returns a copy, so spans may safely
// share a set.
type StyleSet map[TextStyle]struct{}

func NewStyleSet(styles ...TextStyle) StyleSet {
	s := make(StyleSet, len(styles))
	for _, style := range styles {
		s[style] = struct{}{}
	}
	return s
}

func (s StyleSet) Has(style TextStyle) bool {
	_, ok := s[style]
	return ok
}

// With returns a copy of the set with style added. The receiver is left
// unchanged, which is what scopes styles exactly to their enclosing tag.
func (s StyleSet) With(style TextStyle) StyleSet {
	out := make(StyleSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[style] = struct{}{}
	return out
}
