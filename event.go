package md2nb

// The lexer emits a flat, ordered stream of events: an open/close pair for
// every structural construct, and atomic events for everything that carries
// no children. The unflattener turns this stream back into a tree before the
// AST builder assigns any document semantics to it.

type EventKind int

const (
	// EventOpen and EventClose delimit a structural construct; both carry
	// the construct's Tag.
	EventOpen EventKind = iota
	EventClose

	EventText
	EventInlineCode
	EventSoftBreak
	EventHardBreak
	EventHTMLInline
	EventThematicBreak
	EventTaskMarker
	EventFootnoteRef
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventText:
		return "text"
	case EventInlineCode:
		return "inline code"
	case EventSoftBreak:
		return "soft break"
	case EventHardBreak:
		return "hard break"
	case EventHTMLInline:
		return "inline HTML"
	case EventThematicBreak:
		return "thematic break"
	case EventTaskMarker:
		return "task list marker"
	case EventFootnoteRef:
		return "footnote reference"
	default:
		return "unknown event"
	}
}

type Event struct {
	Kind EventKind
	// Tag is set for EventOpen and EventClose
	Tag *Tag
	// Text is set for EventText, EventInlineCode, EventHTMLInline and
	// EventFootnoteRef
	Text string
}

type TagKind int

const (
	TagParagraph TagKind = iota
	TagHeading
	TagList
	TagItem
	TagCodeBlock
	TagBlockQuote
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
)

func (k TagKind) String() string {
	switch k {
	case TagParagraph:
		return "paragraph"
	case TagHeading:
		return "heading"
	case TagList:
		return "list"
	case TagItem:
		return "list item"
	case TagCodeBlock:
		return "code block"
	case TagBlockQuote:
		return "block quote"
	case TagEmphasis:
		return "emphasis"
	case TagStrong:
		return "strong"
	case TagStrikethrough:
		return "strikethrough"
	case TagLink:
		return "link"
	case TagTable:
		return "table"
	case TagTableHead:
		return "table head"
	case TagTableRow:
		return "table row"
	case TagTableCell:
		return "table cell"
	default:
		return "unknown tag"
	}
}

// LinkForm is the syntactic form a link was written in. Only inline links
// (`[label](destination)`) are supported by the builder; the lexer still
// reports other forms so the builder can reject them by name.
type LinkForm int

const (
	LinkInline LinkForm = iota
	LinkAuto
)

func (f LinkForm) String() string {
	switch f {
	case LinkInline:
		return "inline"
	case LinkAuto:
		return "autolink"
	default:
		return "unknown"
	}
}

// Alignment is the column alignment declared in a table's delimiter row.
// It is carried on the table tag for completeness but not modeled in the
// block AST.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Tag identifies a structural construct plus its kind-specific payload.
type Tag struct {
	Kind TagKind

	// Level is the heading level (1..6), set for TagHeading
	Level int
	// Ordered is set for TagList
	Ordered bool
	// Fenced and Info are set for TagCodeBlock; Info is empty for
	// indented code blocks
	Fenced bool
	Info   string
	// Form, Destination and Title are set for TagLink
	Form        LinkForm
	Destination string
	Title       string
	// Alignments is set for TagTable, one entry per column
	Alignments []Alignment
}
