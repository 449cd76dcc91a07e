package md2nb

import "fmt"

// UnsupportedError reports valid Markdown that uses a construct this
// converter does not implement (ordered-list numbering, non-inline link
// forms, footnotes, task markers, HTML blocks, ...). The whole conversion
// fails rather than silently degrading the document.
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported markdown construct: %s", e.Construct)
}

func unsupportedf(format string, args ...any) *UnsupportedError {
	return &UnsupportedError{Construct: fmt.Sprintf(format, args...)}
}

// InvariantError reports an event stream or tree shape that contradicts the
// lexer/unflattener contract. Unlike UnsupportedError this never indicates
// bad input; it indicates a defect in an upstream stage.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("tokenizer invariant violated: %s", e.Reason)
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}
