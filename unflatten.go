package md2nb

// The lexer produces a flat event stream because that is the shape Markdown
// tokenizers naturally emit. Rebuilding the implied tree here, with no
// document semantics attached, keeps the AST builder independent of the
// event wire shape.

// node is an unflattened event: either a leaf wrapping a single atomic
// event (tag == nil), or an interior node holding a tag and the events
// enclosed by its open/close pair.
type node struct {
	event    Event
	tag      *Tag
	children []node
}

func (n node) interior() bool { return n.tag != nil }

func leaf(ev Event) node { return node{event: ev} }

type frame struct {
	tag      *Tag
	children []node
}

type unflattener struct {
	root   []node
	nested []frame
}

// unflatten rebuilds the nested event tree from a flat stream. Every close
// must match the innermost unmatched open and every open must eventually be
// closed; the lexer guarantees this, so a mismatch is an invariant
// violation, not bad input.
func unflatten(events []Event) ([]node, error) {
	u := &unflattener{}
	for _, ev := range events {
		if err := u.handle(ev); err != nil {
			return nil, err
		}
	}
	return u.finish()
}

func (u *unflattener) handle(ev Event) error {
	switch ev.Kind {
	case EventOpen:
		u.nested = append(u.nested, frame{tag: ev.Tag})
	case EventClose:
		if len(u.nested) == 0 {
			return invariantf("close of %s with no open tag", ev.Tag.Kind)
		}
		top := u.nested[len(u.nested)-1]
		u.nested = u.nested[:len(u.nested)-1]
		if top.tag.Kind != ev.Tag.Kind {
			return invariantf("close of %s does not match open %s", ev.Tag.Kind, top.tag.Kind)
		}
		u.push(node{tag: top.tag, children: top.children})
	default:
		u.push(leaf(ev))
	}
	return nil
}

// push appends to the innermost open frame, or to the root sequence when no
// tag is open.
func (u *unflattener) push(n node) {
	if len(u.nested) > 0 {
		top := &u.nested[len(u.nested)-1]
		top.children = append(top.children, n)
		return
	}
	u.root = append(u.root, n)
}

func (u *unflattener) finish() ([]node, error) {
	if len(u.nested) > 0 {
		return nil, invariantf("%s left open at end of input", u.nested[len(u.nested)-1].tag.Kind)
	}
	return u.root, nil
}
