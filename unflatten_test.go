package md2nb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openEvent(tag *Tag) Event  { return Event{Kind: EventOpen, Tag: tag} }
func closeEvent(tag *Tag) Event { return Event{Kind: EventClose, Tag: tag} }
func textEvent(s string) Event  { return Event{Kind: EventText, Text: s} }

func TestUnflattenAtomicAtRoot(t *testing.T) {
	nodes, err := unflatten([]Event{textEvent("hello")})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.False(t, nodes[0].interior())
	require.Equal(t, "hello", nodes[0].event.Text)
}

func TestUnflattenMatchedPair(t *testing.T) {
	para := &Tag{Kind: TagParagraph}
	nodes, err := unflatten([]Event{
		openEvent(para),
		textEvent("hello"),
		closeEvent(para),
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.True(t, nodes[0].interior())
	require.Equal(t, TagParagraph, nodes[0].tag.Kind)
	require.Len(t, nodes[0].children, 1)
	require.Equal(t, "hello", nodes[0].children[0].event.Text)
}

func TestUnflattenNested(t *testing.T) {
	para := &Tag{Kind: TagParagraph}
	em := &Tag{Kind: TagEmphasis}
	nodes, err := unflatten([]Event{
		openEvent(para),
		textEvent("a"),
		openEvent(em),
		textEvent("b"),
		closeEvent(em),
		closeEvent(para),
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	children := nodes[0].children
	require.Len(t, children, 2)
	require.False(t, children[0].interior())
	require.True(t, children[1].interior())
	require.Equal(t, TagEmphasis, children[1].tag.Kind)
	require.Equal(t, "b", children[1].children[0].event.Text)
}

func TestUnflattenSiblings(t *testing.T) {
	para := &Tag{Kind: TagParagraph}
	heading := &Tag{Kind: TagHeading, Level: 1}
	nodes, err := unflatten([]Event{
		openEvent(heading),
		textEvent("title"),
		closeEvent(heading),
		openEvent(para),
		textEvent("body"),
		closeEvent(para),
	})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, TagHeading, nodes[0].tag.Kind)
	require.Equal(t, TagParagraph, nodes[1].tag.Kind)
}

func TestUnflattenMismatchedClose(t *testing.T) {
	_, err := unflatten([]Event{
		openEvent(&Tag{Kind: TagParagraph}),
		closeEvent(&Tag{Kind: TagHeading, Level: 1}),
	})
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	require.Contains(t, invariant.Reason, "does not match")
}

func TestUnflattenCloseWithoutOpen(t *testing.T) {
	_, err := unflatten([]Event{closeEvent(&Tag{Kind: TagParagraph})})
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	require.Contains(t, invariant.Reason, "no open tag")
}

func TestUnflattenUnclosedTag(t *testing.T) {
	_, err := unflatten([]Event{
		openEvent(&Tag{Kind: TagParagraph}),
		textEvent("hello"),
	})
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	require.Contains(t, invariant.Reason, "left open")
}
