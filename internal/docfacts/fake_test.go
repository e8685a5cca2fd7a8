package docfacts

import (
	"testing"

	"github.com/mvp-joe/docfacts/internal/syntax"
	"github.com/mvp-joe/docfacts/internal/syntax/csharp"
	"github.com/stretchr/testify/require"
)

// fakeNode is a hand-built syntax.Node for shapes the C# frontend never
// produces.
type fakeNode struct {
	kind     string
	text     string
	line     int
	parent   *fakeNode
	leading  []syntax.Trivia
	tokens   []syntax.Token
	children []*fakeNode
	fields   map[string]*fakeNode
}

var _ syntax.Node = (*fakeNode)(nil)

func (f *fakeNode) Kind() string                      { return f.kind }
func (f *fakeNode) Text() string                      { return f.text }
func (f *fakeNode) StartLine() int                    { return f.line }
func (f *fakeNode) LeadingTrivia() []syntax.Trivia    { return f.leading }
func (f *fakeNode) ChildTokens() []syntax.Token       { return f.tokens }
func (f *fakeNode) DescendantTrivia() []syntax.Trivia { return nil }

func (f *fakeNode) Parent() syntax.Node {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fakeNode) ChildNodes() []syntax.Node {
	var nodes []syntax.Node
	for _, c := range f.children {
		nodes = append(nodes, c)
	}
	return nodes
}

func (f *fakeNode) Field(name string) syntax.Node {
	if c, ok := f.fields[name]; ok {
		return c
	}
	return nil
}

func (f *fakeNode) DescendantTokens() []syntax.Token {
	tokens := append([]syntax.Token{}, f.tokens...)
	for _, c := range f.children {
		tokens = append(tokens, c.DescendantTokens()...)
	}
	return tokens
}

func (f *fakeNode) DescendantNodes() []syntax.Node {
	var nodes []syntax.Node
	for _, c := range f.children {
		nodes = append(nodes, c)
		nodes = append(nodes, c.DescendantNodes()...)
	}
	return nodes
}

func ident(name string) syntax.Token {
	return syntax.Token{Kind: syntax.KindIdentifier, Text: name}
}

// parse returns the first node of kind in the first member of src.
func parse(t *testing.T, src string, kind string) syntax.Node {
	t.Helper()
	n, err := csharp.ParseNode(src, kind)
	require.NoError(t, err)
	return n
}

// body returns the block body of the first method or constructor in src.
func body(t *testing.T, src string) syntax.Node {
	t.Helper()
	return parse(t, src, syntax.KindBlock)
}
