package csharp

import "github.com/mvp-joe/docfacts/internal/syntax"

// node implements syntax.Node over a materialized tree-sitter node.
//
// Tokens follow the Roslyn shape: anonymous leaves (keywords, punctuation)
// and the identifier in a declaration's name position are tokens of their
// parent. Any other named leaf, such as an identifier used as a type or a
// literal, is a node wrapping a single token.
type node struct {
	tree     *Tree
	parent   *node
	children []*node
	kind     string
	named    bool
	field    string
	start    int
	end      int
	line     int
}

var _ syntax.Node = (*node)(nil)

func (n *node) Kind() string {
	return n.kind
}

func (n *node) Text() string {
	return n.tree.source[n.start:n.end]
}

func (n *node) StartLine() int {
	return n.line
}

func (n *node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) leaf() bool {
	return len(n.children) == 0
}

// token reports whether n is a token of its parent rather than a node.
func (n *node) token() bool {
	return n.leaf() && (!n.named || n.field == fieldName)
}

func (n *node) asToken() syntax.Token {
	return syntax.Token{Kind: n.kind, Text: n.Text()}
}

func (n *node) ChildTokens() []syntax.Token {
	if n.leaf() && n.parent != nil {
		return []syntax.Token{n.asToken()}
	}
	var tokens []syntax.Token
	for _, child := range n.children {
		if child.token() {
			tokens = append(tokens, child.asToken())
		}
	}
	return tokens
}

func (n *node) ChildNodes() []syntax.Node {
	var nodes []syntax.Node
	for _, child := range n.children {
		if !child.token() {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

func (n *node) Field(name string) syntax.Node {
	for _, child := range n.children {
		if child.field == name && !child.token() {
			return child
		}
	}
	return nil
}

func (n *node) DescendantTokens() []syntax.Token {
	first, last := n.tokenRange()
	tokens := make([]syntax.Token, 0, last-first)
	for _, tok := range n.tree.tokens[first:last] {
		tokens = append(tokens, tok.asToken())
	}
	return tokens
}

func (n *node) DescendantNodes() []syntax.Node {
	var nodes []syntax.Node
	var visit func(*node)
	visit = func(p *node) {
		for _, child := range p.children {
			if child.token() {
				continue
			}
			nodes = append(nodes, child)
			visit(child)
		}
	}
	visit(n)
	return nodes
}

func (n *node) LeadingTrivia() []syntax.Trivia {
	first, last := n.tokenRange()
	if first == last {
		return nil
	}
	start := n.tree.tokens[first].start
	gapStart := 0
	if first > 0 {
		gapStart = n.tree.tokens[first-1].end
	}
	if gapStart > start {
		return nil
	}
	return syntax.LeadingTrivia(n.tree.source[gapStart:start], first > 0)
}

func (n *node) DescendantTrivia() []syntax.Trivia {
	first, last := n.tokenRange()
	var trivia []syntax.Trivia
	for i := first; i+1 < last; i++ {
		from, to := n.tree.tokens[i].end, n.tree.tokens[i+1].start
		if from >= to {
			continue
		}
		trivia = append(trivia, syntax.LexTrivia(n.tree.source[from:to])...)
	}
	return trivia
}

// tokenRange returns the half-open range of n's tokens in tree.tokens.
func (n *node) tokenRange() (int, int) {
	first := n.tree.tokenIndex(n.start)
	last := n.tree.tokenIndex(n.end)
	if last < first {
		last = first
	}
	return first, last
}
