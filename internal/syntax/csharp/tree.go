package csharp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tscsharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// ErrParseFailed indicates the native parser produced no tree at all.
var ErrParseFailed = errors.New("failed to parse C# source")

const fieldName = "name"

// trackedFields are the grammar fields recorded on materialized children.
var trackedFields = []string{fieldName, "returns", "type", "body"}

// Tree is an immutable, fully materialized C# syntax tree.
// The native tree-sitter tree is released before Parse returns, so a Tree
// needs no Close and may be shared between goroutines.
type Tree struct {
	source    string
	root      *node
	tokens    []*node // leaves in document order
	hasErrors bool
}

// Parse parses source as a C# compilation unit.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(tscsharp.Language())); err != nil {
		return nil, fmt.Errorf("failed to load C# grammar: %w", err)
	}

	native := parser.Parse(source, nil)
	if native == nil {
		return nil, ErrParseFailed
	}
	defer native.Close()

	rootNode := native.RootNode()
	t := &Tree{
		source:    string(source),
		hasErrors: rootNode.HasError(),
	}
	t.root = t.build(rootNode, nil)
	return t, nil
}

// Root returns the compilation unit.
func (t *Tree) Root() syntax.Node {
	return t.root
}

// Source returns the text the tree was parsed from.
func (t *Tree) Source() string {
	return t.source
}

// HasErrors reports whether the parser recovered from syntax errors.
func (t *Tree) HasErrors() bool {
	return t.hasErrors
}

// Members returns the top-level members of the compilation unit, skipping
// using directives and global attributes.
func (t *Tree) Members() []syntax.Node {
	var members []syntax.Node
	for _, child := range t.root.children {
		if child.token() {
			continue
		}
		switch child.kind {
		case "using_directive", "extern_alias_directive", "global_attribute", "attribute_list":
			continue
		}
		members = append(members, child)
	}
	return members
}

// build copies a native node and its subtree. Comments and other extras are
// dropped; they are recovered as trivia from the gaps between tokens.
func (t *Tree) build(sn *sitter.Node, parent *node) *node {
	n := &node{
		tree:   t,
		parent: parent,
		kind:   sn.Kind(),
		named:  sn.IsNamed(),
		start:  int(sn.StartByte()),
		end:    int(sn.EndByte()),
		line:   int(sn.StartPosition().Row) + 1,
	}

	count := sn.ChildCount()
	if count == 0 || syntax.IsStringLike(n.kind) {
		if parent == nil {
			return n
		}
		if n.end <= n.start {
			return nil
		}
		t.tokens = append(t.tokens, n)
		return n
	}

	labels := make(map[[2]int]string, len(trackedFields))
	for _, field := range trackedFields {
		if fn := sn.ChildByFieldName(field); fn != nil {
			key := [2]int{int(fn.StartByte()), int(fn.EndByte())}
			if _, seen := labels[key]; !seen {
				labels[key] = field
			}
		}
	}

	for i := uint(0); i < count; i++ {
		c := sn.Child(i)
		if c == nil || c.IsExtra() {
			continue
		}
		child := t.build(c, n)
		if child == nil {
			continue
		}
		child.field = labels[[2]int{child.start, child.end}]
		n.children = append(n.children, child)
	}
	return n
}

// tokenIndex returns the index in t.tokens of the first token at or after offset.
func (t *Tree) tokenIndex(offset int) int {
	return sort.Search(len(t.tokens), func(i int) bool {
		return t.tokens[i].start >= offset
	})
}
