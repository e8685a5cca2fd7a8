package csharp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// ErrNodeNotFound is returned by ParseNode when the snippet holds no node of
// the requested kind.
var ErrNodeNotFound = errors.New("no node of requested kind")

const kindFileScopedNamespace = "file_scoped_namespace_declaration"

// ParseNode parses a standalone snippet and returns the first node of kind
// found in the first top-level member, the member itself included.
// A miss is reported as ErrNodeNotFound.
func ParseNode(source string, kind string) (syntax.Node, error) {
	tree, err := Parse(context.Background(), []byte(source))
	if err != nil {
		return nil, err
	}

	members := tree.Members()
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %s (snippet has no top-level member)", ErrNodeNotFound, kind)
	}

	// A file-scoped namespace owns the members that follow it.
	scope := members[:1]
	if members[0].Kind() == kindFileScopedNamespace {
		scope = members
	}
	for _, member := range scope {
		if found := syntax.FirstOfKind(member, kind); found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %q", ErrNodeNotFound, kind, members[0].Text())
}

// MustParseNode is ParseNode for test fixtures; it panics on failure.
func MustParseNode(source string, kind string) syntax.Node {
	n, err := ParseNode(source, kind)
	if err != nil {
		panic(err)
	}
	return n
}
