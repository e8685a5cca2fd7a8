package syntax

// ChildOfKind returns the first direct child node of the given kind.
func ChildOfKind(n Node, kind string) Node {
	if n == nil {
		return nil
	}
	for _, child := range n.ChildNodes() {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns every direct child node of the given kind.
func ChildrenOfKind(n Node, kind string) []Node {
	var out []Node
	if n == nil {
		return out
	}
	for _, child := range n.ChildNodes() {
		if child.Kind() == kind {
			out = append(out, child)
		}
	}
	return out
}

// FirstOfKind returns n itself or the first descendant of the given kind.
func FirstOfKind(n Node, kind string) Node {
	if n == nil {
		return nil
	}
	if n.Kind() == kind {
		return n
	}
	for _, d := range n.DescendantNodes() {
		if d.Kind() == kind {
			return d
		}
	}
	return nil
}

// Ancestor returns the nearest enclosing node matching pred.
func Ancestor(n Node, pred func(Node) bool) Node {
	if n == nil {
		return nil
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if pred(p) {
			return p
		}
	}
	return nil
}
