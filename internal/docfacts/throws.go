package docfacts

import (
	"strings"

	"github.com/mvp-joe/docfacts/internal/syntax"
)

// ExceptionDescriptor describes one exception constructed at a throw site.
// Type is the type as spelled in the source, not a resolved name.
type ExceptionDescriptor struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
}

// Exceptions returns a descriptor for every throw site in body whose target
// is an object creation with a spelled type, in document order. Statement
// throws and throw expressions (e.g. the right side of ??) are interleaved
// as they appear. Rethrows and other targets are skipped.
func Exceptions(body syntax.Node) []ExceptionDescriptor {
	descriptors := []ExceptionDescriptor{}
	if body == nil {
		return descriptors
	}
	for _, site := range throwSites(body) {
		if d, ok := describeThrow(site); ok {
			descriptors = append(descriptors, d)
		}
	}
	return descriptors
}

func throwSites(body syntax.Node) []syntax.Node {
	var sites []syntax.Node
	for _, n := range body.DescendantNodes() {
		switch n.Kind() {
		case syntax.KindThrowStatement, syntax.KindThrowExpression:
			sites = append(sites, n)
		}
	}
	return sites
}

func describeThrow(site syntax.Node) (ExceptionDescriptor, bool) {
	operands := site.ChildNodes()
	if len(operands) == 0 {
		return ExceptionDescriptor{}, false
	}
	creation := operands[0]
	if creation.Kind() != syntax.KindObjectCreationExpression {
		return ExceptionDescriptor{}, false
	}

	spelled := createdType(creation)
	if spelled == "" {
		return ExceptionDescriptor{}, false
	}

	var args []messageArgument
	for _, expr := range constructorArguments(creation) {
		args = append(args, classifyArgument(expr))
	}
	return ExceptionDescriptor{Type: spelled, Message: foldMessage(args)}, true
}

// createdType returns the source spelling of the type in a new expression.
func createdType(creation syntax.Node) string {
	if t := creation.Field("type"); t != nil {
		return strings.TrimSpace(t.Text())
	}
	for _, child := range creation.ChildNodes() {
		switch child.Kind() {
		case syntax.KindArgumentList, syntax.KindInitializerExpression:
			continue
		}
		return strings.TrimSpace(child.Text())
	}
	return ""
}

// constructorArguments returns the expression of each argument in order.
func constructorArguments(creation syntax.Node) []syntax.Node {
	list := syntax.ChildOfKind(creation, syntax.KindArgumentList)
	if list == nil {
		return nil
	}
	var exprs []syntax.Node
	for _, arg := range syntax.ChildrenOfKind(list, syntax.KindArgument) {
		parts := arg.ChildNodes()
		if len(parts) == 0 {
			exprs = append(exprs, nil)
			continue
		}
		// A named argument's name_colon precedes the expression.
		exprs = append(exprs, parts[len(parts)-1])
	}
	return exprs
}
